package payment

import "errors"

var (
	// ErrGatewayUnavailable возвращается, когда провайдер платежей не ответил
	ErrGatewayUnavailable = errors.New("payment gateway: unavailable")

	// ErrInvalidReference возвращается для пустой ссылки на платеж
	ErrInvalidReference = errors.New("payment gateway: invalid payment reference")
)
