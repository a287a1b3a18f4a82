package notification

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось доставить
	ErrPublish = errors.New("notification: publish failed")

	// ErrInvalidResponse возвращается при некорректном ответе webhook
	ErrInvalidResponse = errors.New("notification: invalid webhook response")
)
