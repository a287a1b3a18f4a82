package confirm_payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на подтверждение оплаты
type Request struct {
	BookingID   int64
	ExternalRef string // ID платежа у провайдера
}

// Response подтвержденное бронирование и созданный платеж
type Response struct {
	BookingID     int64
	PropertyID    int64
	BookingStatus string
	PaymentID     int64
	Amount        decimal.Decimal
	ExternalRef   string
	PaidAt        time.Time
}
