package confirm_payment

import (
	"time"

	"github.com/shopspring/decimal"

	confirmPayment "github.com/m04kA/SMC-PropertyService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	ExternalRef string `json:"externalRef"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	BookingID     int64           `json:"bookingId"`
	PropertyID    int64           `json:"propertyId"`
	BookingStatus string          `json:"bookingStatus"`
	PaymentID     int64           `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	ExternalRef   string          `json:"externalRef"`
	PaidAt        string          `json:"paidAt"`
}

func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		BookingID:     resp.BookingID,
		PropertyID:    resp.PropertyID,
		BookingStatus: resp.BookingStatus,
		PaymentID:     resp.PaymentID,
		Amount:        resp.Amount,
		ExternalRef:   resp.ExternalRef,
		PaidAt:        resp.PaidAt.Format(time.RFC3339),
	}
}
