package confirm_payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	confirmPayment "github.com/m04kA/SMC-PropertyService/internal/usecase/confirm_payment"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) Execute(_ context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &confirmPayment.Response{BookingID: req.BookingID, PaymentID: 3, Amount: decimal.NewFromInt(1000), ExternalRef: req.ExternalRef}, nil
}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/confirm", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		err      error
		wantCode int
	}{
		{name: "ok", id: "1", wantCode: http.StatusOK},
		{name: "bad id", id: "x", wantCode: http.StatusBadRequest},
		{name: "not paid", id: "1", err: confirmPayment.ErrPaymentNotCompleted, wantCode: http.StatusBadRequest},
		{name: "already confirmed", id: "1", err: confirmPayment.ErrInvalidBookingState, wantCode: http.StatusBadRequest},
		{name: "not found", id: "1", err: confirmPayment.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "gateway down", id: "1", err: fmt.Errorf("%w: timeout", confirmPayment.ErrGatewayUnavailable), wantCode: http.StatusBadGateway},
		{name: "internal", id: "1", err: fmt.Errorf("%w: db", confirmPayment.ErrInternal), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(stubUseCase{err: tt.err}, logger.NewNop())
			rec := serve(h, tt.id, `{"externalRef":"tx_ok_1"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
