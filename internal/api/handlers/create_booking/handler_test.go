package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/api/handlers"
	"github.com/m04kA/SMC-PropertyService/internal/api/middleware"
	"github.com/m04kA/SMC-PropertyService/internal/domain"
	createBooking "github.com/m04kA/SMC-PropertyService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &createBooking.Response{
		ID:         1,
		PropertyID: req.PropertyID,
		UserID:     req.UserID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     string(domain.BookingStatusPending),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func do(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, ""))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := do(h, `{"propertyId":5,"startDate":"2024-03-01","endDate":"2024-03-04"}`, 7)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.UserID)

	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2024-03-01", resp.StartDate)
	assert.Equal(t, "2024-03-04", resp.EndDate)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		userID   int64
		ucErr    error
		wantCode int
		wantKind domain.ErrorKind
	}{
		{name: "no user", body: `{}`, wantCode: http.StatusUnauthorized},
		{name: "bad json", body: `{`, userID: 7, wantCode: http.StatusBadRequest},
		{name: "bad date", body: `{"propertyId":5,"startDate":"01.03.2024","endDate":"2024-03-04"}`, userID: 7, wantCode: http.StatusBadRequest},
		{name: "conflict", body: `{"propertyId":5,"startDate":"2024-03-01","endDate":"2024-03-04"}`, userID: 7,
			ucErr: createBooking.ErrDateConflict, wantCode: http.StatusBadRequest, wantKind: domain.KindDateConflict},
		{name: "not found", body: `{"propertyId":5,"startDate":"2024-03-01","endDate":"2024-03-04"}`, userID: 7,
			ucErr: createBooking.ErrPropertyNotFound, wantCode: http.StatusNotFound, wantKind: domain.KindPropertyNotFound},
		{name: "internal", body: `{"propertyId":5,"startDate":"2024-03-01","endDate":"2024-03-04"}`, userID: 7,
			ucErr: createBooking.ErrInternal, wantCode: http.StatusInternalServerError, wantKind: domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.ucErr}, logger.NewNop())

			rec := do(h, tt.body, tt.userID)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantKind != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, string(tt.wantKind), body.Code)
			}
		})
	}
}
