package check_conflict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type stubAvailability struct {
	conflict bool
	err      error
	got      domain.Interval
}

func (s *stubAvailability) HasConflict(_ context.Context, _ int64, interval domain.Interval) (bool, error) {
	s.got = interval
	return s.conflict, s.err
}

func serve(svc AvailabilityService, target string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, target, nil), map[string]string{"propertyId": "1"})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &stubAvailability{conflict: true}

	rec := serve(svc, "/api/v1/properties/1/conflicts?start=2024-01-01&end=2024-01-04")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ConflictResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.PropertyID)
	assert.True(t, resp.HasConflict)
	assert.Equal(t, "2024-01-04", svc.got.End.Format(domain.DateFormat))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad date", "/api/v1/properties/1/conflicts?start=01-01-2024&end=2024-01-04", nil, http.StatusBadRequest},
		{"missing dates", "/api/v1/properties/1/conflicts", nil, http.StatusBadRequest},
		{"invalid interval", "/api/v1/properties/1/conflicts?start=2024-01-04&end=2024-01-01", domain.ErrInvalidInterval, http.StatusBadRequest},
		{"unknown property", "/api/v1/properties/1/conflicts?start=2024-01-01&end=2024-01-04", domain.ErrPropertyNotFound, http.StatusNotFound},
		{"internal", "/api/v1/properties/1/conflicts?start=2024-01-01&end=2024-01-04", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubAvailability{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
