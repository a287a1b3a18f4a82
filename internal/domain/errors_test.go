package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("%w: booking id=7", ErrBookingNotFound)
	assert.ErrorIs(t, wrapped, ErrBookingNotFound)
	assert.NotErrorIs(t, wrapped, ErrPropertyNotFound)

	scoped := &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "create_booking: internal error"}
	assert.ErrorIs(t, fmt.Errorf("%w: db down", scoped), ErrInternal)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrap: %w", ErrPropertyNotFound)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrDealerAlreadyExists))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.Equal(t, KindDateConflict, KindOf(ErrDateConflict))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
