package payment

import (
	"context"
	"strings"
)

// MockGateway считает оплаченными все ссылки с заданным префиксом.
// Используется локально и в тестах вместо Stripe.
type MockGateway struct {
	prefix string
}

func NewMockGateway(prefix string) *MockGateway {
	return &MockGateway{prefix: prefix}
}

func (g *MockGateway) IsPaymentSucceeded(_ context.Context, externalRef string) (bool, error) {
	if strings.TrimSpace(externalRef) == "" {
		return false, ErrInvalidReference
	}
	return strings.HasPrefix(externalRef, g.prefix), nil
}
