package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// IntentGetter подмножество клиента Stripe PaymentIntents, которое нам нужно
type IntentGetter interface {
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway проверяет статус PaymentIntent в Stripe.
// externalRef бронирования это ID PaymentIntent (pi_...).
type StripeGateway struct {
	intents IntentGetter
	log     Logger
}

// NewStripeGateway создает gateway с собственным API клиентом Stripe
func NewStripeGateway(secretKey string, log Logger) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return NewStripeGatewayWithClient(sc.PaymentIntents, log)
}

func NewStripeGatewayWithClient(intents IntentGetter, log Logger) *StripeGateway {
	return &StripeGateway{intents: intents, log: log}
}

// IsPaymentSucceeded возвращает true, только если PaymentIntent в статусе succeeded.
// Неизвестный в Stripe ID считается неоплаченным платежом, а не ошибкой.
func (g *StripeGateway) IsPaymentSucceeded(ctx context.Context, externalRef string) (bool, error) {
	if strings.TrimSpace(externalRef) == "" {
		return false, ErrInvalidReference
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.intents.Get(externalRef, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			g.log.Warn("StripeGateway: payment intent %s not found", externalRef)
			return false, nil
		}
		return false, fmt.Errorf("%w: get payment intent %s: %v", ErrGatewayUnavailable, externalRef, err)
	}

	g.log.Info("StripeGateway: payment intent %s status=%s", externalRef, intent.Status)
	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}
