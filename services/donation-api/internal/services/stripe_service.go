package services

import (
	"context"

	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/observability"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

// StripeService creates payment intents and verifies webhook events.
type StripeService struct {
	logger        *zap.Logger
	api           *client.API
	webhookSecret string
}

func NewStripeService(logger *zap.Logger, secretKey, webhookSecret string) *StripeService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeService{
		logger:        logger,
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreatePaymentIntent creates an intent with automatic payment methods and
// returns its client secret, which may be empty.
func (s *StripeService) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		observability.PaymentIntents.WithLabelValues("error").Inc()
		return "", err
	}
	observability.PaymentIntents.WithLabelValues("created").Inc()
	s.logger.Debug("payment intent created", zap.String("payment_intent", intent.ID), zap.Int64("amount", amount))
	return intent.ClientSecret, nil
}

// VerifyEvent checks the Stripe-Signature header against the endpoint secret.
func (s *StripeService) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
