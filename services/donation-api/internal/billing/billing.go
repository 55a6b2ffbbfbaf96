package billing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency of every donation.
const Currency = "usd"

// PaymentIntentCreator creates a payment intent with automatic payment
// methods and returns its client secret.
type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// CreatePaymentIntent parses amount, the donation in cents, and returns the
// client secret of a new payment intent for it. One leading '+' is allowed.
//
//response:handler
func CreatePaymentIntent(ctx context.Context, intents PaymentIntentCreator, amount string) (string, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(amount, "+"), 10, 64)
	if err != nil || value == 0 || value > math.MaxInt64 {
		return "", ErrInvalidAmount
	}

	secret, err := intents.CreatePaymentIntent(ctx, int64(value), Currency)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStripe, err)
	}
	if secret == "" {
		return "", ErrMissingClientSecret
	}
	return secret, nil
}
