package webhook

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
)

// EventVerifier checks a payload against its signature header and decodes it.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
}

// Dispatcher handles verified events in the background.
type Dispatcher interface {
	Dispatch(event stripe.Event)
}

// ReceiveEvent verifies a payment processor event and hands it to the
// dispatcher without waiting for it to be handled.
//
//response:handler
func ReceiveEvent(verifier EventVerifier, dispatcher Dispatcher, signature string, payload []byte) (any, error) {
	if signature == "" {
		return nil, ErrMissingStripeSignature
	}
	if !isHeaderValue(signature) {
		return nil, ErrInvalidStripeSignature
	}

	event, err := verifier.VerifyEvent(payload, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStripeSignature, err)
	}
	dispatcher.Dispatch(event)
	return nil, nil
}

// isHeaderValue reports whether s only holds visible ASCII and spaces.
func isHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != ' ' && c != '\t' && (c < 0x21 || c > 0x7e) {
			return false
		}
	}
	return true
}
