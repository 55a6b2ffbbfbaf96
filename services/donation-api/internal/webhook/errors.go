package webhook

//go:generate go run github.com/nimeshabuddhika/donation-service/services/responsegen/cmd --type=Error

// Error enumerates the failures of the payment webhook endpoint. Neither
// case is annotated, so both answer 500 with the generic message.
type Error int

const (
	ErrMissingStripeSignature Error = iota + 1
	ErrInvalidStripeSignature
)

func (e Error) Error() string {
	switch e {
	case ErrMissingStripeSignature:
		return "missing stripe signature"
	case ErrInvalidStripeSignature:
		return "invalid stripe signature"
	default:
		return "webhook error"
	}
}
