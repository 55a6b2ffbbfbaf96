package billing

//go:generate go run github.com/nimeshabuddhika/donation-service/services/responsegen/cmd --type=Error

// Error enumerates the failures of the billing endpoint.
type Error int

const (
	// ErrStripe wraps any failure reported by the payment processor.
	//
	//response:hidden=true
	ErrStripe Error = iota + 1
	ErrMissingClientSecret
	//response:code=BAD_REQUEST
	ErrInvalidAmount
)

func (e Error) Error() string {
	switch e {
	case ErrStripe:
		return "payment processor request failed"
	case ErrMissingClientSecret:
		return "An error occurred while processing the billing request."
	case ErrInvalidAmount:
		return "Body must be a valid non-zero uint64."
	default:
		return "billing error"
	}
}
