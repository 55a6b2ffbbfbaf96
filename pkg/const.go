package pkg

const (
	HeaderTraceId         string = "X-Trace-Id"
	HeaderStripeSignature string = "Stripe-Signature"
)

// Log and context keys
const (
	TraceId   string = "trace_id"
	EventId   string = "event_id"
	EventType string = "event_type"
)
