package response

import "net/http"

// Status is one entry of the symbolic status namespace used by error
// annotations, e.g. BAD_REQUEST -> http.StatusBadRequest -> 400.
type Status struct {
	Name  string // symbolic name used in annotations
	Const string // identifier of the net/http constant
	Code  int
}

var statuses = []Status{
	{"OK", "StatusOK", http.StatusOK},
	{"CREATED", "StatusCreated", http.StatusCreated},
	{"ACCEPTED", "StatusAccepted", http.StatusAccepted},
	{"NO_CONTENT", "StatusNoContent", http.StatusNoContent},
	{"BAD_REQUEST", "StatusBadRequest", http.StatusBadRequest},
	{"UNAUTHORIZED", "StatusUnauthorized", http.StatusUnauthorized},
	{"PAYMENT_REQUIRED", "StatusPaymentRequired", http.StatusPaymentRequired},
	{"FORBIDDEN", "StatusForbidden", http.StatusForbidden},
	{"NOT_FOUND", "StatusNotFound", http.StatusNotFound},
	{"METHOD_NOT_ALLOWED", "StatusMethodNotAllowed", http.StatusMethodNotAllowed},
	{"NOT_ACCEPTABLE", "StatusNotAcceptable", http.StatusNotAcceptable},
	{"REQUEST_TIMEOUT", "StatusRequestTimeout", http.StatusRequestTimeout},
	{"CONFLICT", "StatusConflict", http.StatusConflict},
	{"GONE", "StatusGone", http.StatusGone},
	{"PRECONDITION_FAILED", "StatusPreconditionFailed", http.StatusPreconditionFailed},
	{"PAYLOAD_TOO_LARGE", "StatusRequestEntityTooLarge", http.StatusRequestEntityTooLarge},
	{"UNSUPPORTED_MEDIA_TYPE", "StatusUnsupportedMediaType", http.StatusUnsupportedMediaType},
	{"IM_A_TEAPOT", "StatusTeapot", http.StatusTeapot},
	{"UNPROCESSABLE_ENTITY", "StatusUnprocessableEntity", http.StatusUnprocessableEntity},
	{"TOO_MANY_REQUESTS", "StatusTooManyRequests", http.StatusTooManyRequests},
	{"INTERNAL_SERVER_ERROR", "StatusInternalServerError", http.StatusInternalServerError},
	{"NOT_IMPLEMENTED", "StatusNotImplemented", http.StatusNotImplemented},
	{"BAD_GATEWAY", "StatusBadGateway", http.StatusBadGateway},
	{"SERVICE_UNAVAILABLE", "StatusServiceUnavailable", http.StatusServiceUnavailable},
	{"GATEWAY_TIMEOUT", "StatusGatewayTimeout", http.StatusGatewayTimeout},
}

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		m[s.Name] = s
	}
	return m
}()

// LookupStatus resolves a symbolic status name.
func LookupStatus(name string) (Status, bool) {
	s, ok := statusByName[name]
	return s, ok
}
