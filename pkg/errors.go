package pkg

import "errors"

// ErrEmptyTraceID is returned when a request passed no trace middleware.
var ErrEmptyTraceID = errors.New("trace id is empty")
