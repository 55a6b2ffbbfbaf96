package response

import (
	"errors"
	"net/http"
)

// UnknownErrorMessage replaces the description of hidden error cases.
const UnknownErrorMessage = "An unknown error occurred."

// Rule is the resolved response behavior of one error case.
type Rule struct {
	Status int
	Hidden bool
}

// DefaultRule applies to cases without an annotation and to anything that
// is not a Responder.
var DefaultRule = Rule{Status: http.StatusInternalServerError, Hidden: true}

// Resolve returns the status and the caller-visible message for a case
// with the given description.
func (r Rule) Resolve(description string) (int, string) {
	if r.Hidden {
		return r.Status, UnknownErrorMessage
	}
	return r.Status, description
}

// Responder is implemented by error taxonomies. The generated ToResponse
// method is total over the taxonomy's cases.
type Responder interface {
	error
	ToResponse() (int, string)
}

// ToResponse maps any error onto a status and message. Errors that do not
// wrap a Responder get the default rule so their text never leaks.
func ToResponse(err error) (int, string) {
	var r Responder
	if errors.As(err, &r) {
		return r.ToResponse()
	}
	return DefaultRule.Resolve("")
}
