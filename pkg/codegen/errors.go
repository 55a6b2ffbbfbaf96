package codegen

import (
	"errors"
	"fmt"
	"go/token"
)

// Translation failures. Every Diagnostic wraps exactly one of these.
var (
	ErrMalformedAnnotation         = errors.New("malformed annotation")
	ErrUnsupportedParameterPattern = errors.New("unsupported parameter pattern")
	ErrMissingEnumTarget           = errors.New("missing enum target")
	ErrDuplicateCase               = errors.New("duplicate case")
	ErrUnknownStatus               = errors.New("unknown status")
	ErrUnsupportedSignature        = errors.New("unsupported signature")
)

// Diagnostic reports a failure for one declaration at a source location.
type Diagnostic struct {
	Kind    error
	Pos     token.Position
	Decl    string
	Message string
}

func (d *Diagnostic) Error() string {
	loc := d.Pos.String()
	if d.Message == "" {
		return fmt.Sprintf("%s: %s: %v", loc, d.Decl, d.Kind)
	}
	return fmt.Sprintf("%s: %s: %v: %s", loc, d.Decl, d.Kind, d.Message)
}

func (d *Diagnostic) Unwrap() error { return d.Kind }

func diagnostic(kind error, pos token.Position, decl, format string, args ...any) error {
	return &Diagnostic{Kind: kind, Pos: pos, Decl: decl, Message: fmt.Sprintf(format, args...)}
}
