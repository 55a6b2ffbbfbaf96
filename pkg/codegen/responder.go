package codegen

import (
	"bytes"
	"fmt"
)

// writer accumulates generated source line by line.
type writer struct {
	bytes.Buffer
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(&w.Buffer, format, args...)
	w.WriteByte('\n')
}

// GenerateResponder emits the ResponseRule and ToResponse methods of a
// taxonomy. ResponseRule switches over every case of the table; the
// default branch returns response.DefaultRule and is only reached by
// values that are not declared cases.
func GenerateResponder(t *Taxonomy, table RuleTable) string {
	var w writer
	w.line("// ResponseRule returns the HTTP status and visibility of e.")
	w.line("func (e %s) ResponseRule() response.Rule {", t.Name)
	w.line("switch e {")
	for _, c := range t.Cases {
		rule, _ := table.Lookup(c.Name)
		w.line("case %s:", c.Name)
		w.line("return response.Rule{Status: %s, Hidden: %s}", rule.Status, rule.Hidden)
	}
	w.line("default:")
	w.line("return response.DefaultRule")
	w.line("}")
	w.line("}")
	w.line("")
	w.line("// ToResponse returns the HTTP status and caller-visible message of e.")
	w.line("func (e %s) ToResponse() (int, string) {", t.Name)
	w.line("return e.ResponseRule().Resolve(e.Error())")
	w.line("}")
	return w.String()
}
