package codegen

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"github.com/nimeshabuddhika/donation-service/pkg/response"
)

// ErrorCase is one constant of an error taxonomy.
type ErrorCase struct {
	Name string
	Pos  token.Position
	// Annotated reports whether the case carries a //response: directive.
	// Assignments is empty for unannotated cases.
	Annotated   bool
	Assignments []Assignment
}

// ResponseRule is the resolved rule of one case. Status and Hidden are Go
// expressions ready to be emitted.
type ResponseRule struct {
	Case   string
	Status string
	Hidden string
}

// RuleTable maps every case of a taxonomy to its rule, in declaration order.
type RuleTable struct {
	Rules    []ResponseRule
	index    map[string]int
	packages map[string]bool
}

// Packages returns the sorted names of the packages the rule expressions
// refer to, e.g. "http" for symbolic statuses.
func (t RuleTable) Packages() []string {
	out := make([]string, 0, len(t.packages))
	for name := range t.packages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the rule of the named case.
func (t RuleTable) Lookup(name string) (ResponseRule, bool) {
	i, ok := t.index[name]
	if !ok {
		return ResponseRule{}, false
	}
	return t.Rules[i], true
}

const (
	httpPackage   = "http"
	defaultStatus = "INTERNAL_SERVER_ERROR"
	// an annotation that omits hidden shows the description; only an
	// unannotated case is hidden by default
	defaultHidden = "false"
)

// BuildRules resolves a rule for every case. An unannotated case takes the
// default assignments {code = INTERNAL_SERVER_ERROR, hidden = true}. An
// annotated case falls back per key: code to INTERNAL_SERVER_ERROR and
// hidden to false. When a key repeats inside one annotation the last one
// wins. Unknown keys are ignored. A case name seen twice is an error.
func BuildRules(cases []ErrorCase) (RuleTable, error) {
	table := RuleTable{
		Rules:    make([]ResponseRule, 0, len(cases)),
		index:    make(map[string]int, len(cases)),
		packages: map[string]bool{},
	}
	for _, c := range cases {
		if _, dup := table.index[c.Name]; dup {
			return RuleTable{}, diagnostic(ErrDuplicateCase, c.Pos, c.Name, "case %s is declared more than once", c.Name)
		}

		assignments := c.Assignments
		if !c.Annotated {
			assignments = DefaultAssignments()
		}
		props := make(map[string]Assignment, len(assignments))
		for _, a := range assignments {
			props[a.Key] = a
		}

		rule := ResponseRule{Case: c.Name, Hidden: defaultHidden}
		code, ok := props[KeyCode]
		if !ok {
			code = Assignment{Key: KeyCode, Value: ast.NewIdent(defaultStatus), Pos: c.Pos}
		}
		status, err := statusExpr(c.Name, code, table.packages)
		if err != nil {
			return RuleTable{}, err
		}
		rule.Status = status
		if hidden, ok := props[KeyHidden]; ok {
			rule.Hidden = types.ExprString(hidden.Value)
			collectPackages(hidden.Value, table.packages)
		}

		table.index[c.Name] = len(table.Rules)
		table.Rules = append(table.Rules, rule)
	}
	return table, nil
}

// statusExpr turns the value of a code assignment into a Go expression and
// records the packages it refers to. Symbolic names resolve through the
// response status namespace; integer literals and qualified expressions are
// emitted unchanged.
func statusExpr(caseName string, a Assignment, packages map[string]bool) (string, error) {
	switch v := a.Value.(type) {
	case *ast.Ident:
		s, ok := response.LookupStatus(v.Name)
		if !ok {
			return "", diagnostic(ErrUnknownStatus, a.Pos, caseName, "%s is not a known status", v.Name)
		}
		packages[httpPackage] = true
		return httpPackage + "." + s.Const, nil
	case *ast.BasicLit:
		if v.Kind != token.INT {
			return "", diagnostic(ErrUnknownStatus, a.Pos, caseName, "status must be an integer, found %s", v.Value)
		}
		return v.Value, nil
	default:
		collectPackages(a.Value, packages)
		return types.ExprString(a.Value), nil
	}
}
