package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation_Assignments(t *testing.T) {
	got, err := ParseAnnotation("code = BAD_REQUEST, hidden = true", token.Position{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "code = BAD_REQUEST", got[0].String())
	assert.Equal(t, "hidden = true", got[1].String())
}

func TestParseAnnotation_Forms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "blank", text: "   ", want: nil},
		{name: "no spaces", text: "code=NOT_FOUND", want: []string{"code = NOT_FOUND"}},
		{name: "trailing comma", text: "code = BAD_REQUEST,", want: []string{"code = BAD_REQUEST"}},
		{name: "nested commas", text: "code = pick(a, b), hidden = !visible", want: []string{"code = pick(a, b)", "hidden = !visible"}},
		{name: "index value", text: "extra = codes[1], hidden = true", want: []string{"extra = codes[1]", "hidden = true"}},
		{name: "qualified value", text: "code = http.StatusTeapot", want: []string{"code = http.StatusTeapot"}},
		{name: "repeated key kept", text: "code = 400, code = 404", want: []string{"code = 400", "code = 404"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnnotation(tt.text, token.Position{})
			require.NoError(t, err)
			var out []string
			for _, a := range got {
				out = append(out, a.String())
			}
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseAnnotation_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "missing assign", text: "code BAD_REQUEST"},
		{name: "missing key", text: "= BAD_REQUEST"},
		{name: "missing value", text: "code ="},
		{name: "missing value before comma", text: "code = , hidden = true"},
		{name: "comparison", text: "code == 400"},
		{name: "unbalanced", text: "code = f(1"},
		{name: "stray closing", text: "code = 1)"},
		{name: "mismatched", text: "code = f(1]"},
		{name: "chained assign", text: "code = a = b"},
		{name: "define", text: "code := 400"},
		{name: "illegal character", text: "code = ?"},
		{name: "incomplete expression", text: "code = 1 +"},
		{name: "double comma", text: "code = 1,, hidden = true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnnotation(tt.text, token.Position{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedAnnotation), "got %v", err)
		})
	}
}

func TestParseAnnotation_PositionPointsAtToken(t *testing.T) {
	pos := token.Position{Filename: "errors.go", Line: 7, Column: 13, Offset: 100}

	_, err := ParseAnnotation("code = 1 +", pos)
	require.Error(t, err)

	var d *Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, "errors.go", d.Pos.Filename)
	assert.Equal(t, 7, d.Pos.Line)
	assert.Equal(t, 20, d.Pos.Column)
	assert.Contains(t, err.Error(), "errors.go:7:20")
}

func TestParseAnnotation_AssignmentPosition(t *testing.T) {
	pos := token.Position{Filename: "errors.go", Line: 3, Column: 13}

	got, err := ParseAnnotation("code = 400, hidden = true", pos)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 13, got[0].Pos.Column)
	assert.Equal(t, 25, got[1].Pos.Column)
}

func TestDefaultAssignments(t *testing.T) {
	got := DefaultAssignments()
	require.Len(t, got, 2)
	assert.Equal(t, "code = INTERNAL_SERVER_ERROR", got[0].String())
	assert.Equal(t, "hidden = true", got[1].String())
}

func TestAnnotationText(t *testing.T) {
	src := `package p

// Doc line.
//
//response:handler
//response:code = BAD_REQUEST
//response:hidden = true
func F() {}
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)
	doc := f.Decls[0].(*ast.FuncDecl).Doc

	text, pos, ok := annotationText(fset, doc)
	require.True(t, ok)
	assert.Equal(t, "code = BAD_REQUEST", text)
	assert.Equal(t, 6, pos.Line)
	assert.Equal(t, 12, pos.Column)

	_, _, ok = annotationText(fset, nil)
	assert.False(t, ok)
}
