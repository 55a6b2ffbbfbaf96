package codegen

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotated(t *testing.T, name, text string) ErrorCase {
	t.Helper()
	assignments, err := ParseAnnotation(text, token.Position{})
	require.NoError(t, err)
	return ErrorCase{Name: name, Annotated: true, Assignments: assignments}
}

func TestBuildRules_Defaults(t *testing.T) {
	// Arrange
	cases := []ErrorCase{
		{Name: "ErrPlain"},
		annotated(t, "ErrBadInput", "code = BAD_REQUEST"),
		annotated(t, "ErrSecret", "hidden = true"),
		annotated(t, "ErrEmpty", ""),
	}

	// Act
	table, err := BuildRules(cases)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []ResponseRule{
		{Case: "ErrPlain", Status: "http.StatusInternalServerError", Hidden: "true"},
		{Case: "ErrBadInput", Status: "http.StatusBadRequest", Hidden: "false"},
		{Case: "ErrSecret", Status: "http.StatusInternalServerError", Hidden: "true"},
		{Case: "ErrEmpty", Status: "http.StatusInternalServerError", Hidden: "false"},
	}, table.Rules)

	rule, ok := table.Lookup("ErrBadInput")
	assert.True(t, ok)
	assert.Equal(t, "http.StatusBadRequest", rule.Status)
	_, ok = table.Lookup("ErrMissing")
	assert.False(t, ok)
}

func TestBuildRules_StatusForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "symbolic", text: "code = TOO_MANY_REQUESTS", want: "http.StatusTooManyRequests"},
		{name: "integer", text: "code = 418", want: "418"},
		{name: "qualified", text: "code = http.StatusTeapot", want: "http.StatusTeapot"},
		{name: "last key wins", text: "code = BAD_REQUEST, code = NOT_FOUND", want: "http.StatusNotFound"},
		{name: "unknown keys ignored", text: "retry = 3, code = CONFLICT", want: "http.StatusConflict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildRules([]ErrorCase{annotated(t, "ErrCase", tt.text)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Rules[0].Status)
		})
	}
}

func TestBuildRules_HiddenExpression(t *testing.T) {
	table, err := BuildRules([]ErrorCase{annotated(t, "ErrCase", "hidden = !debug")})
	require.NoError(t, err)
	assert.Equal(t, "!debug", table.Rules[0].Hidden)
}

func TestBuildRules_UnknownStatus(t *testing.T) {
	for _, text := range []string{"code = NOT_A_STATUS", `code = "400"`, "code = 4.0"} {
		t.Run(text, func(t *testing.T) {
			_, err := BuildRules([]ErrorCase{annotated(t, "ErrCase", text)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownStatus), "got %v", err)

			var d *Diagnostic
			require.True(t, errors.As(err, &d))
			assert.Equal(t, "ErrCase", d.Decl)
		})
	}
}

func TestBuildRules_DuplicateCase(t *testing.T) {
	_, err := BuildRules([]ErrorCase{{Name: "ErrA"}, {Name: "ErrB"}, {Name: "ErrA"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateCase))
	assert.Contains(t, err.Error(), "ErrA")
}

func TestBuildRules_Empty(t *testing.T) {
	table, err := BuildRules(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Rules)
}

func TestBuildRules_Packages(t *testing.T) {
	tests := []struct {
		name  string
		cases []ErrorCase
		want  []string
	}{
		{name: "unannotated", cases: []ErrorCase{{Name: "ErrA"}}, want: []string{"http"}},
		{name: "integer only", cases: []ErrorCase{
			annotated(t, "ErrA", "code = 400"),
			annotated(t, "ErrB", "code = 404, hidden = true"),
		}, want: []string{}},
		{name: "qualified", cases: []ErrorCase{
			annotated(t, "ErrA", "code = nethttp.StatusTeapot, hidden = flags.Quiet"),
		}, want: []string{"flags", "nethttp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildRules(tt.cases)
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Packages())
		})
	}
}
