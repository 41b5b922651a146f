package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	scope := Scope{"schema": "audit", "owner": "sysdba", "db.name": "main"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no placeholders", "select 1 from rdb$database;", "select 1 from rdb$database;"},
		{"single placeholder", "create table {schema}_log (id integer);", "create table audit_log (id integer);"},
		{"repeated placeholder", "{owner}/{owner}", "sysdba/sysdba"},
		{"dotted name", "use {db.name}", "use main"},
		{"escaped braces", "select '{{x}}' from t;", "select '{x}' from t;"},
		{"escape next to placeholder", "{{{schema}}}", "{audit}"},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.input, scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSubstitute_Errors(t *testing.T) {
	scope := Scope{"schema": "audit"}

	tests := []struct {
		name   string
		input  string
		line   int
		reason string
	}{
		{"unknown parameter", "a\nb {missing} c", 2, "unknown parameter"},
		{"unmatched open brace", "x { y", 1, "unmatched '{'"},
		{"nested open brace", "{a{b}}", 1, "unmatched '{'"},
		{"single close brace", "x } y", 1, "single '}'"},
		{"empty placeholder", "{}", 1, "malformed placeholder"},
		{"spaces in placeholder", "{ schema }", 1, "malformed placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.input, scope)
			require.Error(t, err)
			assert.Equal(t, tt.input, got, "text must be returned unchanged")

			var subErr *SubstitutionError
			require.ErrorAs(t, err, &subErr)
			assert.Equal(t, tt.line, subErr.Line)
			assert.Contains(t, subErr.Reason, tt.reason)
		})
	}
}
