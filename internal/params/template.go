package params

import (
	"fmt"
	"strings"
)

// SubstitutionError describes the first placeholder that could not be
// substituted.
type SubstitutionError struct {
	Line        int    // 1-based line of the offending brace
	Placeholder string // raw text, e.g. "{schema}"
	Reason      string
}

func (e *SubstitutionError) Error() string {
	if e.Placeholder == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s %s", e.Line, e.Reason, e.Placeholder)
}

// Substitute replaces {name} placeholders with scope values and collapses
// doubled braces. On error the returned text is the unchanged input.
func Substitute(text string, scope Scope) (string, error) {
	if !strings.ContainsAny(text, "{}") {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		switch {
		case ch == '{' && i+1 < len(text) && text[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case ch == '}' && i+1 < len(text) && text[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case ch == '}':
			return text, &SubstitutionError{Line: lineAt(text, i), Reason: "single '}' encountered"}
		case ch == '{':
			end := strings.IndexAny(text[i+1:], "{}")
			if end < 0 || text[i+1+end] != '}' {
				return text, &SubstitutionError{Line: lineAt(text, i), Reason: "unmatched '{'"}
			}
			raw := text[i : i+end+2]
			name := text[i+1 : i+1+end]
			if !isIdentifier(name) {
				return text, &SubstitutionError{Line: lineAt(text, i), Placeholder: raw, Reason: "malformed placeholder"}
			}
			value, ok := scope[name]
			if !ok {
				return text, &SubstitutionError{Line: lineAt(text, i), Placeholder: raw, Reason: "unknown parameter"}
			}
			b.WriteString(value)
			i += end + 2
		default:
			b.WriteByte(ch)
			i++
		}
	}

	return b.String(), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '.' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
