package assembler

import (
	"fmt"
	"regexp"
	"strings"
)

var createRegex = regexp.MustCompile(`(?i)^\s*create\s+(?:or\s+alter\s+)?(procedure|trigger|table|sequence|generator|view|index|exception|domain)\s+([\w$]+)`)

var droppable = map[string]bool{
	"procedure": true,
	"trigger":   true,
	"table":     true,
	"sequence":  true,
	"generator": true,
}

// CreateStatement is an object-creation header found in a fragment.
type CreateStatement struct {
	Kind string // lowercase
	Name string // as written
	Line int    // 1-based
}

// Droppable reports whether a drop statement is generated for the object.
func (c CreateStatement) Droppable() bool {
	return droppable[c.Kind]
}

// DropStatement renders the matching drop.
func (c CreateStatement) DropStatement() string {
	return fmt.Sprintf("drop %s %s;", c.Kind, c.Name)
}

// ScanCreates returns the creation headers in content, in file order.
// Only headers at the start of a line are recognized.
func ScanCreates(content string) []CreateStatement {
	var out []CreateStatement
	for i, line := range strings.Split(content, "\n") {
		m := createRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, CreateStatement{
			Kind: strings.ToLower(m[1]),
			Name: m[2],
			Line: i + 1,
		})
	}
	return out
}
