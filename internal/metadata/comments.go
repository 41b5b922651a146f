package metadata

import (
	"fmt"
	"strings"
)

// CommentStatements renders the comment-on statements for a parsed header.
// The object comment needs name, type and brief; member comments need a
// parameter kind.
func CommentStatements(info Info) []string {
	var stmts []string

	if info.Declared() && info.Brief != "" {
		stmts = append(stmts, fmt.Sprintf("comment on %s %s is '%s';",
			info.Type, info.Name, quote(info.Brief)))
	}

	if info.ParamKind == "" || info.Name == "" {
		return stmts
	}

	for _, group := range [][]Param{info.Inputs, info.Outputs} {
		for _, p := range group {
			stmts = append(stmts, fmt.Sprintf("comment on %s %s.%s is '%s';",
				info.ParamKind, info.Name, p.Name, quote(p.Comment)))
		}
	}

	return stmts
}

// AppendComments returns body followed by a blank line and the comment
// statements for info. The body is returned as is when there is nothing
// to add.
func AppendComments(body string, info Info) string {
	stmts := CommentStatements(info)
	if len(stmts) == 0 {
		return body
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(body, "\r\n"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(stmts, "\n"))
	return b.String()
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
