package metadata

import (
	"regexp"
	"strings"
)

var (
	// headerBlockRegex matches the first /*! ... */ block; non-greedy so a
	// later block comment in the body is never swallowed.
	headerBlockRegex = regexp.MustCompile(`(?s)/\*!(.*?)\*/`)

	declarationRegex = regexp.MustCompile(`\\(fn|tb|tg|sq)\s+(\w+)`)

	// briefRegex stops at the next recognized tag, a blank line or the end of the block.
	briefRegex = regexp.MustCompile(`(?sm)\\brief\s+(.+?)(?:\\(?:param|brief|fn|tb|tg|sq)\b|^\s*$|\z)`)

	paramRegex = regexp.MustCompile(`\\param(?:\[(in|out)\])?\s+(\w+)\s+(.*)`)
)

// Extract parses the structured header of a fragment.
// A fragment without a header yields a zero Info and a zero Span.
func Extract(content string) (Info, Span) {
	var info Info

	loc := headerBlockRegex.FindStringSubmatchIndex(content)
	if loc == nil {
		return info, Span{}
	}
	span := Span{Start: loc[0], End: loc[1]}
	block := content[loc[2]:loc[3]]

	// rest marks where the free-text description starts: one past the
	// furthest consumed tag.
	rest := 0
	consume := func(end int) {
		if end+1 > rest {
			rest = end + 1
		}
	}

	if m := declarationRegex.FindStringSubmatchIndex(block); m != nil {
		decl := declarations[block[m[2]:m[3]]]
		info.Name = block[m[4]:m[5]]
		info.Type = decl.objectType
		info.ParamKind = decl.paramKind
		consume(m[1])
	}

	if m := briefRegex.FindStringSubmatchIndex(block); m != nil {
		info.Brief = strings.TrimSpace(block[m[2]:m[3]])
		consume(m[3])
	}

	// stray tags on types without a param kind are consumed but dropped
	for _, m := range paramRegex.FindAllStringSubmatchIndex(block, -1) {
		consume(m[1])
		if info.ParamKind == "" {
			continue
		}
		p := Param{
			Name:    block[m[4]:m[5]],
			Comment: strings.TrimSpace(block[m[6]:m[7]]),
		}
		if m[2] >= 0 && block[m[2]:m[3]] == "out" {
			info.Outputs = append(info.Outputs, p)
		} else {
			info.Inputs = append(info.Inputs, p)
		}
	}

	if rest < len(block) {
		info.Description = strings.TrimSpace(block[rest:])
	}

	return info, span
}
