package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint holds both digests of one fragment.
type Fingerprint struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// Short returns the first 12 hex digits of the raw digest.
func (f Fingerprint) Short() string {
	if len(f.Raw) < 12 {
		return f.Raw
	}
	return f.Raw[:12]
}

// Of computes the fingerprint of content.
func Of(content []byte) Fingerprint {
	return Fingerprint{
		Raw:        Raw(content),
		Normalized: Normalized(content),
	}
}

// Raw returns the hex SHA-256 of content.
func Raw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Normalized returns the hex SHA-256 of the normalized content.
func Normalized(content []byte) string {
	sum := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(sum[:])
}

// Normalize strips comments, lowercases ASCII letters outside quotes and
// collapses whitespace runs to one space.
func Normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	space := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
	}

	for i := 0; i < len(content); {
		ch := content[i]
		switch {
		case strings.HasPrefix(content[i:], "--"):
			end := strings.IndexByte(content[i:], '\n')
			if end < 0 {
				i = len(content)
			} else {
				i += end
			}
			space()

		case strings.HasPrefix(content[i:], "/*"):
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				i = len(content)
			} else {
				i += end + 4
			}
			space()

		case ch == '\'' || ch == '"':
			end := quotedEnd(content, i)
			b.WriteString(content[i:end])
			i = end

		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v':
			space()
			i++

		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch + 'a' - 'A')
			i++

		default:
			b.WriteByte(ch)
			i++
		}
	}

	return strings.TrimSpace(b.String())
}

// quotedEnd returns the index just past the literal opened at start.
// A doubled quote inside the literal is an escaped quote.
func quotedEnd(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}
