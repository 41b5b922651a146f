package partition

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	termBegin = "set term ^ ;"
	termEnd   = "set term ; ^"
)

// headerRegex is applied to the lowercased, trimmed line.
var headerRegex = regexp.MustCompile(`^create\s+(?:or\s+alter\s+)?(procedure|trigger|table|sequence|generator|view|exception|index|domain)\s+([\w$]+)`)

var prefixes = map[string]string{
	"procedure": "prc",
	"trigger":   "trg",
	"table":     "tbl",
	"sequence":  "seq",
	"generator": "seq",
	"view":      "vw",
	"exception": "exc",
	"index":     "idx",
	"domain":    "dmn",
}

// Record is one contiguous range of input lines. A record without a name
// has no destination file.
type Record struct {
	Kind      string
	Name      string
	Span      bool // opened by a terminator-begin marker
	StartLine int  // 1-based
	Lines     []string
}

// EndLine returns the 1-based last line, or StartLine-1 for an empty record.
func (r *Record) EndLine() int {
	return r.StartLine + len(r.Lines) - 1
}

// Named reports whether a creation header named the record.
func (r *Record) Named() bool {
	return r.Name != ""
}

// Blank reports whether every line is whitespace.
func (r *Record) Blank() bool {
	for _, l := range r.Lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// FileName returns the destination file name, or "" for an unnamed record.
func (r *Record) FileName() string {
	if !r.Named() {
		return ""
	}
	prefix, ok := prefixes[r.Kind]
	if !ok {
		prefix = "ukn"
	}
	return fmt.Sprintf("%s_%s.sql", prefix, strings.ToLower(r.Name))
}

// Content joins the lines as they appeared in the input.
func (r *Record) Content() string {
	return strings.Join(r.Lines, "")
}

func (r *Record) sameObject(kind, name string) bool {
	return r.Named() && r.Kind == kind && strings.EqualFold(r.Name, name)
}

// trimTrailingBlank drops blank lines at the end of the record.
func (r *Record) trimTrailingBlank() {
	n := len(r.Lines)
	for n > 0 && strings.TrimSpace(r.Lines[n-1]) == "" {
		n--
	}
	r.Lines = r.Lines[:n]
}

// scanner is the line state machine. cur is nil while idle.
//
// Outside a terminator span, comment lines (and blank lines following
// them) are held as a pending lead-in: the next creation header takes
// them as the first lines of its object, any other statement returns them
// to the current record.
type scanner struct {
	cur     *Record
	inSpan  bool
	records []*Record

	pending      []string
	pendingStart int
	inComment    bool // inside a /* ... */ lead-in spanning lines
}

// Scan partitions content into records, in input order. Line terminators
// are kept, so concatenating every record reproduces the input minus
// trailing blank lines of each record.
func Scan(content string) []*Record {
	s := &scanner{}
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		s.line(i+1, line)
	}
	if len(s.pending) > 0 {
		if s.cur == nil {
			s.open(&Record{}, s.pendingStart)
		}
		s.flushPending()
	}
	s.finalize()
	return s.records
}

func (s *scanner) line(n int, line string) {
	f := strings.ToLower(strings.TrimSpace(line))

	if !s.inSpan && s.leadIn(n, line, f) {
		return
	}

	switch {
	case strings.HasPrefix(f, termBegin):
		s.finalize()
		s.open(&Record{Span: true}, n)
		s.inSpan = true

	case strings.HasPrefix(f, termEnd):
		s.inSpan = false

	default:
		m := headerRegex.FindStringSubmatch(f)
		if m == nil {
			break
		}
		kind, name := m[1], m[2]
		if s.inSpan {
			if s.cur != nil && !s.cur.Named() {
				s.cur.Kind, s.cur.Name = kind, name
			}
			break
		}
		if s.cur == nil || !s.cur.sameObject(kind, name) {
			s.finalize()
			s.open(&Record{Kind: kind, Name: name}, n)
		}
	}

	if s.cur == nil {
		s.open(&Record{}, n)
	}
	s.flushPending()
	s.cur.Lines = append(s.cur.Lines, line)
}

// leadIn reports whether line was taken into the pending lead-in.
func (s *scanner) leadIn(n int, line, f string) bool {
	switch {
	case s.inComment:
		if strings.Contains(f, "*/") {
			s.inComment = false
		}
	case strings.HasPrefix(f, "--"):
	case strings.HasPrefix(f, "/*"):
		end := strings.Index(f[2:], "*/")
		if end < 0 {
			s.inComment = true
		} else if strings.TrimSpace(f[2+end+2:]) != "" {
			// a statement follows the comment on the same line
			return false
		}
	case f == "" && len(s.pending) > 0:
	default:
		return false
	}

	if len(s.pending) == 0 {
		s.pendingStart = n
	}
	s.pending = append(s.pending, line)
	return true
}

// open makes rec current, starting at the pending lead-in if there is one.
func (s *scanner) open(rec *Record, n int) {
	rec.StartLine = n
	if len(s.pending) > 0 {
		rec.StartLine = s.pendingStart
	}
	s.cur = rec
}

func (s *scanner) flushPending() {
	s.cur.Lines = append(s.cur.Lines, s.pending...)
	s.pending = nil
}

func (s *scanner) finalize() {
	if s.cur == nil {
		return
	}
	s.cur.trimTrailingBlank()
	s.records = append(s.records, s.cur)
	s.cur = nil
}
