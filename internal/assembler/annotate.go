package assembler

import (
	"regexp"
	"strings"
	"time"

	"github.com/vvka-141/sqlbundle/internal/vcs"
)

// AnnotationTimeFormat is the layout of the "generated on" line.
const AnnotationTimeFormat = "2006-01-02 15:04:05"

// Annotation is the comment block recording where a fragment came from.
type Annotation struct {
	Generated  time.Time
	Commit     vcs.CommitInfo
	FragmentID string
	Checksum   string
}

// String renders the block as "-- " lines without blank lines. Commit
// message continuation lines are indented under the first.
func (a Annotation) String() string {
	var msg []string
	for _, line := range strings.Split(a.Commit.Message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			msg = append(msg, line)
		}
	}

	lines := []string{
		"-- generated on " + a.Generated.Format(AnnotationTimeFormat),
		"-- git branch: " + a.Commit.Branch,
		"-- git SHA-1: " + a.Commit.SHA,
		"-- git author: " + a.Commit.Author,
		"-- git date: " + a.Commit.Date,
		"-- git commit message: " + strings.Join(msg, "\n-- \t\t"),
		"-- fragment id: " + a.FragmentID,
		"-- fragment checksum: " + a.Checksum,
	}
	return strings.Join(lines, "\n")
}

var beginLineRegex = regexp.MustCompile(`(?im)^[ \t]*begin[ \t]*\r?$`)

// InsertAfterBegin places block on the lines following the first line that
// consists solely of "begin". It reports false, leaving body unchanged,
// when there is no such line.
func InsertAfterBegin(body, block string) (string, bool) {
	loc := beginLineRegex.FindStringIndex(body)
	if loc == nil {
		return body, false
	}
	end := loc[1]
	return body[:end] + "\n" + block + body[end:], true
}
