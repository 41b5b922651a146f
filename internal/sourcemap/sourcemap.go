// Package sourcemap maps lines of an assembled deploy script back to the
// fragment files they were emitted from.
package sourcemap

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FileSuffix is appended to a deploy script path to name its map file.
const FileSuffix = ".map.json"

// Entry maps a range of script lines to one fragment.
type Entry struct {
	Start    int    `json:"start"`          // First script line (1-based, inclusive)
	End      int    `json:"end"`            // Last script line (inclusive)
	Fragment string `json:"fragment"`       // Fragment path relative to the working directory
	Rule     string `json:"rule,omitempty"` // Nearest rule listing the fragment
}

// SourceMap tracks which fragment produced each line of a script.
// Entries are added in script order and never overlap.
type SourceMap struct {
	Script  string  `json:"script"`
	Entries []Entry `json:"entries"`
}

// New creates an empty SourceMap for script.
func New(script string) *SourceMap {
	return &SourceMap{
		Script:  script,
		Entries: make([]Entry, 0),
	}
}

// Add records that script lines start..end came from fragment.
func (sm *SourceMap) Add(start, end int, fragment, rule string) {
	sm.Entries = append(sm.Entries, Entry{
		Start:    start,
		End:      end,
		Fragment: fragment,
		Rule:     rule,
	})
}

// Resolve finds the fragment for a script line. offset is the 1-based
// line within the emitted fragment, which includes any annotation block
// and appended comments.
func (sm *SourceMap) Resolve(line int) (entry Entry, offset int, found bool) {
	i := sort.Search(len(sm.Entries), func(i int) bool {
		return sm.Entries[i].End >= line
	})
	if i == len(sm.Entries) || sm.Entries[i].Start > line {
		return Entry{}, 0, false
	}
	e := sm.Entries[i]
	return e, line - e.Start + 1, true
}

// Len returns the number of entries in the source map.
func (sm *SourceMap) Len() int {
	return len(sm.Entries)
}

// Marshal encodes the map as indented JSON.
func (sm *SourceMap) Marshal() ([]byte, error) {
	return json.MarshalIndent(sm, "", "  ")
}

// Parse decodes a map written by Marshal.
func Parse(data []byte) (*SourceMap, error) {
	var sm SourceMap
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, fmt.Errorf("invalid source map: %w", err)
	}
	for i := 1; i < len(sm.Entries); i++ {
		if sm.Entries[i].Start <= sm.Entries[i-1].End {
			return nil, fmt.Errorf("invalid source map: entry %d overlaps entry %d", i, i-1)
		}
	}
	return &sm, nil
}
