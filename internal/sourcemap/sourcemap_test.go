package sourcemap

import (
	"testing"
)

func TestNew(t *testing.T) {
	sm := New("builds/core.sql")
	if sm == nil {
		t.Fatal("New() returned nil")
	}
	if sm.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", sm.Len())
	}
}

func TestSourceMap_Resolve(t *testing.T) {
	sm := New("core.sql")
	sm.Add(1, 5, "tables/customer.sql", "tables")
	sm.Add(7, 10, "procs/post.sql", "procs")
	sm.Add(12, 12, "grants.sql", "")

	tests := []struct {
		line         int
		wantFragment string
		wantOffset   int
		wantFound    bool
	}{
		{1, "tables/customer.sql", 1, true},
		{5, "tables/customer.sql", 5, true},
		{6, "", 0, false}, // separator line
		{7, "procs/post.sql", 1, true},
		{9, "procs/post.sql", 3, true},
		{12, "grants.sql", 1, true},
		{0, "", 0, false},
		{13, "", 0, false},
	}

	for _, tt := range tests {
		entry, offset, found := sm.Resolve(tt.line)
		if found != tt.wantFound {
			t.Errorf("Resolve(%d) found = %v, expected %v", tt.line, found, tt.wantFound)
			continue
		}
		if entry.Fragment != tt.wantFragment {
			t.Errorf("Resolve(%d) fragment = %q, expected %q", tt.line, entry.Fragment, tt.wantFragment)
		}
		if offset != tt.wantOffset {
			t.Errorf("Resolve(%d) offset = %d, expected %d", tt.line, offset, tt.wantOffset)
		}
	}
}

func TestSourceMap_Resolve_EmptyMap(t *testing.T) {
	sm := New("core.sql")

	_, _, found := sm.Resolve(1)
	if found {
		t.Error("Resolve(1) on empty map returned found=true, expected false")
	}
}

func TestSourceMap_MarshalParse(t *testing.T) {
	sm := New("core.sql")
	sm.Add(1, 3, "a.sql", "core")
	sm.Add(5, 8, "b.sql", "core")

	data, err := sm.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if parsed.Script != "core.sql" {
		t.Errorf("Script = %q, expected %q", parsed.Script, "core.sql")
	}
	entry, _, found := parsed.Resolve(6)
	if !found || entry.Fragment != "b.sql" {
		t.Errorf("Resolve(6) = %+v, %v; expected b.sql", entry, found)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"overlapping entries", `{"script":"a.sql","entries":[{"start":1,"end":5,"fragment":"a"},{"start":5,"end":6,"fragment":"b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func BenchmarkSourceMap_Resolve(b *testing.B) {
	sm := New("core.sql")
	for i := 0; i < 100; i++ {
		start := i*10 + 1
		sm.Add(start, start+8, "file.sql", "section")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sm.Resolve(500)
	}
}
