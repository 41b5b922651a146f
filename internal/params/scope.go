package params

import "github.com/vvka-141/sqlbundle/pkg/sqlbundle"

// Scope maps parameter names to values for one branch of rule resolution.
// A Scope is never mutated after it is handed to a child; use Merge.
type Scope map[string]string

// NewScope builds a scope from layers, later layers winning.
// The sources key is never part of a scope.
func NewScope(layers ...map[string]string) Scope {
	s := Scope{}
	for _, layer := range layers {
		for k, v := range layer {
			s[k] = v
		}
	}
	delete(s, sqlbundle.SourcesKey)
	return s
}

// Clone returns an independent copy.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s with own's values layered on top.
func (s Scope) Merge(own map[string]string) Scope {
	return NewScope(s, own)
}

// Directory returns the fragment directory, relative to the working directory.
func (s Scope) Directory() string {
	if dir, ok := s[sqlbundle.DirectoryKey]; ok && dir != "" {
		return dir
	}
	return "."
}
