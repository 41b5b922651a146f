// Package config loads composition settings: the general section and the
// named rules that expand into child rules and fragment files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// ErrSettingsNotFound is returned when the settings file does not exist.
// Callers can check for this with errors.Is(err, config.ErrSettingsNotFound).
var ErrSettingsNotFound = errors.New("settings file not found")

// Rule is a named composition unit.
type Rule struct {
	Name string

	// Sources lists child rule names or fragment paths in declared order.
	Sources []string

	// Params are the rule's own key/values, without "sources".
	Params map[string]string
}

// Settings holds everything read from one settings file.
// It is immutable once loaded.
type Settings struct {
	Path string

	// General is the root parameter scope: the general section without "sources".
	General map[string]string

	rules map[string]Rule
}

// Empty returns settings with no rules, used when no settings file exists.
func Empty() *Settings {
	return &Settings{General: map[string]string{}, rules: map[string]Rule{}}
}

// Rule returns the named rule.
func (s *Settings) Rule(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// HasRule reports whether name is a declared section.
func (s *Settings) HasRule(name string) bool {
	_, ok := s.rules[name]
	return ok
}

// RuleNames returns all declared rule names, sorted.
func (s *Settings) RuleNames() []string {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigError reports a malformed settings file.
type ConfigError struct {
	Path    string
	Section string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	location := e.Path
	if e.Section != "" {
		location = fmt.Sprintf("%s [%s]", e.Path, e.Section)
	}
	msg := fmt.Sprintf("settings error in %s: %s", location, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the cause and sqlbundle.ErrInvalidConfig.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{sqlbundle.ErrInvalidConfig}
	}
	return []error{e.Err, sqlbundle.ErrInvalidConfig}
}

// Load reads a settings file, choosing the format by extension:
// .yaml/.yml are YAML, everything else is INI.
func Load(fsys filesystem.FileSystemProvider, path string) (*Settings, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrSettingsNotFound)
		}
		return nil, err
	}

	var sections map[string]map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sections, err = parseYAML(path, data)
	default:
		sections, err = parseINI(path, data)
	}
	if err != nil {
		return nil, err
	}

	return fromSections(path, sections), nil
}

func fromSections(path string, sections map[string]map[string]string) *Settings {
	s := &Settings{Path: path, General: map[string]string{}, rules: map[string]Rule{}}
	for name, values := range sections {
		rule := Rule{Name: name, Params: map[string]string{}}
		for k, v := range values {
			if k == sqlbundle.SourcesKey {
				rule.Sources = SplitSources(v)
				continue
			}
			rule.Params[k] = v
		}
		s.rules[name] = rule
		if name == sqlbundle.GeneralSection {
			for k, v := range rule.Params {
				s.General[k] = v
			}
		}
	}
	return s
}

// SplitSources splits a multi-line sources value into entries.
// Blank lines and lines starting with ';' or '#' are skipped.
func SplitSources(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
