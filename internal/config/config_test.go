package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

func TestLoad_INI(t *testing.T) {
	dir := t.TempDir()
	content := `[general]
directory = src
Schema = public
sources = a

[a]
sources = frag1.sql
    frag2.sql
owner = sysdba
`
	path := filepath.Join(dir, "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(filesystem.NewOSFileSystem(), path)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path)
	assert.Equal(t, map[string]string{"directory": "src", "schema": "public"}, s.General)

	general, ok := s.Rule("general")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, general.Sources)
	assert.NotContains(t, general.Params, "sources")

	a, ok := s.Rule("a")
	require.True(t, ok)
	assert.Equal(t, []string{"frag1.sql", "frag2.sql"}, a.Sources)
	assert.Equal(t, "sysdba", a.Params["owner"])
	assert.Equal(t, []string{"a", "general"}, s.RuleNames())
}

func TestLoad_INI_DefaultSectionIsInherited(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/p")
	fsys.AddFile("settings.ini", `owner = sysdba

[a]
sources = x.sql

[b]
owner = app
sources = y.sql
`)

	s, err := Load(fsys, "/p/settings.ini")
	require.NoError(t, err)

	a, _ := s.Rule("a")
	b, _ := s.Rule("b")
	assert.Equal(t, "sysdba", a.Params["owner"])
	assert.Equal(t, "app", b.Params["owner"])
	assert.False(t, s.HasRule("DEFAULT"))
}

func TestLoad_INI_RuleWithoutSources(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/p")
	fsys.AddFile("settings.ini", "[empty]\nowner = x\n")

	s, err := Load(fsys, "/p/settings.ini")
	require.NoError(t, err)

	r, ok := s.Rule("empty")
	require.True(t, ok)
	assert.Empty(t, r.Sources)
}

func TestLoad_YAML(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/p")
	fsys.AddFile("settings.yaml", `general:
  directory: src
  version: 3
  sources: [schema]
schema:
  sources:
    - tables/t1.sql
    - procedures/p1.sql
  owner: sysdba
inline:
  sources: |
    a.sql
    b.sql
`)

	s, err := Load(fsys, "/p/settings.yaml")
	require.NoError(t, err)

	assert.Equal(t, "src", s.General["directory"])
	assert.Equal(t, "3", s.General["version"])

	schema, ok := s.Rule("schema")
	require.True(t, ok)
	assert.Equal(t, []string{"tables/t1.sql", "procedures/p1.sql"}, schema.Sources)
	assert.Equal(t, "sysdba", schema.Params["owner"])

	inline, _ := s.Rule("inline")
	assert.Equal(t, []string{"a.sql", "b.sql"}, inline.Sources)
}

func TestLoad_YAML_NestedMappingRejected(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/p")
	fsys.AddFile("settings.yml", "a:\n  params:\n    x: 1\n")

	_, err := Load(fsys, "/p/settings.yml")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "a", cfgErr.Section)
	assert.True(t, errors.Is(err, sqlbundle.ErrInvalidConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/p")
	fsys.AddFile("settings.yaml", "{{invalid")

	s, err := Load(fsys, "/p/settings.yaml")
	assert.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, sqlbundle.ErrInvalidConfig))
}

func TestLoad_FileNotFound(t *testing.T) {
	s, err := Load(filesystem.NewOSFileSystem(), filepath.Join(t.TempDir(), "settings.ini"))
	assert.True(t, errors.Is(err, ErrSettingsNotFound), "expected ErrSettingsNotFound, got: %v", err)
	assert.Nil(t, s)
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.False(t, s.HasRule("general"))
	assert.Empty(t, s.General)
	assert.Empty(t, s.RuleNames())
}

func TestSplitSources(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"single", "a.sql", []string{"a.sql"}},
		{"multi-line", "a.sql\nb.sql", []string{"a.sql", "b.sql"}},
		{"leading newline", "\n  a.sql\n  b.sql", []string{"a.sql", "b.sql"}},
		{"comments skipped", "a.sql\n;b.sql\n# c.sql\nd.sql", []string{"a.sql", "d.sql"}},
		{"empty", "  \n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSources(tt.value))
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Path: "settings.ini", Section: "a", Message: "bad value", Err: errors.New("boom")}
	assert.Equal(t, "settings error in settings.ini [a]: bad value: boom", err.Error())

	bare := &ConfigError{Path: "settings.ini", Message: "bad"}
	assert.Equal(t, "settings error in settings.ini: bad", bare.Error())
	assert.True(t, errors.Is(bare, sqlbundle.ErrInvalidConfig))
}
