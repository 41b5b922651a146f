package vcs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/logging"
)

type call struct {
	dir  string
	args string
}

type fakeRunner struct {
	calls   []call
	outputs map[string]string // first arg -> output
	fail    bool
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, call{dir: dir, args: strings.Join(args, " ")})
	if f.fail {
		return "", errors.New("git: not found")
	}
	if args[0] == "rev-parse" && len(args) == 3 {
		return f.outputs["branch"], nil
	}
	return f.outputs[args[0]], nil
}

func (f *fakeRunner) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c.args, prefix) {
			n++
		}
	}
	return n
}

func newRepo() *filesystem.MemoryFileSystem {
	fsys := filesystem.NewMemoryFileSystem("/")
	fsys.AddFile("/repo/.git/HEAD", "ref: refs/heads/main\n")
	fsys.AddFile("/repo/sql/procs/p1.sql", "create procedure p1 as begin end")
	fsys.AddFile("/repo/sql/procs/p2.sql", "create procedure p2 as begin end")
	fsys.AddFile("/elsewhere/t1.sql", "create table t1 (id integer);")
	return fsys
}

func newRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{
		"rev-parse": "3f2a9c1\n",
		"branch":    "main\n",
		"log":       "Jane Roe (jane@example.com)" + sep + "Mon Oct 5 10:00:00 2026 +0200" + sep + "Add p1\n\nLonger body\n",
	}}
}

func TestGit_Lookup(t *testing.T) {
	runner := newRunner()
	g := NewGit(newRepo(), runner, logging.NewNullLogger())

	info, ok := g.Lookup(context.Background(), "/repo/sql/procs/p1.sql")
	require.True(t, ok)

	assert.Equal(t, CommitInfo{
		Branch:  "main",
		SHA:     "3f2a9c1",
		Author:  "Jane Roe (jane@example.com)",
		Date:    "Mon Oct 5 10:00:00 2026 +0200",
		Message: "Add p1\n\nLonger body",
	}, info)

	for _, c := range runner.calls {
		assert.Equal(t, "/repo", c.dir, "git runs from the repository root")
	}
}

func TestGit_Caching(t *testing.T) {
	runner := newRunner()
	g := NewGit(newRepo(), runner, logging.NewNullLogger())
	ctx := context.Background()

	g.Lookup(ctx, "/repo/sql/procs/p1.sql")
	g.Lookup(ctx, "/repo/sql/procs/p1.sql")
	g.Lookup(ctx, "/repo/sql/procs/p2.sql")

	assert.Equal(t, 2, runner.count("rev-parse"), "HEAD facts once per repository")
	assert.Equal(t, 2, runner.count("log"), "log once per file")
}

func TestGit_OutsideRepository(t *testing.T) {
	runner := newRunner()
	g := NewGit(newRepo(), runner, logging.NewNullLogger())

	_, ok := g.Lookup(context.Background(), "/elsewhere/t1.sql")
	assert.False(t, ok)
	assert.Empty(t, runner.calls)
}

func TestGit_GitUnavailable(t *testing.T) {
	runner := newRunner()
	runner.fail = true
	logger := logging.NewCaptureLogger()
	g := NewGit(newRepo(), runner, logger)

	_, ok := g.Lookup(context.Background(), "/repo/sql/procs/p1.sql")
	assert.False(t, ok)
	assert.True(t, logger.Contains(logging.LevelVerbose, "git unavailable"))

	_, ok = g.Lookup(context.Background(), "/repo/sql/procs/p2.sql")
	assert.False(t, ok)
	assert.Equal(t, 1, runner.count("rev-parse"), "a failing repository is not retried")
}

func TestDisabled(t *testing.T) {
	_, ok := Disabled.Lookup(context.Background(), "/repo/sql/procs/p1.sql")
	assert.False(t, ok)
}
