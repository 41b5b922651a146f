package vcs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// CommitInfo is what the build annotation reports about a fragment.
type CommitInfo struct {
	Branch  string
	SHA     string
	Author  string // "name (email)"
	Date    string
	Message string
}

// Lookup resolves commit info for a fragment path.
type Lookup interface {
	Lookup(ctx context.Context, path string) (CommitInfo, bool)
}

type disabled struct{}

func (disabled) Lookup(context.Context, string) (CommitInfo, bool) { return CommitInfo{}, false }

// Disabled never finds commit info.
var Disabled Lookup = disabled{}

// field separator for the single per-file git log call
const sep = "\x1f"

type repoHead struct {
	sha    string
	branch string
	ok     bool
}

type fileCommit struct {
	info CommitInfo
	ok   bool
}

// Git looks up commit info by running git. Not safe for concurrent use.
type Git struct {
	fsys   filesystem.FileSystemProvider
	runner Runner
	logger sqlbundle.Logger

	roots map[string]string     // directory -> repository root ("" if none)
	heads map[string]repoHead   // repository root -> HEAD facts
	files map[string]fileCommit // absolute path -> result
}

// NewGit returns a lookup that discovers repositories through fsys and
// queries them with runner.
func NewGit(fsys filesystem.FileSystemProvider, runner Runner, logger sqlbundle.Logger) *Git {
	return &Git{
		fsys:   fsys,
		runner: runner,
		logger: logger,
		roots:  make(map[string]string),
		heads:  make(map[string]repoHead),
		files:  make(map[string]fileCommit),
	}
}

// Lookup implements Lookup. path should be absolute.
func (g *Git) Lookup(ctx context.Context, path string) (CommitInfo, bool) {
	path = filepath.Clean(path)
	if cached, ok := g.files[path]; ok {
		return cached.info, cached.ok
	}

	info, ok := g.lookup(ctx, path)
	g.files[path] = fileCommit{info: info, ok: ok}
	return info, ok
}

func (g *Git) lookup(ctx context.Context, path string) (CommitInfo, bool) {
	root := g.repoRoot(filepath.Dir(path))
	if root == "" {
		return CommitInfo{}, false
	}

	head := g.head(ctx, root)
	if !head.ok {
		return CommitInfo{}, false
	}

	info := CommitInfo{SHA: head.sha, Branch: head.branch}

	out, err := g.runner.Run(ctx, root, "log", "-1",
		"--pretty=format:%an (%ae)"+sep+"%ad"+sep+"%B", "--", path)
	if err != nil {
		g.logger.Verbose("git log failed for %s: %v", path, err)
		return info, true
	}

	parts := strings.SplitN(out, sep, 3)
	if len(parts) == 3 {
		info.Author = strings.TrimSpace(parts[0])
		info.Date = strings.TrimSpace(parts[1])
		info.Message = strings.TrimSpace(parts[2])
	}
	return info, true
}

func (g *Git) head(ctx context.Context, root string) repoHead {
	if h, ok := g.heads[root]; ok {
		return h
	}

	var h repoHead
	sha, err := g.runner.Run(ctx, root, "rev-parse", "HEAD")
	if err != nil {
		g.logger.Verbose("git unavailable in %s: %v", root, err)
		g.heads[root] = h
		return h
	}
	branch, err := g.runner.Run(ctx, root, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		g.logger.Verbose("cannot resolve branch in %s: %v", root, err)
	}

	h = repoHead{sha: strings.TrimSpace(sha), branch: strings.TrimSpace(branch), ok: true}
	g.heads[root] = h
	return h
}

// repoRoot walks up from dir to the first directory holding a .git entry.
func (g *Git) repoRoot(dir string) string {
	if root, ok := g.roots[dir]; ok {
		return root
	}

	var root string
	// .git is a directory in a clone and a file in a worktree
	if _, err := g.fsys.Stat(filepath.Join(dir, ".git")); err == nil {
		root = dir
	} else if parent := filepath.Dir(dir); parent != dir {
		root = g.repoRoot(parent)
	}

	g.roots[dir] = root
	return root
}
