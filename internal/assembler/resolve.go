package assembler

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/vvka-141/sqlbundle/internal/checksum"
	"github.com/vvka-141/sqlbundle/internal/config"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/metadata"
	"github.com/vvka-141/sqlbundle/internal/params"
	"github.com/vvka-141/sqlbundle/internal/sink"
	"github.com/vvka-141/sqlbundle/internal/sourcemap"
	"github.com/vvka-141/sqlbundle/internal/vcs"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// run holds the state of one top-level rule. The sinks are owned by the
// run and closed by the caller when resolution ends.
type run struct {
	fsys     filesystem.FileSystemProvider
	logger   sqlbundle.Logger
	settings *config.Settings
	lookup   vcs.Lookup
	now      func() time.Time
	workDir  string

	deploy *sink.Sink
	drop   *sink.Sink

	sourceMap *sourcemap.SourceMap // nil unless requested

	fragments int
}

// resolve expands name within scope. ancestry lists the composite rules
// above name, nearest first. It reports false when name itself could not
// be resolved; an error means a sink failed and the rule must stop.
func (r *run) resolve(ctx context.Context, name string, scope params.Scope, ancestry []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path := filepath.Join(r.workDir, scope.Directory(), name)
	if filesystem.IsRegularFile(r.fsys, path) {
		return r.emitFragment(ctx, path, scope, ancestry)
	}

	rule, ok := r.settings.Rule(name)
	if !ok {
		r.logger.Warn("Rule %q is not defined", name)
		return false, nil
	}

	if slices.Contains(ancestry, name) {
		chain := append([]string{name}, ancestry...)
		r.logger.Warn("Loop detected: %s", strings.Join(chain, " <- "))
		return false, nil
	}

	if len(rule.Sources) == 0 {
		r.logger.Warn("Empty sources for rule %q", name)
		return false, nil
	}

	r.logger.Verbose("Resolving rule %q (%d source(s))", name, len(rule.Sources))

	child := scope
	if name != sqlbundle.GeneralSection {
		// general's values are already the bottom layer of the root scope
		child = scope.Merge(rule.Params)
	}
	chain := make([]string, 0, len(ancestry)+1)
	chain = append(chain, name)
	chain = append(chain, ancestry...)

	for _, source := range rule.Sources {
		ok, err := r.resolve(ctx, source, child, chain)
		if err != nil {
			return false, err
		}
		if !ok {
			r.logger.Verbose("Skipped %q in rule %q", source, name)
		}
	}
	return true, nil
}

// emitFragment streams one fragment file into the deploy sink and its
// derived drop statements into the drop sink.
func (r *run) emitFragment(ctx context.Context, path string, scope params.Scope, ancestry []string) (bool, error) {
	rel := r.relative(path)
	r.logger.Verbose("Processing fragment %s", rel)

	data, err := r.fsys.ReadFile(path)
	if err != nil {
		r.logger.Error("Cannot read fragment %s: %v", rel, err)
		return false, nil
	}
	content := string(data)

	for _, stmt := range ScanCreates(content) {
		if !stmt.Droppable() {
			r.logger.Warn("%s:%d: no drop entry for %s %s", rel, stmt.Line, stmt.Kind, stmt.Name)
			continue
		}
		if err := r.drop.Write(stmt.DropStatement()); err != nil {
			return false, err
		}
	}

	info, _ := metadata.Extract(content)

	body, err := params.Substitute(content, scope)
	if err != nil {
		r.logger.Warn("Cannot substitute parameters in %s: %v", rel, err)
		body = content
	}

	if commit, ok := r.lookup.Lookup(ctx, path); ok {
		block := Annotation{
			Generated:  r.now(),
			Commit:     commit,
			FragmentID: metadata.FragmentID(rel).String(),
			Checksum:   checksum.Raw(data),
		}.String()
		var inserted bool
		if body, inserted = InsertAfterBegin(body, block); !inserted {
			r.logger.Verbose("%s has no standalone begin line, annotation skipped", rel)
		}
	}

	body = metadata.AppendComments(body, info)

	start := r.deploy.Lines() + 1
	if err := r.deploy.Write(strings.TrimRight(body, "\r\n") + "\n"); err != nil {
		return false, err
	}
	if r.sourceMap != nil {
		var rule string
		if len(ancestry) > 0 {
			rule = ancestry[0]
		}
		// the last line written is the blank separator
		r.sourceMap.Add(start, r.deploy.Lines()-1, rel, rule)
	}
	r.fragments++
	return true, nil
}

func (r *run) relative(path string) string {
	rel, err := filepath.Rel(r.workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
