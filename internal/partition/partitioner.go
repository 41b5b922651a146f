package partition

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// Options controls a split run.
type Options struct {
	// OutputDir receives the object files; empty means the current directory.
	OutputDir string

	// KeepAnonymousSpans writes terminator spans that never name an object
	// to ukn_span_<line>.sql instead of discarding them.
	KeepAnonymousSpans bool
}

// Partitioner writes the records of a script to per-object files.
type Partitioner struct {
	fsys   filesystem.FileSystemProvider
	logger sqlbundle.Logger
}

// New creates a Partitioner. Panics on nil dependencies.
func New(fsys filesystem.FileSystemProvider, logger sqlbundle.Logger) *Partitioner {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Partitioner{fsys: fsys, logger: logger}
}

// Split partitions the script at inputPath. Objects that cannot be written
// are logged and reported in the result; only a missing input or an
// unusable output directory returns an error.
func (p *Partitioner) Split(ctx context.Context, inputPath string, opts Options) (sqlbundle.SplitResult, error) {
	var result sqlbundle.SplitResult

	data, err := p.fsys.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%s: %w", inputPath, sqlbundle.ErrInputNotFound)
		}
		return result, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if !filesystem.IsDir(p.fsys, outDir) {
		p.logger.Info("Creating output directory %s", outDir)
		if err := p.fsys.MkdirAll(outDir); err != nil {
			return result, fmt.Errorf("%w: %s: %v", sqlbundle.ErrOutputDir, outDir, err)
		}
	}

	records := Scan(string(data))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if obj, ok := p.emit(rec, outDir, opts); ok {
			result.Objects = append(result.Objects, obj)
		}
	}
	result.Lines = countLines(data)

	p.logger.Info("Finished. Processed lines: %d, objects written: %d", result.Lines, len(result.Written()))
	return result, nil
}

// emit writes one record. It reports false for records that are not
// objects at all.
func (p *Partitioner) emit(rec *Record, outDir string, opts Options) (sqlbundle.SplitObject, bool) {
	name := rec.FileName()
	if name == "" && rec.Span && opts.KeepAnonymousSpans {
		name = fmt.Sprintf("ukn_span_%d.sql", rec.StartLine)
	}

	if name == "" {
		if !rec.Blank() {
			p.logger.Warn("No object name for lines %d:%d, discarded", rec.StartLine, rec.EndLine())
		}
		return sqlbundle.SplitObject{}, false
	}

	obj := sqlbundle.SplitObject{
		Kind:      rec.Kind,
		Name:      rec.Name,
		Path:      filepath.Join(outDir, name),
		StartLine: rec.StartLine,
		EndLine:   rec.EndLine(),
	}

	if _, err := p.fsys.Stat(obj.Path); err == nil {
		p.logger.Error("File %s already exists, skipped", obj.Path)
		obj.Reason = "destination exists"
		return obj, true
	}

	if len(rec.Lines) == 0 {
		p.logger.Warn("Empty script for %s", obj.Path)
	}

	if err := p.fsys.WriteFile(obj.Path, []byte(rec.Content())); err != nil {
		p.logger.Error("Cannot write %s: %v", obj.Path, err)
		obj.Reason = err.Error()
		return obj, true
	}

	obj.Written = true
	p.logger.Info("Lines %d:%d written into %s", obj.StartLine, obj.EndLine, obj.Path)
	return obj, true
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
