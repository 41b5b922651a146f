// Package sink provides the lazily created output files the assembler
// streams deploy and drop scripts into.
package sink

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// Mode controls where new chunks land relative to earlier ones.
type Mode int

const (
	// Append writes chunks in arrival order.
	Append Mode = iota
	// Prepend writes the newest chunk first, reversing arrival order.
	Prepend
)

func (m Mode) String() string {
	switch m {
	case Append:
		return "append"
	case Prepend:
		return "prepend"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("sink is closed")

// Sink accumulates newline-terminated chunks into one file.
//
// Nothing touches the disk until the first chunk arrives. If no non-empty
// chunk ever arrives, Close removes the file, including one left behind by
// an earlier run. Not safe for concurrent use.
type Sink struct {
	fsys   filesystem.FileSystemProvider
	path   string
	mode   Mode
	logger sqlbundle.Logger

	w        io.WriteCloser // Append only, opened on first chunk
	chunks   []string       // Prepend only
	lines    int            // Append only
	nonEmpty bool
	written  bool
	closed   bool
}

// New returns a sink backed by path. No file is created yet.
func New(fsys filesystem.FileSystemProvider, path string, mode Mode, logger sqlbundle.Logger) *Sink {
	return &Sink{fsys: fsys, path: path, mode: mode, logger: logger}
}

// Path returns the backing file path.
func (s *Sink) Path() string { return s.path }

// Mode returns the ordering mode.
func (s *Sink) Mode() Mode { return s.mode }

// Written reports whether Close kept a file on disk.
func (s *Sink) Written() bool { return s.written }

// Lines returns how many lines an Append sink has written so far.
func (s *Sink) Lines() int { return s.lines }

// Write adds one chunk. A newline is appended to every chunk.
func (s *Sink) Write(chunk string) error {
	if s.closed {
		return fmt.Errorf("%s: %w", s.path, ErrClosed)
	}
	if chunk != "" {
		s.nonEmpty = true
	}

	if s.mode == Prepend {
		s.chunks = append(s.chunks, chunk)
		return nil
	}

	if s.w == nil {
		w, err := s.fsys.Create(s.path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.path, err)
		}
		s.w = w
	}
	if _, err := io.WriteString(s.w, chunk+"\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	s.lines += strings.Count(chunk, "\n") + 1
	return nil
}

// Close flushes the sink, or removes the backing file if nothing but
// blank chunks was written. Closing twice is a no-op.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.w != nil {
		if err := s.w.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", s.path, err)
		}
	}

	if !s.nonEmpty {
		return s.removeStale()
	}

	if s.mode == Prepend {
		var b strings.Builder
		for i := len(s.chunks) - 1; i >= 0; i-- {
			b.WriteString(s.chunks[i])
			b.WriteByte('\n')
		}
		if err := s.fsys.WriteFile(s.path, []byte(b.String())); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.path, err)
		}
	}

	s.written = true
	s.logger.Verbose("Wrote %s", s.path)
	return nil
}

func (s *Sink) removeStale() error {
	err := s.fsys.Remove(s.path)
	switch {
	case err == nil:
		s.logger.Verbose("Removed empty %s", s.path)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to remove empty %s: %w", s.path, err)
	}
}
