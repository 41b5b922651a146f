package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vvka-141/sqlbundle/internal/checksum"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/metadata"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// Fragment summarizes one fragment file.
type Fragment struct {
	// Path uses forward slashes and is relative to where the scan started.
	Path      string               `json:"path"`
	ID        uuid.UUID            `json:"id"`
	Header    metadata.Info        `json:"header"`
	Checksum  checksum.Fingerprint `json:"checksum"`
	SizeBytes int64                `json:"size_bytes"`
}

// ParamCount returns the number of documented inputs and outputs.
func (f Fragment) ParamCount() int {
	return len(f.Header.Inputs) + len(f.Header.Outputs)
}

// Scanner discovers fragment files.
// Scanner is safe for concurrent use as long as the filesystem is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner. Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Scan summarizes every .sql file under the given paths. A path may be a
// file or a directory; hidden directories are skipped. Results are sorted
// by path.
func (s *Scanner) Scan(paths []string) ([]Fragment, error) {
	var fragments []Fragment

	for _, root := range paths {
		info, err := s.fsProvider.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", root, sqlbundle.ErrInputNotFound)
			}
			return nil, err
		}

		if !info.IsDir() {
			frag, err := s.summarize(root, root)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, frag)
			continue
		}

		found, err := s.scanDirectory(root)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, found...)
	}

	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].Path < fragments[j].Path
	})
	return fragments, nil
}

func (s *Scanner) scanDirectory(root string) ([]Fragment, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var fragments []Fragment
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() || hidden(file.RelativePath()) || !IsFragment(file.Path()) {
			return nil
		}

		frag, err := s.summarize(file.Path(), filepath.Join(root, file.RelativePath()))
		if err != nil {
			return err
		}
		fragments = append(fragments, frag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fragments, nil
}

func (s *Scanner) summarize(path, display string) (Fragment, error) {
	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to read %s: %w", display, err)
	}

	rel := filepath.ToSlash(filepath.Clean(display))
	header, _ := metadata.Extract(string(content))

	return Fragment{
		Path:      rel,
		ID:        metadata.FragmentID(rel),
		Header:    header,
		Checksum:  checksum.Of(content),
		SizeBytes: int64(len(content)),
	}, nil
}

// IsFragment reports whether path names a fragment file.
func IsFragment(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

// hidden reports whether any segment of rel starts with a dot.
func hidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
