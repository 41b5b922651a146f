package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order.
	// If the function returns an error, walking stops.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the file access used by the assembler, the
// partitioner and the fragment scanner.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates path and writes data to it.
	WriteFile(path string, data []byte) error

	// Create creates or truncates path and returns a writer for streaming.
	Create(path string) (io.WriteCloser, error)

	// Remove deletes a file.
	Remove(path string) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// IsRegularFile reports whether path exists and is not a directory.
func IsRegularFile(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.IsDir()
}
