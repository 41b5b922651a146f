package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		rel := strings.TrimPrefix(strings.TrimPrefix(entry.absPath, d.absPath), "/")
		if rel == "" {
			rel = "."
		}
		walked := &memoryFile{absPath: entry.absPath, relPath: rel, content: entry.content, info: entry.info}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(walked, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// memoryWriter streams into a memory file; content is visible after every Write.
type memoryWriter struct {
	file   *memoryFile
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	n, _ := w.buf.Write(p)
	w.file.content = append([]byte(nil), w.buf.Bytes()...)
	w.file.info.size = int64(len(w.file.content))
	return n, nil
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Not safe for concurrent use.
type MemoryFileSystem struct {
	files map[string]*memoryFile // map of absolute path -> file
	root  string                 // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newMemoryDir(root, ".")
	return mfs
}

func newMemoryDir(absPath, relPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		relPath: relPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// Root returns the root directory of the virtual filesystem.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// resolve maps a relative or absolute path onto the virtual tree.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) relative(absPath string) string {
	if absPath == mfs.root {
		return "."
	}
	return strings.TrimPrefix(absPath, strings.TrimSuffix(mfs.root, "/")+"/")
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.put(mfs.resolve(filePath), []byte(content), time.Now())
}

func (mfs *MemoryFileSystem) put(absPath string, content []byte, modTime time.Time) *memoryFile {
	file := &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.files[absPath] = file
	mfs.ensureDirectoriesExist(absPath)
	return file
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == filePath {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newMemoryDir(dir, mfs.relative(dir))
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

// Paths returns the relative paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Paths() []string {
	var out []string
	for _, f := range mfs.files {
		if !f.info.isDir {
			out = append(out, f.relPath)
		}
	}
	sort.Strings(out)
	return out
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist}
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.content, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	absPath := mfs.resolve(filePath)
	if existing, ok := mfs.files[absPath]; ok && existing.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	mfs.put(absPath, append([]byte(nil), data...), time.Now())
	return nil
}

// Create implements FileSystemProvider.Create
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	absPath := mfs.resolve(filePath)
	if existing, ok := mfs.files[absPath]; ok && existing.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return &memoryWriter{file: mfs.put(absPath, nil, time.Now())}, nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	absPath := mfs.resolve(filePath)
	if _, exists := mfs.files[absPath]; !exists {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	if len(mfs.getEntriesUnder(absPath)) > 1 {
		return fmt.Errorf("directory not empty: %s", filePath)
	}
	delete(mfs.files, absPath)
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	absPath := mfs.resolve(dirPath)
	if existing, ok := mfs.files[absPath]; ok {
		if !existing.info.isDir {
			return fmt.Errorf("path is not a directory: %s", dirPath)
		}
		return nil
	}
	mfs.files[absPath] = newMemoryDir(absPath, mfs.relative(absPath))
	mfs.ensureDirectoriesExist(absPath)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return file.info, nil
}
