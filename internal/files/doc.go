// Package files groups the file-related sub-packages.
//
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: fragment discovery and header summaries for the inspect command
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/sqlbundle/internal/files/filesystem"
//	    "github.com/vvka-141/sqlbundle/internal/files/scanner"
//	)
//
//	fsys := filesystem.NewOSFileSystem()
//	fragments, err := scanner.NewScanner(fsys).Scan([]string{"./procs"})
package files
