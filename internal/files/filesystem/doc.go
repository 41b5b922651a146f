// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Every component that reads fragments or writes scripts goes through
// FileSystemProvider, so assembly and splitting can be exercised against an
// in-memory tree in tests and against the OS filesystem in production.
//
// Key interfaces:
//   - FileSystemProvider: read, write, stat, remove and directory access
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file with metadata and content
//
// Implementations:
//   - OSFileSystem: Production implementation using OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Missing paths are reported with errors that satisfy
// errors.Is(err, fs.ErrNotExist) in both implementations.
package filesystem
