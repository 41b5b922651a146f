// Package scanner discovers fragment files and summarizes them for inspect.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests run against the in-memory filesystem.
package scanner
