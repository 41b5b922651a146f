// Package logging provides concrete implementations of the sqlbundle.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zerolog console output on stderr, coloured only on a terminal
//   - NullLogger: Discards all messages
//   - CaptureLogger: Records messages in memory (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
