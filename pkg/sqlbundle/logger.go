package sqlbundle

// Logger provides a pluggable logging interface for sqlbundle operations.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs recoverable problems: a skipped rule, a missing file,
	// a placeholder that could not be substituted.
	Warn(format string, args ...interface{})

	// Error logs failures that lost output.
	Error(format string, args ...interface{})
}
