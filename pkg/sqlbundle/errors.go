package sqlbundle

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := asm.Build(ctx, opts)
//	if errors.Is(err, sqlbundle.ErrWorkDirNotFound) {
//	    // working directory is missing
//	}
var (
	// ErrInvalidConfig indicates the settings file or parameters are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWorkDirNotFound indicates the working directory does not exist.
	ErrWorkDirNotFound = errors.New("working directory not found")

	// ErrInputNotFound indicates an input script does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrOutputDir indicates the output directory could not be created.
	ErrOutputDir = errors.New("output directory unavailable")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrWorkDirNotFound), errors.Is(err, ErrInputNotFound):
		return ExitMissingInput
	case errors.Is(err, ErrOutputDir):
		return ExitOutputDirFailed
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
}
