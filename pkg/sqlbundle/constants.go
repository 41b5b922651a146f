package sqlbundle

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
//
// Failures of individual rules or split objects are logged and never
// change the exit code.
const (
	ExitSuccess         = 0  // Build/split completed (individual rules may still have failed)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid settings file or parameters
	ExitMissingInput    = 20 // Working directory or input script not found
	ExitOutputDirFailed = 21 // Output directory could not be created
)

const (
	// GeneralSection is the settings section holding root parameters.
	// It is also the rule built when no rule names are given.
	GeneralSection = "general"

	// SourcesKey is the rule key listing child rules and fragment files.
	// It is never inherited by child scopes.
	SourcesKey = "sources"

	// DirectoryKey is the scope parameter naming the fragment directory,
	// relative to the working directory.
	DirectoryKey = "directory"

	// DefaultSettingsFile is the settings file looked up in the working directory.
	DefaultSettingsFile = "settings.ini"

	// DefaultOutputDir is where assembled scripts are written.
	DefaultOutputDir = "builds"

	// DropScriptPrefix is prepended to the deploy script name to form the drop script name.
	DropScriptPrefix = "drop_"

	// AdHocScriptPattern names output for rule names that are neither rules nor files.
	AdHocScriptPattern = "script_%d.sql"

	// DefaultWatchDebounce is how long watch mode waits for changes to settle.
	DefaultWatchDebounce = 200 * time.Millisecond
)
