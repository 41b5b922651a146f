package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/sourcemap"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

var locateCmd = &cobra.Command{
	Use:   "locate <script.sql> <line>",
	Short: "Find the fragment that produced a line of a deploy script",
	Long: `Find the fragment file that produced a line of an assembled deploy script.

Reads <script.sql>.map.json written by 'sqlbundle build --source-map'. The
reported offset counts lines within the emitted fragment, including any
annotation block and appended comments.

Example:
  sqlbundle locate builds/core.sql 120`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	script := args[0]
	line, err := strconv.Atoi(args[1])
	if err != nil || line < 1 {
		return fmt.Errorf("invalid argument %q: line must be a positive integer", args[1])
	}

	mapPath := script + sourcemap.FileSuffix
	data, err := filesystem.NewOSFileSystem().ReadFile(mapPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w\n\nTip: Rebuild with --source-map to create it", mapPath, sqlbundle.ErrInputNotFound)
		}
		return err
	}

	sm, err := sourcemap.Parse(data)
	if err != nil {
		return err
	}

	entry, offset, found := sm.Resolve(line)
	if !found {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:%d is not part of any fragment\n", script, line)
		return nil
	}

	if entry.Rule != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:%d (rule %s)\n", entry.Fragment, offset, entry.Rule)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", entry.Fragment, offset)
	}
	return nil
}
