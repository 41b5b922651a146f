package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/logging"
	"github.com/vvka-141/sqlbundle/internal/partition"
)

var splitCmd = &cobra.Command{
	Use:   "split <script.sql>",
	Short: "Split a monolithic script into one file per object",
	Long: `Split a monolithic SQL script into one file per database object.

Each CREATE or CREATE OR ALTER header starts a new object; the lines that
follow (comments, grants) stay with it until the next header. A comment
block directly before a header belongs to the object that header opens. A
'set term ^ ;' span is one object named by the first header inside it.
Objects are written as <prefix>_<name>.sql, for example prc_post_entry.sql
or tbl_customer.sql.

Existing files are never overwritten; the object is skipped and reported.

Examples:
  # Split into the current directory
  sqlbundle split ./full_schema.sql

  # Split into ./objects, keeping spans that declare no object
  sqlbundle split ./full_schema.sql -o ./objects --keep-anonymous`,
	Args: RequireScriptPath,
	RunE: runSplit,
}

type splitFlagValues struct {
	outputDir     string
	keepAnonymous bool
}

var splitFlags splitFlagValues

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitFlags.outputDir, "out", "o", ".",
		"Directory receiving the object files (created when missing)")
	splitCmd.Flags().BoolVar(&splitFlags.keepAnonymous, "keep-anonymous", false,
		"Write terminator spans that name no object to ukn_span_<line>.sql")
}

func runSplit(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := partition.New(filesystem.NewOSFileSystem(), logger)
	_, err := p.Split(ctx, args[0], partition.Options{
		OutputDir:          splitFlags.outputDir,
		KeepAnonymousSpans: splitFlags.keepAnonymous,
	})
	return err
}
