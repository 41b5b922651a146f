package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const banner = `  ___  __ _| | |__  _   _ _ __   __| | | ___
 / __|/ _' | | '_ \| | | | '_ \ / _' | |/ _ \
 \__ \ (_| | | |_) | |_| | | | | (_| | |  __/
 |___/\__, |_|_.__/ \__,_|_| |_|\__,_|_|\___|
         |_|`

var rootCmd = &cobra.Command{
	Use:   "sqlbundle",
	Short: "Assemble SQL migration scripts from fragment files",
	Long: banner + `

sqlbundle reads a settings file describing build rules, walks each rule's
sources depth-first, and concatenates SQL fragment files into a deploy
script and a matching drop script. Parameters flow from the general section
down the rule tree and are substituted into {placeholders}.

It can also split a large monolithic script back into one file per
procedure, table, trigger or generator.

Exit Codes:
  0  - Success (individual rules or objects may still have been skipped)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid settings file or parameters
  20 - Working directory or input script not found
  21 - Output directory could not be created`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for sqlbundle")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
