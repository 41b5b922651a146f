package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/files/scanner"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [paths...]",
	Short: "List fragment files with their header metadata",
	Long: `List fragment files with the metadata parsed from their /*! ... */ header.

Each path may be a .sql file or a directory; directories are walked
recursively and hidden directories are skipped. Defaults to the current
directory.

Examples:
  sqlbundle inspect
  sqlbundle inspect ./procs ./tables/customer.sql
  sqlbundle inspect ./procs --json`,
	RunE: runInspect,
}

var inspectJSON bool

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print fragments as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	fragments, err := scanner.NewScanner(filesystem.NewOSFileSystem()).Scan(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		return renderFragmentsJSON(out, fragments)
	}
	renderFragmentsTable(out, fragments)
	return nil
}

func renderFragmentsTable(w io.Writer, fragments []scanner.Fragment) {
	if len(fragments) == 0 {
		_, _ = fmt.Fprintln(w, "(0 fragments)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Type", "Name", "Brief", "Params", "ID", "Checksum"})

	for _, f := range fragments {
		t.AppendRow(table.Row{
			f.Path,
			f.Header.Type,
			f.Header.Name,
			truncate(f.Header.Brief, 48),
			f.ParamCount(),
			f.ID.String(),
			f.Checksum.Short(),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d fragments)\n", len(fragments))
}

func renderFragmentsJSON(w io.Writer, fragments []scanner.Fragment) error {
	if fragments == nil {
		fragments = []scanner.Fragment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fragments); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode fragments: %v\n", err)
		return err
	}
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
