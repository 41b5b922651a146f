package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/sqlbundle/internal/assembler"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/logging"
	"github.com/vvka-141/sqlbundle/internal/params"
	"github.com/vvka-141/sqlbundle/internal/vcs"
	"github.com/vvka-141/sqlbundle/internal/watch"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

var buildCmd = &cobra.Command{
	Use:   "build [rules...]",
	Short: "Assemble deploy and drop scripts from fragment files",
	Long: `Assemble deploy and drop scripts for each named rule.

Every rule is looked up in the settings file. A rule's sources are walked
depth-first: names that are rules recurse, anything else is a fragment file
under the current {directory}. The deploy script receives fragments in
order; the drop script receives the matching DROP statements in reverse.

When no rule is named, the general section is built.

Parameter precedence (lowest to highest):
  1. [general] section of the settings file
  2. --params-file files, in the order given
  3. --param key=value flags
  4. Keys of each rule, for that rule and its descendants

Examples:
  # Build the general rule from settings.ini in the current directory
  sqlbundle build

  # Build two rules into ./out
  sqlbundle build procedures tables -o ./out

  # Override parameters for this run
  sqlbundle build -d ./db --param schema=audit --params-file prod.env

  # Record which fragment produced each deploy script line
  sqlbundle build core --source-map

  # Rebuild whenever a fragment or settings file changes
  sqlbundle build --watch`,
	RunE: runBuild,
}

type buildFlagValues struct {
	workDir     string
	outputDir   string
	settings    string
	params      []string
	paramsFiles []string
	noVCS       bool
	sourceMap   bool
	watch       bool
}

var buildFlags buildFlagValues

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.workDir, "dir", "d", ".",
		"Working directory; settings, fragments and output paths are relative to it")
	buildCmd.Flags().StringVarP(&buildFlags.outputDir, "out", "o", sqlbundle.DefaultOutputDir,
		"Directory receiving the assembled scripts (created when missing)")
	buildCmd.Flags().StringVarP(&buildFlags.settings, "settings", "s", sqlbundle.DefaultSettingsFile,
		"Settings file (.ini, .yaml or .yml)")
	buildCmd.Flags().StringSliceVar(&buildFlags.params, "param", nil,
		"Parameter override as key=value (repeatable)\n"+
			"Overrides the general section and --params-file values")
	buildCmd.Flags().StringSliceVar(&buildFlags.paramsFiles, "params-file", nil,
		"Load parameters from a .env file (repeatable)\n"+
			"Later files override earlier ones")
	buildCmd.Flags().BoolVar(&buildFlags.noVCS, "no-vcs", false,
		"Do not annotate fragments with git commit information")
	buildCmd.Flags().BoolVar(&buildFlags.sourceMap, "source-map", false,
		"Write <script>.map.json mapping deploy script lines to fragment files\n"+
			"Use 'sqlbundle locate' to query it")
	buildCmd.Flags().BoolVar(&buildFlags.watch, "watch", false,
		"Keep running and rebuild when fragment or settings files change")
}

// buildConfigFromFlags turns flag values into a build configuration.
func buildConfigFromFlags(rules []string) (sqlbundle.BuildConfig, error) {
	overrides, err := params.ParseKeyValuePairs(buildFlags.params)
	if err != nil {
		return sqlbundle.BuildConfig{}, fmt.Errorf("%w: %v", sqlbundle.ErrInvalidConfig, err)
	}

	return sqlbundle.BuildConfig{
		WorkDir:      buildFlags.workDir,
		OutputDir:    buildFlags.outputDir,
		SettingsPath: buildFlags.settings,
		Rules:        rules,
		ParamsFiles:  buildFlags.paramsFiles,
		Params:       overrides,
		NoVCS:        buildFlags.noVCS,
		SourceMap:    buildFlags.sourceMap,
	}, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildConfigFromFlags(args)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	asm := assembler.New(filesystem.NewOSFileSystem(), logger, vcs.ExecRunner{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := asm.Build(ctx, cfg)
	if err != nil {
		return err
	}
	reportBuild(logger, result)

	if !buildFlags.watch {
		return nil
	}

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	w := watch.New(workDir, []string{outDir}, sqlbundle.DefaultWatchDebounce, logger, func(ctx context.Context) {
		result, err := asm.Build(ctx, cfg)
		if err != nil {
			logger.Error("Build failed: %v", err)
			return
		}
		reportBuild(logger, result)
	})
	return w.Run(ctx)
}

// reportBuild logs the run summary; per-rule failures were logged as they happened.
func reportBuild(logger sqlbundle.Logger, result sqlbundle.BuildResult) {
	logger.Info("Built %d rule(s), %d failed", len(result.Rules), len(result.Failed()))
}
