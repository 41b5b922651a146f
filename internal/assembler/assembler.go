package assembler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vvka-141/sqlbundle/internal/config"
	"github.com/vvka-141/sqlbundle/internal/files/filesystem"
	"github.com/vvka-141/sqlbundle/internal/params"
	"github.com/vvka-141/sqlbundle/internal/sink"
	"github.com/vvka-141/sqlbundle/internal/sourcemap"
	"github.com/vvka-141/sqlbundle/internal/vcs"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// Assembler builds scripts from settings and fragment files.
// Thread-Safety: NOT safe for concurrent Build() calls on the same instance.
type Assembler struct {
	fsys   filesystem.FileSystemProvider
	logger sqlbundle.Logger
	runner vcs.Runner
	now    func() time.Time
}

// New creates an Assembler. runner may be nil, which disables git
// annotations for every build.
//
// Panics on nil fsys or logger: these are wiring errors.
func New(fsys filesystem.FileSystemProvider, logger sqlbundle.Logger, runner vcs.Runner) *Assembler {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Assembler{fsys: fsys, logger: logger, runner: runner, now: time.Now}
}

// Build assembles every rule in cfg.Rules. The returned error is non-nil
// only for problems that prevent building anything; per-rule failures are
// reported in the result.
func (a *Assembler) Build(ctx context.Context, cfg sqlbundle.BuildConfig) (sqlbundle.BuildResult, error) {
	var result sqlbundle.BuildResult

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return result, fmt.Errorf("invalid working directory %q: %w", cfg.WorkDir, err)
	}
	if !filesystem.IsDir(a.fsys, workDir) {
		a.logger.Error("Working directory %s not found", workDir)
		return result, fmt.Errorf("%s: %w", workDir, sqlbundle.ErrWorkDirNotFound)
	}

	outDir := absPath(workDir, cfg.OutputDir, sqlbundle.DefaultOutputDir)
	if !filesystem.IsDir(a.fsys, outDir) {
		a.logger.Info("Creating output directory %s", outDir)
		if err := a.fsys.MkdirAll(outDir); err != nil {
			return result, fmt.Errorf("%w: %s: %v", sqlbundle.ErrOutputDir, outDir, err)
		}
	}

	settings, err := a.loadSettings(absPath(workDir, cfg.SettingsPath, sqlbundle.DefaultSettingsFile))
	if err != nil {
		return result, err
	}

	scope, err := a.rootScope(workDir, settings, cfg)
	if err != nil {
		return result, err
	}

	var lookup vcs.Lookup = vcs.Disabled
	if a.runner != nil && !cfg.NoVCS {
		lookup = vcs.NewGit(a.fsys, a.runner, a.logger)
	}

	rules := cfg.Rules
	if len(rules) == 0 {
		rules = []string{sqlbundle.GeneralSection}
	}

	adHoc := 0
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := a.scriptName(workDir, settings, scope, rule, &adHoc)
		r := &run{
			fsys:     a.fsys,
			logger:   a.logger,
			settings: settings,
			lookup:   lookup,
			now:      a.now,
			workDir:  workDir,
			deploy:   sink.New(a.fsys, filepath.Join(outDir, name), sink.Append, a.logger),
			drop:     sink.New(a.fsys, filepath.Join(outDir, sqlbundle.DropScriptPrefix+name), sink.Prepend, a.logger),
		}
		if cfg.SourceMap {
			r.sourceMap = sourcemap.New(name)
		}
		result.Rules = append(result.Rules, a.buildRule(ctx, r, rule, scope))
	}

	return result, nil
}

func (a *Assembler) buildRule(ctx context.Context, r *run, rule string, scope params.Scope) sqlbundle.RuleResult {
	a.logger.Info("Building rule %q into %s", rule, r.deploy.Path())

	ok, err := r.resolve(ctx, rule, scope, nil)
	closeErr := errors.Join(r.deploy.Close(), r.drop.Close())

	rr := sqlbundle.RuleResult{
		Rule:          rule,
		DeployPath:    r.deploy.Path(),
		DropPath:      r.drop.Path(),
		DeployWritten: r.deploy.Written(),
		DropWritten:   r.drop.Written(),
		Fragments:     r.fragments,
		OK:            ok,
		Err:           errors.Join(err, closeErr),
	}
	if r.sourceMap != nil && rr.DeployWritten {
		rr.MapPath = rr.DeployPath + sourcemap.FileSuffix
		if mapErr := a.writeSourceMap(rr.MapPath, r.sourceMap); mapErr != nil {
			rr.MapPath = ""
			rr.Err = errors.Join(rr.Err, mapErr)
		}
	}

	switch {
	case rr.Err != nil:
		a.logger.Error("Rule %q failed: %v", rule, rr.Err)
	case !ok:
		a.logger.Warn("Rule %q could not be resolved", rule)
	default:
		a.logger.Info("✓ Rule %q: %d fragment(s)", rule, rr.Fragments)
	}
	return rr
}

func (a *Assembler) writeSourceMap(path string, sm *sourcemap.SourceMap) error {
	data, err := sm.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode source map: %w", err)
	}
	if err := a.fsys.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Verbose("Wrote %s (%d entries)", path, sm.Len())
	return nil
}

func (a *Assembler) loadSettings(path string) (*config.Settings, error) {
	settings, err := config.Load(a.fsys, path)
	if errors.Is(err, config.ErrSettingsNotFound) {
		a.logger.Warn("Settings file %s not found, only fragment files can be built", path)
		return config.Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	a.logger.Verbose("Loaded settings %s: %d rule(s)", path, len(settings.RuleNames()))
	return settings, nil
}

// rootScope layers the general section, params files and --param values.
func (a *Assembler) rootScope(workDir string, settings *config.Settings, cfg sqlbundle.BuildConfig) (params.Scope, error) {
	files := make([]string, len(cfg.ParamsFiles))
	for i, f := range cfg.ParamsFiles {
		files[i] = absPath(workDir, f, "")
	}

	fromFiles, err := params.LoadEnvFiles(a.fsys, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sqlbundle.ErrInvalidConfig, err)
	}

	return params.NewScope(settings.General, fromFiles, cfg.Params), nil
}

// scriptName picks the output file name for a top-level rule.
func (a *Assembler) scriptName(workDir string, settings *config.Settings, scope params.Scope, rule string, adHoc *int) string {
	switch {
	case filesystem.IsRegularFile(a.fsys, filepath.Join(workDir, scope.Directory(), rule)):
		return filepath.Base(rule)
	case settings.HasRule(rule):
		return rule + ".sql"
	default:
		*adHoc++
		return fmt.Sprintf(sqlbundle.AdHocScriptPattern, *adHoc)
	}
}

// absPath makes p absolute against base, falling back to def when empty.
func absPath(base, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
