package sqlbundle

// BuildConfig holds the parameters of one build run.
type BuildConfig struct {
	// WorkDir is the directory all other relative paths are resolved against.
	WorkDir string

	// OutputDir receives the assembled scripts. Created when missing.
	OutputDir string

	// SettingsPath names the .ini or .yaml settings file.
	SettingsPath string

	// Rules are the top-level rules to build; empty means GeneralSection.
	Rules []string

	// ParamsFiles are .env files layered over the general section, in order.
	ParamsFiles []string

	// Params come from --param and win over everything else.
	Params map[string]string

	// NoVCS disables the git annotation block.
	NoVCS bool

	// SourceMap writes <deploy script>.map.json next to each deploy script.
	SourceMap bool
}

// RuleResult describes the outcome of assembling one top-level rule.
type RuleResult struct {
	// Rule is the name given on the command line.
	Rule string `json:"rule"`

	// DeployPath and DropPath are the backing files of the two scripts.
	// A path is reported even when the file was removed for being empty;
	// check DeployWritten / DropWritten.
	DeployPath string `json:"deploy_path"`
	DropPath   string `json:"drop_path"`

	DeployWritten bool `json:"deploy_written"`
	DropWritten   bool `json:"drop_written"`

	// MapPath is set when a source map was written for the deploy script.
	MapPath string `json:"map_path,omitempty"`

	// Fragments counts fragment files emitted into the deploy script.
	Fragments int `json:"fragments"`

	// OK is false when the rule itself could not be resolved.
	// Failures of child branches are logged but keep OK true.
	OK bool `json:"ok"`

	// Err holds a fatal sink error for this rule, if any.
	Err error `json:"-"`
}

// BuildResult aggregates the results of one build run.
type BuildResult struct {
	Rules []RuleResult `json:"rules"`
}

// Failed returns the rules that did not resolve or hit a fatal error.
func (r BuildResult) Failed() []RuleResult {
	var failed []RuleResult
	for _, rr := range r.Rules {
		if !rr.OK || rr.Err != nil {
			failed = append(failed, rr)
		}
	}
	return failed
}

// SplitObject describes one object emitted (or skipped) by the partitioner.
type SplitObject struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Written   bool   `json:"written"`
	Reason    string `json:"reason,omitempty"`
}

// SplitResult aggregates the outcome of partitioning one script.
type SplitResult struct {
	Lines   int           `json:"lines"`
	Objects []SplitObject `json:"objects"`
}

// Written returns the objects that were written to disk.
func (r SplitResult) Written() []SplitObject {
	var out []SplitObject
	for _, o := range r.Objects {
		if o.Written {
			out = append(out, o)
		}
	}
	return out
}
