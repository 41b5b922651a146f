package sqlbundle_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, sqlbundle.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), sqlbundle.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), sqlbundle.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), sqlbundle.ExitUsageError},
		{"invalid config", fmt.Errorf("loading settings: %w", sqlbundle.ErrInvalidConfig), sqlbundle.ExitConfigError},
		{"missing workdir", fmt.Errorf("build: %w", sqlbundle.ErrWorkDirNotFound), sqlbundle.ExitMissingInput},
		{"missing input", sqlbundle.ErrInputNotFound, sqlbundle.ExitMissingInput},
		{"output dir", sqlbundle.ErrOutputDir, sqlbundle.ExitOutputDirFailed},
		{"general error", errors.New("something went wrong"), sqlbundle.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sqlbundle.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildResult_Failed(t *testing.T) {
	res := sqlbundle.BuildResult{Rules: []sqlbundle.RuleResult{
		{Rule: "ok", OK: true},
		{Rule: "missing", OK: false},
		{Rule: "io", OK: true, Err: errors.New("disk full")},
	}}

	failed := res.Failed()
	if len(failed) != 2 {
		t.Fatalf("Expected 2 failed rules, got %d", len(failed))
	}
	if failed[0].Rule != "missing" || failed[1].Rule != "io" {
		t.Errorf("Unexpected failed rules: %+v", failed)
	}
}

func TestSplitResult_Written(t *testing.T) {
	res := sqlbundle.SplitResult{Objects: []sqlbundle.SplitObject{
		{Name: "p1", Written: true},
		{Name: "p2", Written: false, Reason: "exists"},
	}}
	written := res.Written()
	if len(written) != 1 || written[0].Name != "p1" {
		t.Errorf("Unexpected written objects: %+v", written)
	}
}
