// Package vcs looks up the git commit that last touched a fragment.
//
// Lookups shell out to the git binary through a Runner, so tests can swap
// in a fake. Repository-wide facts (HEAD SHA and branch) are cached per
// repository root, per-file facts per path. A Git value lives for one
// build and is then discarded, so edits between builds are picked up.
//
// Fragments outside a repository, or a missing git binary, simply yield no
// commit info; builds never fail because of version control.
package vcs
