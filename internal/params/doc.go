// Package params provides the parameter scope threaded through rule
// resolution and the `{name}` substitution applied to fragment bodies.
//
// # Scope Layers
//
// The root scope is built from, in increasing precedence:
//   - the settings file's general section
//   - .env files passed with --params-file (later files win)
//   - --param key=value pairs
//
// Each composite rule merges its own key/values over the inherited scope
// and hands the copy to its children. Changes never flow back to the parent.
//
// # Placeholders
//
// Fragment bodies reference parameters as {name}. Literal braces are
// written doubled: {{ and }}.
//
//	create table {schema}_audit (...);
//
// A placeholder that is unknown or malformed yields a *SubstitutionError;
// callers keep the original text and report the error.
package params
