// Package assembler builds deploy and drop scripts from composition rules.
//
// A rule is a settings section whose sources list child rules or fragment
// files. Build expands each requested rule depth-first, left to right,
// streaming every fragment into the rule's deploy script and a matching
// drop statement for every object it creates into the drop script. The
// drop script is written newest-first, so objects are dropped in the
// reverse order of creation.
//
// Failures are contained: a missing rule, an empty sources list or an
// expansion cycle skips that branch while its siblings keep resolving, and
// a failed top-level rule never stops the next one. Only environment
// problems (missing working directory, unusable output directory, broken
// settings) abort the whole build.
package assembler
