// Package checksum fingerprints fragment content.
//
// Every fragment gets two SHA-256 digests:
//
//   - Raw: the exact bytes, written into the build annotation block
//   - Normalized: the content with comments removed, case folded and
//     whitespace collapsed, used by inspect to spot fragments that differ
//     only in formatting
//
// String literals and quoted identifiers are kept verbatim during
// normalization, so '--' inside a literal is not treated as a comment.
package checksum
