// Package cli renders diagnostics for the fibseq command line: progress
// spinners, comparison tables, run summaries and shell completion scripts.
// Values themselves are written to stdout by the sequence driver; everything
// in this package targets the diagnostic writer.
package cli
