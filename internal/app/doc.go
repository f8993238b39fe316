// Package app wires configuration, generators, presentation and metrics
// into the fibseq command. It selects the run mode (sequence, single index,
// comparison or completion) and maps the outcome to a process exit code.
package app
