// Package logging provides the Logger interface used across the sequence
// generator, backed by zerolog. Console output is meant for people reading
// stderr; JSON lines are meant for log collectors.
package logging
