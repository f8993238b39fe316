// Package format holds pure string formatting helpers shared by the
// presentation layers.
package format
