// Package metrics records generation statistics in a Prometheus registry
// and reads runtime memory statistics.
package metrics
