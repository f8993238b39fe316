// Package orchestration runs several Fibonacci generators over the same
// bound and compares their sequences. It decouples the comparison logic from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
