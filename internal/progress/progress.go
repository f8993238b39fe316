// Package progress carries progress notifications from long-running work
// to whatever presents them.
package progress

// ProgressUpdate is a progress notification for one running job.
type ProgressUpdate struct {
	// CalculatorIndex identifies the job when several are tracked.
	CalculatorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a job.
type ProgressCallback func(value float64)

// ChannelCallback returns a callback forwarding updates for job index to ch.
// Updates are dropped rather than blocking when ch is full.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	return func(value float64) {
		if ch == nil {
			return
		}
		select {
		case ch <- ProgressUpdate{CalculatorIndex: index, Value: value}:
		default:
		}
	}
}

// Fraction returns done/total clamped to [0, 1]. A non-positive total is
// reported as complete.
func Fraction(done, total int64) float64 {
	if total <= 0 {
		return 1
	}
	f := float64(done) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
