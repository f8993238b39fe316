package orchestration

import (
	"github.com/agbru/fibseq/internal/progress"
)

// ProgressAggregator tracks the progress of several generators and exposes
// the average completed fraction.
type ProgressAggregator struct {
	values []float64
}

// NewProgressAggregator creates a new aggregator for the given number
// of generators. Returns nil if numGenerators <= 0.
func NewProgressAggregator(numGenerators int) *ProgressAggregator {
	if numGenerators <= 0 {
		return nil
	}
	return &ProgressAggregator{values: make([]float64, numGenerators)}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// CalculatorIndex is the index of the generator that sent the update.
	CalculatorIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all generators.
	AverageProgress float64
}

// Update processes a single progress update and returns the aggregated result.
// Updates for an out-of-range index only refresh the average.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(a.values) {
		a.values[update.CalculatorIndex] = update.Value
	}
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var sum float64
	for _, v := range a.values {
		sum += v
	}
	return sum / float64(len(a.values))
}

// Complete marks every generator as done.
func (a *ProgressAggregator) Complete() {
	for i := range a.values {
		a.values[i] = 1
	}
}

// NumCalculators returns the number of generators being tracked.
func (a *ProgressAggregator) NumCalculators() int {
	return len(a.values)
}

// IsMultiCalculator returns true if tracking more than one generator.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return len(a.values) > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numGenerators <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
