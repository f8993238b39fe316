package orchestration

import (
	"testing"

	"github.com/agbru/fibseq/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		generators int
		wantNil    bool
		wantMulti  bool
	}{
		{-1, true, false},
		{0, true, false},
		{1, false, false},
		{3, false, true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.generators)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.generators, agg == nil, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumCalculators() != tt.generators {
			t.Errorf("NumCalculators() = %d, want %d", agg.NumCalculators(), tt.generators)
		}
		if agg.IsMultiCalculator() != tt.wantMulti {
			t.Errorf("IsMultiCalculator() = %v for %d generators", agg.IsMultiCalculator(), tt.generators)
		}
	}
}

func TestProgressAggregatorAverages(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)
	steps := []struct {
		update  progress.ProgressUpdate
		wantAvg float64
	}{
		{progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}, 0.25},
		{progress.ProgressUpdate{CalculatorIndex: 1, Value: 1.0}, 0.75},
		{progress.ProgressUpdate{CalculatorIndex: 0, Value: 1.0}, 1.0},
		// Out-of-range indices leave the tracked values untouched.
		{progress.ProgressUpdate{CalculatorIndex: 5, Value: 0.0}, 1.0},
		{progress.ProgressUpdate{CalculatorIndex: -1, Value: 0.0}, 1.0},
	}
	for i, step := range steps {
		got := agg.Update(step.update)
		if got.CalculatorIndex != step.update.CalculatorIndex || got.Value != step.update.Value {
			t.Errorf("step %d: echoed %+v", i, got)
		}
		if got.AverageProgress != step.wantAvg {
			t.Errorf("step %d: AverageProgress = %v, want %v", i, got.AverageProgress, step.wantAvg)
		}
	}
	if agg.CalculateAverage() != 1.0 {
		t.Errorf("CalculateAverage() = %v, want 1", agg.CalculateAverage())
	}
}

func TestProgressAggregatorComplete(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(3)
	agg.Update(progress.ProgressUpdate{CalculatorIndex: 1, Value: 0.2})
	agg.Complete()
	if got := agg.CalculateAverage(); got != 1.0 {
		t.Errorf("CalculateAverage() after Complete = %v, want 1", got)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.ProgressUpdate, 4)
	for i := range 4 {
		ch <- progress.ProgressUpdate{CalculatorIndex: i % 2, Value: float64(i) / 4}
	}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("channel still holds %d updates", len(ch))
	}
}
