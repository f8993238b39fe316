package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	progressbar "github.com/charmbracelet/bubbles/progress"

	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/progress"
	"github.com/agbru/fibseq/internal/ui"
)

const (
	// TruncationLimit is the digit threshold from which a value is truncated
	// in diagnostics to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// newProgressBar returns the bar renderer matching the current palette.
func newProgressBar() progressbar.Model {
	opts := []progressbar.Option{
		progressbar.WithWidth(ProgressBarWidth),
		progressbar.WithoutPercentage(),
	}
	if ui.GetCurrentTheme().Name == "none" {
		opts = append(opts, progressbar.WithSolidFill(""))
	} else {
		opts = append(opts, progressbar.WithDefaultGradient())
	}
	return progressbar.New(opts...)
}

// formatProgress renders the spinner suffix for the aggregated completion.
// A comparison also names how many strategies the average covers.
func formatProgress(bar progressbar.Model, agg *orchestration.ProgressAggregator) string {
	avg := agg.CalculateAverage()
	s := fmt.Sprintf(" %s %5.1f%%", bar.ViewAs(avg), avg*100)
	if agg.IsMultiCalculator() {
		s += fmt.Sprintf(" (%d strategies)", agg.NumCalculators())
	}
	return s
}

// DisplayProgress shows a spinner with an aggregated progress bar on out
// until progressChan is closed. With no generators it only drains the
// channel.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - progressChan: Updates from the running generators.
//   - numGenerators: The number of generators being tracked.
//   - out: The diagnostic writer (stderr).
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numGenerators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numGenerators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	bar := newProgressBar()
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(formatProgress(bar, agg))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				agg.Complete()
				s.UpdateSuffix(formatProgress(bar, agg))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(formatProgress(bar, agg))
		}
	}
}

// ProgressCallback returns a callback driving a single-generator progress
// display, and a stop function that must be called once the run is over.
func ProgressCallback(out io.Writer) (progress.ProgressCallback, func()) {
	ch := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 1, out)
	return progress.ChannelCallback(ch, 0), func() {
		close(ch)
		wg.Wait()
	}
}
