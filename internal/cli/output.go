// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted diagnostics to an [io.Writer]
//     (stderr in the application). They handle presentation and colorization.
//     Examples: [DisplayResult], [DisplaySummary], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue].
//
//   - Write* functions write values to the data stream (stdout).
//     Examples: [WriteValue].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/sysmon"
	"github.com/agbru/fibseq/internal/ui"
)

// WriteValue writes a single value in decimal on its own line.
func WriteValue(out io.Writer, value *big.Int) error {
	_, err := fmt.Fprintln(out, value.String())
	return err
}

// FormatValue returns the decimal form of value with thousands separators,
// truncated to its leading and trailing DisplayEdges digits when it has more
// than TruncationLimit digits and full is false.
func FormatValue(value *big.Int, full bool) string {
	s := value.String()
	if !full && len(s) > TruncationLimit {
		return fmt.Sprintf("%s...%s (truncated)", s[:DisplayEdges], s[len(s)-DisplayEdges:])
	}
	return format.FormatNumberString(s)
}

// DisplayResult shows details about a single value on the diagnostic writer.
//
// Parameters:
//   - value: The computed Fibonacci number.
//   - n: Its index.
//   - duration: The computation time.
//   - verbose: Print the full value instead of a truncated one.
//   - out: The diagnostic writer.
func DisplayResult(value *big.Int, n int64, duration time.Duration, verbose bool, out io.Writer) {
	digits := len(value.String())
	fmt.Fprintf(out, "\n%s%sResult%s\n", ui.ColorBold(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(out, "  Calculation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "  Number of digits: %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(digits)), ui.ColorReset())
	fmt.Fprintf(out, "  Binary size:      %s bits\n", format.FormatNumberString(fmt.Sprint(value.BitLen())))
	fmt.Fprintf(out, "  F(%d) = %s%s%s\n", n, ui.ColorGreen(), FormatValue(value, verbose), ui.ColorReset())
	if !verbose && digits > TruncationLimit {
		fmt.Fprintf(out, "  %sTip: use -v to display the full value.%s\n", ui.ColorMagenta(), ui.ColorReset())
	}
}

// DisplaySummary shows the outcome of a sequence run.
func DisplaySummary(summary sequence.Summary, out io.Writer) {
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("✓ %d values emitted with %s", summary.Count, summary.Algorithm)))
	fmt.Fprintf(out, "  Duration:         %s\n", format.FormatExecutionDuration(summary.Duration))
	fmt.Fprintf(out, "  Largest value:    %s digits\n", format.FormatNumberString(fmt.Sprint(summary.MaxDigits)))
}

// DisplayMemoryStats shows how memory grew during a run.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Dim("Memory Stats:"))
	fmt.Fprintf(out, "  Heap growth:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Heap objects:    +%d\n", delta.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	if delta.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}

// DisplaySystemStats shows a host resource snapshot in a bordered panel.
func DisplaySystemStats(stats sysmon.Stats, out io.Writer) {
	lines := []string{
		"System",
		fmt.Sprintf("CPU usage:    %.1f%%", stats.CPUPercent),
		fmt.Sprintf("Memory usage: %.1f%%", stats.MemPercent),
	}
	if stats.ProcessRSS > 0 {
		lines = append(lines, fmt.Sprintf("Process RSS:  %s", format.FormatBytes(stats.ProcessRSS)))
	}
	fmt.Fprintln(out, ui.Panel(strings.Join(lines, "\n")))
}
