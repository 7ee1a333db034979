package terminal

import (
	"fmt"
	"io"
	"time"

	"auto_swiper/domain/entities"
)

const divider = "=================================================="

// View renders the startup banner and the session summary. Log mirroring is
// the logger's job; this is only the human-facing frame around a session.
type View struct {
	out io.Writer
}

// NewView - creates a view writing to out.
func NewView(out io.Writer) *View {
	return &View{out: out}
}

// Banner - prints the startup banner.
func (v *View) Banner(version string, startedAt time.Time) {
	fmt.Fprintln(v.out, divider)
	fmt.Fprintf(v.out, "Auto-Swiper v%s\n", version)
	fmt.Fprintf(v.out, "Started: %s\n", startedAt.Format("01/02/2006, 03:04:05 PM"))
	fmt.Fprintln(v.out, divider)
	fmt.Fprintln(v.out)
}

// Summary - prints the final session statistics.
func (v *View) Summary(stats entities.SessionStats) {
	total := stats.Clicks + stats.Skips
	successRate := 0.0
	if total > 0 {
		successRate = float64(stats.Clicks) / float64(total) * 100
	}

	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, divider)
	fmt.Fprintln(v.out, "Session Summary")
	fmt.Fprintln(v.out, divider)
	fmt.Fprintf(v.out, "Likes sent:        %d\n", stats.Likes)
	fmt.Fprintf(v.out, "Successful clicks: %d\n", stats.Clicks)
	fmt.Fprintf(v.out, "Skipped steps:     %d\n", stats.Skips)
	fmt.Fprintf(v.out, "Total attempts:    %d\n", total)
	fmt.Fprintf(v.out, "Success rate:      %.1f%%\n", successRate)
	fmt.Fprintf(v.out, "Elapsed:           %s\n", stats.Elapsed().Round(time.Second))
	fmt.Fprintln(v.out, SummaryLine(stats))
	fmt.Fprintln(v.out, divider)
}

// SummaryLine builds the one-line session outcome.
func SummaryLine(stats entities.SessionStats) string {
	return fmt.Sprintf("%d likes sent, stopped: %s", stats.Likes, stats.StopReason)
}
