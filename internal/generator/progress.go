package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Progress receives row counts while a phase runs. ui.ProgressBar
// satisfies it, as does ProgressReporter.
type Progress interface {
	Update(current int64)
	Complete()
}

// ProgressFactory creates a Progress for a labelled phase of known size
type ProgressFactory func(label string, total int64) Progress

type noProgress struct{}

func (noProgress) Update(int64) {}
func (noProgress) Complete()    {}

// ProgressReporter is a plain-text Progress for logs and pipes. On a
// terminal it redraws a single line; otherwise it prints a line per update.
type ProgressReporter struct {
	mu sync.Mutex

	output     io.Writer
	label      string
	total      int64
	updateFreq time.Duration
	isTTY      bool

	current   int64
	startTime time.Time
	lastPrint time.Time
	done      bool
}

// ProgressConfig holds settings for the progress reporter
type ProgressConfig struct {
	Total int64
	Label string
	// Defaults to os.Stderr
	Output io.Writer
	// Minimum time between redraws (default 100ms, 5s when not a TTY)
	UpdateFrequency time.Duration
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(cfg ProgressConfig) *ProgressReporter {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	isTTY := false
	if f, ok := output.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	freq := cfg.UpdateFrequency
	if freq == 0 {
		freq = 100 * time.Millisecond
		if !isTTY {
			freq = 5 * time.Second
		}
	}

	now := time.Now()
	return &ProgressReporter{
		output:     output,
		label:      cfg.Label,
		total:      cfg.Total,
		updateFreq: freq,
		isTTY:      isTTY,
		startTime:  now,
		lastPrint:  now,
	}
}

// PlainProgress is a ProgressFactory writing ProgressReporters to w
func PlainProgress(w io.Writer) ProgressFactory {
	return func(label string, total int64) Progress {
		return NewProgressReporter(ProgressConfig{Total: total, Label: label, Output: w})
	}
}

// Update sets the current count and redraws if enough time has passed
func (p *ProgressReporter) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	if now := time.Now(); now.Sub(p.lastPrint) >= p.updateFreq {
		p.lastPrint = now
		p.render()
	}
}

// Complete prints the final count and rate
func (p *ProgressReporter) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true

	elapsed := time.Since(p.startTime)
	var sb strings.Builder
	if p.isTTY {
		sb.WriteString("\r")
	}
	if p.label != "" {
		sb.WriteString(p.label + ": ")
	}
	fmt.Fprintf(&sb, "%d rows in %s (%.0f/s)", p.current, formatDuration(elapsed), rate(p.current, elapsed))
	if p.isTTY {
		sb.WriteString("\033[K")
	}
	sb.WriteString("\n")

	fmt.Fprint(p.output, sb.String())
}

func (p *ProgressReporter) render() {
	elapsed := time.Since(p.startTime)
	r := rate(p.current, elapsed)

	var sb strings.Builder
	if p.isTTY {
		sb.WriteString("\r")
	}
	if p.label != "" {
		sb.WriteString(p.label + ": ")
	}

	if p.total > 0 {
		fmt.Fprintf(&sb, "%d/%d (%.1f%%)", p.current, p.total, float64(p.current)/float64(p.total)*100)
		if r > 0 && p.current < p.total {
			eta := time.Duration(float64(p.total-p.current) / r * float64(time.Second))
			fmt.Fprintf(&sb, " ETA: %s", formatDuration(eta))
		}
	} else {
		fmt.Fprintf(&sb, "%d", p.current)
	}
	fmt.Fprintf(&sb, " (%.0f/s)", r)

	if p.isTTY {
		sb.WriteString("\033[K")
	} else {
		sb.WriteString("\n")
	}
	fmt.Fprint(p.output, sb.String())
}

func rate(n int64, elapsed time.Duration) float64 {
	if elapsed < 10*time.Millisecond {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
