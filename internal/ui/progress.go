package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// redrawInterval limits how often a bar is redrawn when updates arrive
// from many workers
const redrawInterval = 50 * time.Millisecond

// ProgressBar draws a determinate progress bar for one table or phase.
// It is safe for concurrent use and satisfies generator.Progress.
type ProgressBar struct {
	ui    *UI
	bar   progress.Model
	label string
	total int64

	mu       sync.Mutex
	current  int64
	start    time.Time
	lastDraw time.Time
	rendered bool
}

// NewProgressBar creates a progress bar for total items.
func (u *UI) NewProgressBar(label string, total int64) *ProgressBar {
	return &ProgressBar{
		ui:    u,
		bar:   newBar(),
		label: label,
		total: total,
		start: time.Now(),
	}
}

func newBar() progress.Model {
	return progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
}

// fraction returns done/total clamped to [0, 1]; an empty total counts as done
func fraction(done, total int64) float64 {
	if total <= 0 {
		return 1
	}
	pct := float64(done) / float64(total)
	if pct > 1 {
		return 1
	}
	return pct
}

// Update sets the current count.
func (p *ProgressBar) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	if !p.ui.styled() {
		if !p.rendered {
			fmt.Printf("  %s: ", p.label)
			p.rendered = true
		}
		return
	}
	if time.Since(p.lastDraw) < redrawInterval {
		return
	}
	p.lastDraw = time.Now()

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s",
		lipgloss.NewStyle().Width(24).Render(p.label),
		p.bar.ViewAs(fraction(p.current, p.total)),
		StyleMuted.Render(fmt.Sprintf("%s/%s", FormatRowCount(p.current), FormatRowCount(p.total))),
	)
}

// Complete finishes the bar with a success line.
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := FormatDuration(time.Since(p.start))
	if !p.ui.styled() {
		if !p.rendered {
			fmt.Printf("  %s: ", p.label)
		}
		fmt.Printf("%d rows in %s\n", p.current, elapsed)
		return
	}

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		lipgloss.NewStyle().Width(24).Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%s rows in %s", FormatRowCount(p.current), elapsed)),
	)
}

// Fail finishes the bar with an error line.
func (p *ProgressBar) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ui.styled() {
		fmt.Printf("FAILED: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		lipgloss.NewStyle().Width(24).Render(p.label),
		StyleError.Render(err.Error()),
	)
}

// IndexProgress shows how many index and constraint statements have run.
type IndexProgress struct {
	ui    *UI
	bar   progress.Model
	total int

	mu      sync.Mutex
	current int
}

// NewIndexProgress creates an index progress display.
func (u *UI) NewIndexProgress(total int) *IndexProgress {
	return &IndexProgress{ui: u, bar: newBar(), total: total}
}

// Update records that done of total statements have run.
func (p *IndexProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current, p.total = done, total
	if !p.ui.styled() {
		fmt.Printf("  [%d/%d] Creating index/constraint...\r", done, total)
		return
	}

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s",
		p.bar.ViewAs(fraction(int64(done), int64(total))),
		StyleMuted.Render(fmt.Sprintf("[%d/%d]", done, total)),
		StyleMuted.Render("Creating indexes..."),
	)
}

// Complete finishes with a success line.
func (p *IndexProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ui.styled() {
		fmt.Printf("\n  Created %d indexes and constraints\n", p.total)
		return
	}
	fmt.Fprintf(os.Stdout, "\r\033[K  %s Created %d indexes and constraints\n",
		StyleSuccess.Render(SymbolSuccess), p.total)
}
