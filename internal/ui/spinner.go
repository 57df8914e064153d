package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner shows an animated indicator while a step of unknown length runs,
// such as connecting to the database or creating tables.
type Spinner struct {
	ui    *UI
	label string

	mu      sync.Mutex
	started bool
	stop    sync.Once
	done    chan struct{}
	wg      sync.WaitGroup
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner; nothing is drawn until Start.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		done:  make(chan struct{}),
	}
}

// Start begins the animation. Without styling the label is printed once.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if !s.ui.styled() {
		fmt.Printf("%s...", s.label)
		return
	}

	s.wg.Add(1)
	go s.animate()
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	style := lipgloss.NewStyle().Foreground(ColorPrimary)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame = (frame + 1) % len(spinnerFrames) {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprintf(os.Stdout, "\r%s %s...", style.Render(spinnerFrames[frame]), s.label)
		}
	}
}

// halt stops the animation and reports whether the spinner was running
func (s *Spinner) halt() bool {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return false
	}

	s.stop.Do(func() { close(s.done) })
	s.wg.Wait()
	return true
}

// Stop clears the spinner without a final status.
func (s *Spinner) Stop() {
	if s.halt() && s.ui.styled() {
		fmt.Fprint(os.Stdout, "\r\033[K")
	}
}

// Success stops the spinner and shows msg with a check mark.
func (s *Spinner) Success(msg string) {
	s.finish(StyleSuccess.Render(SymbolSuccess), lipgloss.NewStyle(), msg)
}

// Error stops the spinner and shows msg in red.
func (s *Spinner) Error(msg string) {
	s.finish(StyleError.Render(SymbolError), StyleError, msg)
}

func (s *Spinner) finish(symbol string, style lipgloss.Style, msg string) {
	if !s.halt() {
		return
	}
	if !s.ui.styled() {
		fmt.Printf(" %s\n", msg)
		return
	}
	fmt.Fprintf(os.Stdout, "\r\033[K%s %s... %s\n", symbol, s.label, style.Render(msg))
}
