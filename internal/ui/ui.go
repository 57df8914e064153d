// Package ui renders datagen's terminal output: headers, summaries,
// spinners and progress bars, falling back to plain text when stdout is
// not a terminal or colors are disabled.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods.
type UI struct {
	IsTTY   bool
	Width   int
	NoColor bool
}

// KV is one line of a header or summary. Status, when set, decorates the
// value with the matching symbol and color.
type KV struct {
	Key    string
	Value  string
	Status Status
}

// Status represents the outcome of an operation.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusProgress
	StatusSuccess
	StatusError
)

// mark is the symbol and style a status renders with
type mark struct {
	symbol string
	style  lipgloss.Style
}

var marks = map[Status]mark{
	StatusPending:  {SymbolPending, StyleMuted},
	StatusProgress: {SymbolProgress, StyleProgress},
	StatusSuccess:  {SymbolSuccess, StyleSuccess},
	StatusError:    {SymbolError, StyleError},
}

const nameWidth = 15

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
	keyStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)
	boxTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
)

// New creates a UI for stdout. NO_COLOR in the environment disables styling.
func New() *UI {
	fd := int(os.Stdout.Fd())
	u := &UI{
		IsTTY:   term.IsTerminal(fd),
		Width:   80,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
	if u.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			u.Width = w
		}
	}
	return u
}

// SetNoColor disables colors and animations.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

func (u *UI) styled() bool {
	return u.IsTTY && !u.NoColor
}

// Header renders a command banner.
func (u *UI) Header(title string) string {
	if !u.styled() {
		return "=== " + title + " ==="
	}
	return headerStyle.Render(title)
}

// KeyValue renders one configuration line under a header.
func (u *UI) KeyValue(key, value string) string {
	if !u.styled() {
		return fmt.Sprintf("%-10s %s", key+":", value)
	}
	return "  " + keyStyle.Width(12).Render(key) + " " + valueStyle.Render(value)
}

func (u *UI) Success(msg string) string {
	if !u.styled() {
		return "[OK] " + msg
	}
	return StyleSuccess.Render(SymbolSuccess+" ") + msg
}

func (u *UI) Error(msg string) string {
	if !u.styled() {
		return "[FAILED] " + msg
	}
	return StyleError.Render(SymbolError + " " + msg)
}

func (u *UI) Warning(msg string) string {
	if !u.styled() {
		return "[WARN] " + msg
	}
	return StyleWarning.Render(SymbolWarning + " " + msg)
}

func (u *UI) Muted(msg string) string {
	if !u.styled() {
		return msg
	}
	return StyleMuted.Render(msg)
}

// StatusKV is the closing line of a summary box.
func StatusKV(ok bool) KV {
	if ok {
		return KV{Key: "Status", Value: "Success", Status: StatusSuccess}
	}
	return KV{Key: "Status", Value: "Failed", Status: StatusError}
}

// SummaryBox renders the end-of-command summary.
func (u *UI) SummaryBox(title string, items []KV) string {
	var sb strings.Builder
	if !u.styled() {
		fmt.Fprintf(&sb, "\n=== %s ===\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "%-14s %s\n", item.Key+":", item.Value)
		}
		return sb.String()
	}

	width := 0
	for _, item := range items {
		width = max(width, len(item.Key))
	}

	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		value := valueStyle.Render(item.Value)
		if m, ok := marks[item.Status]; ok {
			value = m.style.Render(m.symbol + " " + item.Value)
		}
		sb.WriteString("  " + keyStyle.Width(width+2).Render(item.Key) + " " + value)
	}

	return "\n" + boxTitleStyle.Render("  "+title) + "\n" + boxStyle.Render(sb.String())
}

// TableRow renders one table or object line with its status.
func (u *UI) TableRow(name string, value string, status Status) string {
	if !u.styled() {
		if status == StatusError {
			value = "FAILED: " + value
		}
		return fmt.Sprintf("  %-15s %s", name+":", value)
	}

	symbol := " "
	if m, ok := marks[status]; ok {
		symbol = m.style.Render(m.symbol)
		if status != StatusSuccess && status != StatusProgress {
			value = m.style.Render(value)
		}
	}
	return fmt.Sprintf("  %s %s %s", symbol, lipgloss.NewStyle().Width(nameWidth).Render(name), value)
}

// Section prints a phase heading such as "Loading data...".
func (u *UI) Section(title string) {
	if u.styled() {
		title = valueStyle.Render(title)
	}
	fmt.Printf("\n%s\n", title)
}

// PrintTableLoadResult prints the outcome of loading one table.
func (u *UI) PrintTableLoadResult(name string, rows int64, duration time.Duration, err error) {
	if err != nil {
		fmt.Println(u.TableRow(name, "FAILED", StatusError))
		fmt.Printf("    %s\n", u.Error(err.Error()))
		return
	}
	fmt.Println(u.TableRow(name, FormatRowCount(rows)+" rows in "+FormatDuration(duration), StatusSuccess))
}

// PrintUploaded prints one uploaded object.
func (u *UI) PrintUploaded(key string, size int64) {
	fmt.Println(u.TableRow(key, FormatBytes(size), StatusSuccess))
}

// PrintSkipped prints a table missing from the input directory.
func (u *UI) PrintSkipped(name string, reason string) {
	if !u.styled() {
		fmt.Printf("  %-15s SKIPPED (%s)\n", name+":", reason)
		return
	}
	fmt.Printf("  %s %s %s\n",
		StyleWarning.Render(SymbolWarning),
		lipgloss.NewStyle().Width(nameWidth).Render(name),
		StyleMuted.Render("skipped: "+reason),
	)
}
