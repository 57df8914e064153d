package ui

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration compactly (250ms, 2.5s, 1m5s, 2h3m).
func FormatDuration(d time.Duration) string {
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

// FormatRowCount formats a row count with a K or M suffix.
func FormatRowCount(rows int64) string {
	switch {
	case rows >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(rows)/1_000_000)
	case rows >= 1_000:
		return fmt.Sprintf("%.1fK", float64(rows)/1_000)
	default:
		return fmt.Sprintf("%d", rows)
	}
}

// FormatBytes formats a byte count in binary units.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
