package generator

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// TimeLayout is how timestamps appear in every CSV file
const TimeLayout = "2006-01-02 15:04:05"

// CSVWriter streams rows to a .csv file, or through xz to a .csv.xz file.
// Rows are buffered, never held in memory as a whole table.
type CSVWriter struct {
	mu     sync.Mutex
	out    io.WriteCloser
	path   string
	buffer *bufio.Writer
	writer *csv.Writer

	rowCount int64
	closed   bool
}

// CSVWriterConfig holds configuration for creating a CSV writer
type CSVWriterConfig struct {
	OutputDir string
	// Filename without extension, e.g. "raw_customers"
	Filename string
	Headers  []string
	// Buffer size in bytes (default: 64KB)
	BufferSize int
	// Pipe output through xz, producing .csv.xz
	Compress bool
	// xz preset 1-9 (default: 6)
	XZPreset int
}

// NewCSVWriter creates the output file and writes the header row.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}

	w := &CSVWriter{}
	if cfg.Compress {
		xz, err := NewXZWriter(XZWriterConfig{
			OutputDir: cfg.OutputDir,
			Filename:  cfg.Filename,
			Preset:    cfg.XZPreset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w.out, w.path = xz, xz.Path()
	} else {
		path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv")
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %s: %w", path, err)
		}
		w.out, w.path = f, path
	}

	w.buffer = bufio.NewWriterSize(w.out, bufSize)
	w.writer = csv.NewWriter(w.buffer)

	if len(cfg.Headers) > 0 {
		if err := w.writer.Write(cfg.Headers); err != nil {
			w.out.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return w, nil
}

// WriteRow writes a single row. Safe for concurrent use.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer for %s is closed", w.path)
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.rowCount++
	return nil
}

// WriteRows writes rows in order under a single lock.
func (w *CSVWriter) WriteRows(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer for %s is closed", w.path)
	}
	for _, row := range rows {
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		w.rowCount++
	}
	return nil
}

// Close flushes buffered rows and closes the file (or waits for xz).
// Calling Close more than once is a no-op.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.out.Close()
		return fmt.Errorf("csv flush error: %w", err)
	}
	if err := w.buffer.Flush(); err != nil {
		w.out.Close()
		return fmt.Errorf("buffer flush error: %w", err)
	}
	return w.out.Close()
}

// RowCount returns the number of data rows written (excludes header).
func (w *CSVWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the full path to the output file (.csv or .csv.xz)
func (w *CSVWriter) Path() string {
	return w.path
}

// FormatBool renders booleans as 1/0, which both MySQL and PostgreSQL accept
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatTime renders a UTC timestamp as "YYYY-MM-DD HH:MM:SS"
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FormatDate renders the calendar date only
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatTimePtr formats a *time.Time, empty for nil (NULL)
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

// FormatInt formats an int for CSV
func FormatInt(n int) string {
	return strconv.Itoa(n)
}

// FormatIntPtr formats an *int, empty for nil (NULL)
func FormatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// FormatMoney renders an amount with exactly two decimals
func FormatMoney(m utils.Money) string {
	return m.String()
}

// FormatCoord renders a coordinate with four decimals, empty for nil (NULL)
func FormatCoord(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 4, 64)
}

// FormatStringPtr returns the string, empty for nil (NULL)
func FormatStringPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
