package generator

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// XZWriter pipes bytes through an external xz process into a .csv.xz file.
type XZWriter struct {
	mu     sync.Mutex
	file   *os.File
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	path   string
	closed bool

	done    chan struct{}
	waitErr error
}

// XZWriterConfig holds configuration for the XZ writer
type XZWriterConfig struct {
	OutputDir string
	// Filename without extension; ".csv.xz" is appended
	Filename string
	// Compression preset 1-9, zero or out-of-range values mean 6
	Preset int
}

// NewXZWriter starts xz and returns a writer feeding its stdin.
func NewXZWriter(cfg XZWriterConfig) (*XZWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv.xz")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	preset := cfg.Preset
	if preset <= 0 || preset > 9 {
		preset = 6
	}

	cmd := exec.Command("xz", "-c", fmt.Sprintf("-%d", preset))
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	cleanup := func() {
		file.Close()
		os.Remove(path)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		cleanup()
		return nil, fmt.Errorf("failed to start xz: %w", err)
	}

	w := &XZWriter{
		file:  file,
		cmd:   cmd,
		stdin: stdin,
		path:  path,
		done:  make(chan struct{}),
	}
	go func() {
		w.waitErr = cmd.Wait()
		close(w.done)
	}()
	return w, nil
}

// Write implements io.Writer
func (w *XZWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fmt.Errorf("xz writer for %s is closed", w.path)
	}
	return w.stdin.Write(p)
}

// Close signals EOF, waits for xz to exit and closes the file. An xz
// failure takes precedence over a file close error.
func (w *XZWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.stdin.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close xz stdin: %w", err)
	}
	<-w.done

	fileErr := w.file.Close()
	if w.waitErr != nil {
		return fmt.Errorf("xz process failed: %w", w.waitErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close output file: %w", fileErr)
	}
	return nil
}

// Path returns the full path to the .xz file
func (w *XZWriter) Path() string {
	return w.path
}

// CheckXZAvailable reports an error with install hints when xz is missing.
func CheckXZAvailable() error {
	if err := exec.Command("xz", "--version").Run(); err != nil {
		return fmt.Errorf("xz not found: %w\nInstall with: apt install xz-utils (Linux) or brew install xz (macOS)", err)
	}
	return nil
}
