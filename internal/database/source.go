package database

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Source is a table file found in an input directory
type Source struct {
	Table      Table
	Path       string
	Compressed bool
}

// FindSources locates the file of each table, preferring .csv.xz over
// .csv. Tables without a file are returned in missing.
func FindSources(dir string, tables []Table) (found []Source, missing []string) {
	for _, t := range tables {
		xzPath := filepath.Join(dir, t.Name+".csv.xz")
		csvPath := filepath.Join(dir, t.Name+".csv")

		switch {
		case fileExists(xzPath):
			found = append(found, Source{Table: t, Path: xzPath, Compressed: true})
		case fileExists(csvPath):
			found = append(found, Source{Table: t, Path: csvPath})
		default:
			missing = append(missing, t.Name)
		}
	}
	return found, missing
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Open returns the CSV content of the source, decompressing through xz
// when needed. Closing the reader waits for xz and reports its failure.
func (s Source) Open() (io.ReadCloser, error) {
	if !s.Compressed {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
		}
		return f, nil
	}

	cmd := exec.Command("xz", "-d", "-c", s.Path)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create xz pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start xz: %w", err)
	}
	return &xzReader{ReadCloser: stdout, cmd: cmd}, nil
}

type xzReader struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (r *xzReader) Close() error {
	// Drain so xz can exit even if the consumer stopped early
	_, _ = io.Copy(io.Discard, r.ReadCloser)
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("xz decompression failed: %w", err)
	}
	return nil
}
