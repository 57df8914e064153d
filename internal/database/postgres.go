package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/lib/pq"
)

// PostgresLoader copies CSV files into PostgreSQL with COPY FROM STDIN,
// one transaction per table.
type PostgresLoader struct {
	pool *Pool
}

// Load streams the file row by row into a COPY statement
func (l *PostgresLoader) Load(ctx context.Context, src Source) (n int64, err error) {
	r, err := src.Open()
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := r.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	tx, err := l.pool.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(src.Table.Name, src.Table.Columns...))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare COPY into %s: %w", src.Table.Name, err)
	}

	n, err = copyRows(ctx, csv.NewReader(r), src.Table, func(args []any) error {
		_, err := stmt.ExecContext(ctx, args...)
		return err
	})
	if err != nil {
		stmt.Close()
		return 0, fmt.Errorf("COPY into %s failed at row %d: %w", src.Table.Name, n+1, err)
	}

	// An empty Exec flushes the buffered rows
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("COPY into %s failed: %w", src.Table.Name, err)
	}
	if err = stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close COPY: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", src.Table.Name, err)
	}
	return n, nil
}

// copyRows checks the header and hands each record to exec as COPY
// arguments. It returns the number of rows passed to exec.
func copyRows(ctx context.Context, r *csv.Reader, t Table, exec func([]any) error) (int64, error) {
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != len(t.Columns) {
		return 0, fmt.Errorf("header has %d columns, %s expects %d", len(header), t.Name, len(t.Columns))
	}

	var n int64
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		if err := exec(CopyArgs(t, record)); err != nil {
			return n, err
		}
		n++
	}
}

// CopyArgs converts a CSV record to COPY arguments. Empty fields in
// nullable columns become NULL.
func CopyArgs(t Table, record []string) []any {
	args := make([]any, len(record))
	for i, v := range record {
		if v == "" && i < len(t.Columns) && t.Nullable[t.Columns[i]] {
			args[i] = nil
			continue
		}
		args[i] = v
	}
	return args
}
