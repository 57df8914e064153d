package database

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLLoader streams CSV files into MySQL or MariaDB with
// LOAD DATA LOCAL INFILE. The server must have local_infile enabled.
type MySQLLoader struct {
	pool *Pool
}

var readerSeq atomic.Int64

// Load registers the file as a driver reader handler and loads it on a
// dedicated connection with foreign key and unique checks off.
func (l *MySQLLoader) Load(ctx context.Context, src Source) (int64, error) {
	r, err := src.Open()
	if err != nil {
		return 0, err
	}

	name := fmt.Sprintf("%s_%d", src.Table.Name, readerSeq.Add(1))
	// Hide Close so the driver leaves it to us and xz errors surface
	mysql.RegisterReaderHandler(name, func() io.Reader { return struct{ io.Reader }{r} })
	defer mysql.DeregisterReaderHandler(name)

	n, loadErr := l.load(ctx, src.Table, "Reader::"+name)
	if closeErr := r.Close(); loadErr == nil && closeErr != nil {
		return 0, closeErr
	}
	return n, loadErr
}

func (l *MySQLLoader) load(ctx context.Context, t Table, infile string) (int64, error) {
	conn, err := l.pool.DB().Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	// Session variables only apply to this connection
	for _, q := range []string{"SET FOREIGN_KEY_CHECKS = 0", "SET UNIQUE_CHECKS = 0"} {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return 0, fmt.Errorf("%s: %w", q, err)
		}
	}

	start := time.Now()
	res, err := conn.ExecContext(ctx, LoadDataSQL(t, infile))
	l.pool.record(time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("LOAD DATA into %s failed: %w", t.Name, err)
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

// LoadDataSQL builds the LOAD DATA statement for a table. Nullable
// columns go through a user variable so an empty field becomes NULL.
func LoadDataSQL(t Table, infile string) string {
	var cols, sets []string
	for _, c := range t.Columns {
		if t.Nullable[c] {
			cols = append(cols, "@"+c)
			sets = append(sets, fmt.Sprintf("    %s = NULLIF(@%s, '')", c, c))
			continue
		}
		cols = append(cols, c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "LOAD DATA LOCAL INFILE '%s'\n", infile)
	fmt.Fprintf(&sb, "INTO TABLE %s\n", t.Name)
	sb.WriteString("CHARACTER SET utf8mb4\n")
	sb.WriteString("FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '\"'\n")
	sb.WriteString("LINES TERMINATED BY '\\n'\n")
	sb.WriteString("IGNORE 1 LINES\n")
	fmt.Fprintf(&sb, "(%s)", strings.Join(cols, ", "))
	if len(sets) > 0 {
		sb.WriteString("\nSET\n")
		sb.WriteString(strings.Join(sets, ",\n"))
	}
	return sb.String()
}
