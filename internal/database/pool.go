package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/willfong/fintech-datagen/internal/config"
)

// Dialect names a supported database
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect accepts the driver names used in configuration. "mariadb"
// is an alias for mysql.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (want mysql or postgres)", s)
	}
}

// Pool wraps a sql.DB with the dialect it speaks and simple statement stats
type Pool struct {
	db      *sql.DB
	dialect Dialect

	totalStatements  atomic.Int64
	failedStatements atomic.Int64
	totalLatencyNs   atomic.Int64
}

// NewPool opens a connection pool for the configured driver. It does not
// connect; call Ping to verify the server is reachable.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Pool{db: db, dialect: dialect}, nil
}

// Ping verifies the database connection is working
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close shuts down the connection pool
func (p *Pool) Close() error {
	return p.db.Close()
}

// DB returns the underlying sql.DB
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Dialect returns the database the pool talks to
func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// ExecContext executes a statement that doesn't return rows
func (p *Pool) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := p.db.ExecContext(ctx, query, args...)
	p.record(time.Since(start), err)
	return result, err
}

func (p *Pool) record(d time.Duration, err error) {
	p.totalStatements.Add(1)
	p.totalLatencyNs.Add(d.Nanoseconds())
	if err != nil {
		p.failedStatements.Add(1)
	}
}

// Stats returns connection pool and statement statistics
func (p *Pool) Stats() PoolStats {
	dbStats := p.db.Stats()
	total := p.totalStatements.Load()

	var avg time.Duration
	if total > 0 {
		avg = time.Duration(p.totalLatencyNs.Load() / total)
	}
	return PoolStats{
		OpenConnections:  dbStats.OpenConnections,
		InUse:            dbStats.InUse,
		WaitCount:        dbStats.WaitCount,
		WaitDuration:     dbStats.WaitDuration,
		TotalStatements:  total,
		FailedStatements: p.failedStatements.Load(),
		AvgLatency:       avg,
	}
}

// PoolStats contains connection pool and statement statistics
type PoolStats struct {
	OpenConnections int
	InUse           int
	WaitCount       int64
	WaitDuration    time.Duration

	TotalStatements  int64
	FailedStatements int64
	AvgLatency       time.Duration
}

// MaskDSN hides the password in a MySQL or URL-style DSN
func MaskDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		rest := dsn[i+3:]
		at := strings.Index(rest, "@")
		colon := strings.Index(rest, ":")
		if at > 0 && colon >= 0 && colon < at {
			return dsn[:i+3] + rest[:colon+1] + "***" + rest[at:]
		}
		return dsn
	}

	if colon := strings.Index(dsn, ":"); colon > 0 {
		rest := dsn[colon:]
		if at := strings.Index(rest, "@"); at > 0 {
			return dsn[:colon+1] + "***" + rest[at:]
		}
	}
	return dsn
}
