package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

//go:embed schemas/*.sql
var schemaFS embed.FS

// SchemaPart selects which DDL to return
type SchemaPart string

const (
	// SchemaFull is tables followed by indexes and foreign keys
	SchemaFull SchemaPart = "full"
	// SchemaTables is tables only, for bulk loading
	SchemaTables SchemaPart = "tables"
	// SchemaIndexes is indexes and foreign keys, run after loading
	SchemaIndexes SchemaPart = "indexes"
)

// Schema returns the DDL for a dialect
func Schema(dialect Dialect, part SchemaPart) (string, error) {
	switch part {
	case SchemaTables, SchemaIndexes:
		content, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s_%s.sql", dialect, part))
		if err != nil {
			return "", fmt.Errorf("no %s schema for %s: %w", part, dialect, err)
		}
		return string(content), nil
	case SchemaFull:
		tables, err := Schema(dialect, SchemaTables)
		if err != nil {
			return "", err
		}
		indexes, err := Schema(dialect, SchemaIndexes)
		if err != nil {
			return "", err
		}
		return tables + "\n" + indexes, nil
	default:
		return "", fmt.Errorf("unknown schema part %q (want full, tables or indexes)", part)
	}
}

// SplitStatements splits a script on lines ending in ";", dropping
// comment-only lines.
func SplitStatements(content string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	return statements
}

// Execer is satisfied by *sql.DB, *sql.Conn, *sql.Tx and *Pool
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateTables creates every table that does not exist yet
func CreateTables(ctx context.Context, db Execer, dialect Dialect) error {
	content, err := Schema(dialect, SchemaTables)
	if err != nil {
		return err
	}
	for _, stmt := range SplitStatements(content) {
		stmt = strings.Replace(stmt, "CREATE TABLE ", "CREATE TABLE IF NOT EXISTS ", 1)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// CreateIndexes applies indexes and foreign keys. Ones that already exist
// are skipped so the import can be rerun. progress, if set, is called
// before each statement.
func CreateIndexes(ctx context.Context, db Execer, dialect Dialect, progress func(done, total int)) error {
	content, err := Schema(dialect, SchemaIndexes)
	if err != nil {
		return err
	}

	statements := SplitStatements(content)
	for i, stmt := range statements {
		if progress != nil {
			progress(i+1, len(statements))
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if IsAlreadyExists(err) {
				continue
			}
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// IsAlreadyExists reports whether err is a duplicate index, constraint or
// table error from either database.
func IsAlreadyExists(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1050, // table exists
			1061, // duplicate key name
			1826: // duplicate foreign key constraint name
			return true
		}
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P07" || pqErr.Code == "42710"
	}
	return false
}
