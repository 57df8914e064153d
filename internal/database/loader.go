package database

import (
	"context"
	"fmt"
)

// Loader bulk-loads one table file into the database
type Loader interface {
	Load(ctx context.Context, src Source) (int64, error)
}

// NewLoader returns the bulk loader for the pool's dialect
func NewLoader(p *Pool) (Loader, error) {
	switch p.Dialect() {
	case MySQL:
		return &MySQLLoader{pool: p}, nil
	case Postgres:
		return &PostgresLoader{pool: p}, nil
	default:
		return nil, fmt.Errorf("no loader for %s", p.Dialect())
	}
}
