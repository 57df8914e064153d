// Package config contains the defaults and runtime configuration for the
// dataset generator. Probabilities that shape the generated data live here
// so they can be tuned from a config file or the environment.
package config

import "time"

// =============================================================================
// GENERATION WINDOW AND VOLUME
// =============================================================================

const (
	// DefaultCustomers is the number of customers generated per run
	DefaultCustomers = 5000

	// DefaultStartDate is the first day customers can register (YYYY-MM-DD)
	DefaultStartDate = "2024-01-01"

	// DefaultEndDate is the generation horizon; nothing is dated after it
	DefaultEndDate = "2026-12-31"

	// DefaultOutputDir is where CSV files are written
	DefaultOutputDir = "./output"

	// DateLayout is the format of StartDate and EndDate
	DateLayout = "2006-01-02"
)

// =============================================================================
// TRANSACTION STREAM
// =============================================================================

const (
	// DormantActivityRate is the chance a never-activated customer still
	// has a handful of transactions
	DormantActivityRate = 0.20

	// DormantMaxTransactions caps the count for dormant customers
	DormantMaxTransactions = 5

	// RecencyExponent biases timestamps toward the end of the active window.
	// Values below 1 concentrate density near the end date.
	RecencyExponent = 0.7
)

// =============================================================================
// RISK EVENTS
// =============================================================================

const (
	// LinkedRiskEventRate is the chance a flagged transaction raises an event
	LinkedRiskEventRate = 0.15

	// CustomerRiskEventRatio sizes the customer-level pass relative to the
	// number of transaction-linked events (0.43 keeps them near 30% of total)
	CustomerRiskEventRatio = 0.43
)

// =============================================================================
// BALANCE SNAPSHOTS
// =============================================================================

const (
	// SnapshotIntervalDays is the spacing of balance snapshots
	SnapshotIntervalDays = 1
)

// =============================================================================
// IMPORT
// =============================================================================

const (
	// DefaultDriver is the database used by the import command
	DefaultDriver = "mysql"

	// MaxOpenConns bounds the import connection pool
	MaxOpenConns = 8

	// ConnMaxLifetime recycles pooled connections
	ConnMaxLifetime = 5 * time.Minute
)
