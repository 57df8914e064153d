package database

import (
	"github.com/willfong/fintech-datagen/internal/generator"
)

// Table describes one generated CSV and the table it loads into
type Table struct {
	Name     string
	Columns  []string
	Nullable map[string]bool
}

// nullableColumns lists the columns written as an empty field for NULL
var nullableColumns = map[string][]string{
	generator.TableCustomers:     {"kyb_started_at", "kyb_submitted_at", "kyb_approved_at", "activated_at"},
	generator.TableSubscriptions: {"ended_at", "billing_paused_at", "suspended_at"},
	generator.TableFeatures:      {"last_used_at"},
	generator.TableTransactions:  {"merchant_name", "merchant_category", "city", "latitude", "longitude"},
	generator.TableRiskEvents:    {"transaction_id", "account_id", "resolved_at"},
	generator.TableAdSpend:       {"campaign_name", "conversions"},
}

// Tables returns every table in load order
func Tables() []Table {
	tables := make([]Table, 0, len(generator.Tables))
	for _, name := range generator.Tables {
		nullable := make(map[string]bool)
		for _, col := range nullableColumns[name] {
			nullable[col] = true
		}
		tables = append(tables, Table{
			Name:     name,
			Columns:  generator.Headers[name],
			Nullable: nullable,
		})
	}
	return tables
}
