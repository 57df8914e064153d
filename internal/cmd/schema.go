package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/willfong/fintech-datagen/internal/database"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Output database schema files",
	Long: `Output the SQL schema of the raw_* tables.

Available schema types:
  full      Complete schema with tables and indexes (default)
  tables    Tables only, no indexes (for bulk loading)
  indexes   Indexes and foreign keys (run after bulk data load)

Dialects are mysql (MySQL 8+, MariaDB 10.6+) and postgres (PostgreSQL 13+).

Examples:
  datagen schema                                  # MySQL, complete schema
  datagen schema full --dialect postgres | psql analytics
  datagen schema tables -o ./sql/tables.sql       # Save to file
  datagen schema indexes | mysql -u root analytics`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSchema,
}

var (
	schemaOutputFile string
	schemaDialect    string
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
	schemaCmd.Flags().StringVar(&schemaDialect, "dialect", "", "SQL dialect: mysql or postgres (default: database.driver)")
}

func runSchema(cmd *cobra.Command, args []string) {
	u := newUI()

	part := database.SchemaFull
	if len(args) > 0 {
		part = database.SchemaPart(args[0])
	}
	if schemaDialect == "" {
		schemaDialect = cfg.Database.Driver
	}

	dialect, err := database.ParseDialect(schemaDialect)
	if err != nil {
		fail(u, err.Error())
	}
	content, err := database.Schema(dialect, part)
	if err != nil {
		fail(u, err.Error(), "Valid types: full, tables, indexes")
	}

	if schemaOutputFile == "" {
		fmt.Print(content)
		return
	}

	if dir := filepath.Dir(schemaOutputFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fail(u, fmt.Sprintf("Creating directory: %v", err))
		}
	}
	if err := os.WriteFile(schemaOutputFile, []byte(content), 0644); err != nil {
		fail(u, fmt.Sprintf("Writing file: %v", err))
	}
	fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
}
