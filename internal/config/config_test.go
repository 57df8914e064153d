package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	start, end, err := cfg.Generate.Window()
	require.NoError(t, err)
	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, 2026, end.Year())
	assert.Equal(t, 0.43, cfg.Generate.CustomerRiskEventRatio)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.NumCustomers = 0
	cfg.Generate.LinkedRiskEventRate = 1.5
	cfg.Database.Driver = "oracle"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Generate.NumCustomers")
	assert.Contains(t, err.Error(), "Generate.LinkedRiskEventRate")
	assert.Contains(t, err.Error(), "Database.Driver")
	assert.Contains(t, err.Error(), "Log.Format")
}

func TestValidateWindow(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.StartDate = "2025-06-01"
		cfg.Generate.EndDate = "2025-01-01"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end_date must be after")
	})

	t.Run("malformed date", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.StartDate = "01/02/2024"
		require.Error(t, cfg.Validate())
		_, _, err := cfg.Generate.Window()
		require.Error(t, err)
	})
}

func TestLoadFromOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("generate.num_customers", 250)
	v.Set("generate.customer_risk_event_ratio", 0.5)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Generate.NumCustomers)
	assert.Equal(t, 0.5, cfg.Generate.CustomerRiskEventRatio)
	assert.Equal(t, DefaultStartDate, cfg.Generate.StartDate)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATAGEN_GENERATE_SEED", "99")
	t.Setenv("DATAGEN_LOG_LEVEL", "debug")

	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Generate.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}
