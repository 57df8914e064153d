package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

func testOrchestratorConfig(t *testing.T, seed int64, workers int) OrchestratorConfig {
	t.Helper()
	start, end := date(2024, 1, 1), date(2024, 12, 31)
	return OrchestratorConfig{
		NumCustomers:         60,
		StartDate:            start,
		EndDate:              end,
		OutputDir:            t.TempDir(),
		Seed:                 seed,
		Workers:              workers,
		SnapshotIntervalDays: 30,
		Stream:               DefaultStreamConfig(),
		Risk:                 DefaultRiskConfig(end),
	}
}

func runOrchestrator(t *testing.T, cfg OrchestratorConfig) (*Orchestrator, *GenerationResult) {
	t.Helper()
	o, err := NewOrchestrator(cfg, OrchestratorOptions{})
	require.NoError(t, err)
	result, err := o.Run(context.Background())
	require.NoError(t, err)
	return o, result
}

func TestOrchestratorRun(t *testing.T) {
	cfg := testOrchestratorConfig(t, 42, 3)
	o, result := runOrchestrator(t, cfg)

	assert.Equal(t, uint64(42), result.Seed)
	assert.Equal(t, 60, result.CustomerCount)
	assert.GreaterOrEqual(t, result.AccountCount, 60)
	assert.Positive(t, result.TransactionCount)
	assert.Positive(t, result.BalanceCount)
	assert.Positive(t, result.AdSpendCount)
	assert.Equal(t, CompletedVolume(o.Transactions()), result.Volume)
	assert.NotEmpty(t, result.Volume)
	assert.Len(t, result.Workers, 3)
	assert.Len(t, result.Files, len(Tables))

	workerCustomers := 0
	for _, w := range result.Workers {
		workerCustomers += w.CustomerCount
	}
	assert.Equal(t, 60, workerCustomers)

	counts := map[string]int{
		TableCustomers:     result.CustomerCount,
		TableAccounts:      result.AccountCount,
		TableSubscriptions: result.SubscriptionCount,
		TableFeatures:      result.FeatureCount,
		TableTransactions:  result.TransactionCount,
		TableBalances:      int(result.BalanceCount),
		TableRiskEvents:    result.RiskEventCount,
		TableAdSpend:       result.AdSpendCount,
	}
	for table, n := range counts {
		records := readCSV(t, filepath.Join(cfg.OutputDir, table+".csv"))
		require.NotEmpty(t, records, table)
		assert.Equal(t, Headers[table], records[0], table)
		assert.Len(t, records, n+1, table)
		assert.Equal(t, float64(n), testutil.ToFloat64(o.Metrics().RowsGenerated.WithLabelValues(table)), table)
	}
}

func TestCompletedVolume(t *testing.T) {
	txns := []models.Transaction{
		{Currency: "USD", Amount: 1000, Status: models.TxStatusCompleted},
		{Currency: "USD", Amount: 250, Status: models.TxStatusCompleted},
		{Currency: "USD", Amount: 9999, Status: models.TxStatusPending},
		{Currency: "EUR", Amount: 700, Status: models.TxStatusCompleted},
		{Currency: "GBP", Amount: 500, Status: models.TxStatusFailed},
	}

	assert.Equal(t, map[string]utils.Money{"USD": 1250, "EUR": 700}, CompletedVolume(txns))
	assert.Empty(t, CompletedVolume(nil))
}

func TestOrchestratorReferentialIntegrity(t *testing.T) {
	cfg := testOrchestratorConfig(t, 7, 2)
	cfg.NumCustomers = 120
	o, _ := runOrchestrator(t, cfg)

	customers := make(map[string]bool)
	dormant := make(map[string]bool)
	accountOwner := make(map[string]string)
	accountOpened := make(map[string]time.Time)
	for _, b := range o.Bundles() {
		customers[b.Customer.Customer.ID] = true
		dormant[b.Customer.Customer.ID] = b.Customer.Customer.ActivatedAt == nil
		for _, a := range b.Accounts {
			accountOwner[a.ID] = a.CustomerID
			accountOpened[a.ID] = a.CreatedAt
			assert.Equal(t, b.Customer.Currency(), a.Currency)
		}
		if b.Subscription != nil {
			assert.Equal(t, b.Customer.Customer.ID, b.Subscription.CustomerID)
		}
	}

	txByID := make(map[string]models.Transaction)
	last := make(map[string]models.Transaction)
	for _, tx := range o.Transactions() {
		txByID[tx.ID] = tx
		assert.Equal(t, tx.CustomerID, accountOwner[tx.AccountID], "transaction on a foreign account")
		assert.False(t, tx.CreatedAt.After(cfg.EndDate))
		assert.False(t, tx.CreatedAt.Before(accountOpened[tx.AccountID]), "transaction before its account opened")
		if dormant[tx.CustomerID] {
			// Stray transactions of never-activated customers each start from zero
			assert.Zero(t, tx.BalanceBefore)
		} else if prev, ok := last[tx.AccountID]; ok {
			assert.Equal(t, prev.BalanceAfter, tx.BalanceBefore)
		}
		last[tx.AccountID] = tx
	}

	for _, b := range o.Bundles() {
		for _, a := range b.Accounts {
			if tx, ok := last[a.ID]; ok {
				assert.Equal(t, tx.BalanceAfter, a.CurrentBalance)
			} else {
				assert.Zero(t, a.CurrentBalance)
			}
		}
	}

	for _, ev := range o.RiskEvents() {
		assert.True(t, customers[ev.CustomerID])
		if ev.TransactionID != nil {
			tx, ok := txByID[*ev.TransactionID]
			require.True(t, ok)
			assert.Equal(t, tx.CustomerID, ev.CustomerID)
		}
		if ev.AccountID != nil {
			assert.Equal(t, ev.CustomerID, accountOwner[*ev.AccountID])
		}
	}
}

func TestOrchestratorReproducible(t *testing.T) {
	first := testOrchestratorConfig(t, 1234, 4)
	second := testOrchestratorConfig(t, 1234, 4)
	parallel := testOrchestratorConfig(t, 1234, 4)
	parallel.Parallel = true
	otherWorkers := testOrchestratorConfig(t, 1234, 1)

	runOrchestrator(t, first)
	runOrchestrator(t, second)
	runOrchestrator(t, parallel)
	runOrchestrator(t, otherWorkers)

	read := func(cfg OrchestratorConfig, table string) string {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, table+".csv"))
		require.NoError(t, err)
		return string(b)
	}
	for _, table := range Tables {
		assert.Equal(t, read(first, table), read(second, table), "%s differs between runs", table)
		assert.Equal(t, read(first, table), read(parallel, table), "%s differs when written in parallel", table)
	}

	// Customers come from their own stream, whatever the worker count
	assert.Equal(t, read(first, TableCustomers), read(otherWorkers, TableCustomers))
}

func TestOrchestratorSkipSnapshots(t *testing.T) {
	cfg := testOrchestratorConfig(t, 3, 2)
	cfg.SkipSnapshots = true
	_, result := runOrchestrator(t, cfg)

	assert.Zero(t, result.BalanceCount)
	assert.Len(t, result.Files, len(Tables)-1)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, TableBalances+".csv"))
}

func TestOrchestratorCancelled(t *testing.T) {
	o, err := NewOrchestrator(testOrchestratorConfig(t, 5, 2), OrchestratorOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrchestratorRejectsEmptyWindow(t *testing.T) {
	cfg := testOrchestratorConfig(t, 1, 1)
	cfg.EndDate = cfg.StartDate
	_, err := NewOrchestrator(cfg, OrchestratorOptions{})
	assert.Error(t, err)
}
