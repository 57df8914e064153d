package generator

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

func flaggedTransactions(n int, flag models.RiskFlag, base time.Time) []models.Transaction {
	txns := make([]models.Transaction, n)
	for i := range txns {
		txns[i] = models.Transaction{
			ID:         fmt.Sprintf("tx%d", i),
			CustomerID: fmt.Sprintf("c%d", i%50),
			AccountID:  fmt.Sprintf("a%d", i%50),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			RiskFlag:   flag,
		}
	}
	return txns
}

func testCustomers(n int, created time.Time) ([]models.Customer, []models.Account) {
	customers := make([]models.Customer, n)
	var accounts []models.Account
	for i := range customers {
		id := fmt.Sprintf("c%d", i)
		customers[i] = models.Customer{ID: id, CreatedAt: created}
		// Customers past 40 have no accounts
		if i < 40 {
			accounts = append(accounts,
				models.Account{ID: fmt.Sprintf("a%d", i), CustomerID: id},
				models.Account{ID: fmt.Sprintf("a%d-2", i), CustomerID: id},
			)
		}
	}
	return customers, accounts
}

func TestLinkedPassInclusionRate(t *testing.T) {
	end := date(2026, 12, 31)
	txns := flaggedTransactions(10000, models.RiskHigh, date(2024, 1, 1))

	deriver := NewRiskEventDeriver(utils.NewRandom(15), RiskConfig{
		EndDate:            end,
		LinkedEventRate:    0.15,
		CustomerEventRatio: 0,
	})
	events := deriver.Derive(nil, txns, nil)

	// Binomial(10000, 0.15): mean 1500, sd ~36
	assert.InDelta(t, 1500, len(events), 150)
	for _, ev := range events {
		require.NotNil(t, ev.TransactionID)
		assert.Contains(t, []models.RiskEventType{models.RiskEventFraudAlert, models.RiskEventAMLFlag}, ev.Type)
		assert.Contains(t, []models.Severity{models.SeverityHigh, models.SeverityCritical}, ev.Severity)
	}
}

func TestLinkedEventsFollowTransactions(t *testing.T) {
	end := date(2026, 12, 31)
	var txns []models.Transaction
	for _, flag := range []models.RiskFlag{models.RiskHigh, models.RiskSuspicious, models.RiskAMLReview, models.RiskNormal} {
		txns = append(txns, flaggedTransactions(2000, flag, date(2025, 1, 1))...)
	}
	// Give every transaction a unique id
	byID := make(map[string]models.Transaction, len(txns))
	for i := range txns {
		txns[i].ID = fmt.Sprintf("tx%d", i)
		byID[txns[i].ID] = txns[i]
	}

	events := NewRiskEventDeriver(utils.NewRandom(8), DefaultRiskConfig(end)).Derive(nil, txns, nil)
	require.NotEmpty(t, events)

	for i, ev := range events {
		if i > 0 {
			assert.False(t, ev.CreatedAt.Before(events[i-1].CreatedAt), "events not sorted at %d", i)
		}

		require.NotNil(t, ev.TransactionID)
		tx, ok := byID[*ev.TransactionID]
		require.True(t, ok)
		assert.NotEqual(t, models.RiskNormal, tx.RiskFlag, "normal transaction raised an event")
		assert.Equal(t, tx.CustomerID, ev.CustomerID)
		require.NotNil(t, ev.AccountID)
		assert.Equal(t, tx.AccountID, *ev.AccountID)

		gap := ev.CreatedAt.Sub(tx.CreatedAt)
		assert.True(t, gap >= 0 && gap <= 24*time.Hour, "gap %s", gap)
		assert.True(t, strings.HasSuffix(ev.Description, " detected for transaction"))
		assert.NotContains(t, ev.Description, "_")

		menu, ok := flagMenus[tx.RiskFlag]
		if !ok {
			menu = fallbackFlagMenu
		}
		assert.Contains(t, menu.Types, ev.Type)
		assert.Contains(t, menu.Severities, ev.Severity)

		assertResolution(t, ev, 7)
	}
}

func TestLinkedEventsPastEndAreDropped(t *testing.T) {
	end := date(2026, 12, 31)
	// Every transaction sits 12 hours before the end, so a one-day offset overshoots
	txns := flaggedTransactions(1, models.RiskHigh, end.Add(-12*time.Hour))
	for i := 0; i < 2000; i++ {
		txns = append(txns, txns[0])
	}

	events := NewRiskEventDeriver(utils.NewRandom(4), RiskConfig{EndDate: end, LinkedEventRate: 1}).Derive(nil, txns, nil)

	assert.InDelta(t, len(txns)/2, len(events), 150)
	for _, ev := range events {
		assert.False(t, ev.CreatedAt.After(end))
		assert.Equal(t, txns[0].CreatedAt, ev.CreatedAt)
	}
}

func TestCustomerLevelPass(t *testing.T) {
	end := date(2026, 12, 31)
	created := date(2025, 6, 1)
	customers, accounts := testCustomers(50, created)
	txns := flaggedTransactions(4000, models.RiskSuspicious, date(2025, 7, 1))

	events := NewRiskEventDeriver(utils.NewRandom(77), DefaultRiskConfig(end)).Derive(customers, txns, accounts)

	linked, customerLevel := 0, 0
	for _, ev := range events {
		if ev.TransactionID != nil {
			linked++
			continue
		}
		customerLevel++

		assert.False(t, ev.CreatedAt.Before(created))
		assert.False(t, ev.CreatedAt.After(end))
		assert.True(t, strings.HasSuffix(ev.Description, " for customer"))

		var idx int
		_, err := fmt.Sscanf(ev.CustomerID, "c%d", &idx)
		require.NoError(t, err)
		if idx < 40 {
			require.NotNil(t, ev.AccountID, "customer %s owns accounts", ev.CustomerID)
			assert.Equal(t, fmt.Sprintf("a%d", idx), *ev.AccountID, "expected first account")
		} else {
			assert.Nil(t, ev.AccountID)
		}

		var kind *customerEventKind
		for i := range customerEventKinds {
			if customerEventKinds[i].Value.Type == ev.Type {
				kind = &customerEventKinds[i].Value
			}
		}
		require.NotNil(t, kind, "unexpected type %s", ev.Type)
		assert.Contains(t, kind.Severities, ev.Severity)

		assertResolution(t, ev, 14)
	}

	require.Positive(t, linked)
	assert.Equal(t, int(float64(linked)*0.43), customerLevel)
}

func TestDeriveWithoutFlags(t *testing.T) {
	customers, accounts := testCustomers(5, date(2025, 1, 1))
	txns := flaggedTransactions(500, models.RiskNormal, date(2025, 2, 1))

	events := NewRiskEventDeriver(utils.NewRandom(1), DefaultRiskConfig(date(2026, 1, 1))).Derive(customers, txns, accounts)
	assert.Empty(t, events)
}

func TestRiskStatusMix(t *testing.T) {
	txns := flaggedTransactions(20000, models.RiskAMLReview, date(2024, 1, 1))
	events := NewRiskEventDeriver(utils.NewRandom(12), RiskConfig{
		EndDate:         date(2026, 12, 31),
		LinkedEventRate: 1,
	}).Derive(nil, txns, nil)
	require.Len(t, events, len(txns))

	counts := make(map[models.RiskEventStatus]int)
	for _, ev := range events {
		counts[ev.Status]++
	}
	n := float64(len(events))
	assert.InDelta(t, 0.30, float64(counts[models.RiskStatusResolved])/n, 0.02)
	assert.InDelta(t, 0.30, float64(counts[models.RiskStatusFalsePositive])/n, 0.02)
	assert.InDelta(t, 0.30, float64(counts[models.RiskStatusInvestigating])/n, 0.02)
	assert.InDelta(t, 0.10, float64(counts[models.RiskStatusOpen])/n, 0.02)
}

func assertResolution(t *testing.T, ev models.RiskEvent, maxDays int) {
	t.Helper()
	if !ev.Status.IsClosed() {
		assert.Nil(t, ev.ResolvedAt, "%s event has resolved_at", ev.Status)
		return
	}
	require.NotNil(t, ev.ResolvedAt, "%s event without resolved_at", ev.Status)
	gap := ev.ResolvedAt.Sub(ev.CreatedAt)
	assert.True(t, gap >= 24*time.Hour && gap <= time.Duration(maxDays)*24*time.Hour, "resolution gap %s", gap)
}
