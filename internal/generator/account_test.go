package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

func testCustomer(id string, tier models.CustomerTier, created time.Time) GeneratedCustomer {
	return GeneratedCustomer{
		Customer: models.Customer{ID: id, CreatedAt: created, Tier: tier},
		Country:  &data.Country{Code: "DE", Currency: "EUR"},
	}
}

func TestGenerateAccounts(t *testing.T) {
	gen := NewAccountGenerator(utils.NewRandom(42))
	created := date(2025, 3, 10)
	gc := testCustomer("c1", models.TierPremium, created)

	sizes := make(map[int]int)
	const n = 10000
	for i := 0; i < n; i++ {
		accounts := gen.GenerateForCustomer(gc)
		sizes[len(accounts)]++
		require.NotEmpty(t, accounts)
		require.LessOrEqual(t, len(accounts), 3)

		for _, a := range accounts {
			assert.Equal(t, "c1", a.CustomerID)
			assert.Equal(t, "EUR", a.Currency)
			assertDaysAfter(t, created, a.CreatedAt, 0, 7)
			assert.Zero(t, a.CurrentBalance)
			assert.Equal(t, a.CreatedAt, a.BalanceUpdatedAt)
			assert.GreaterOrEqual(t, a.CreditScore, 300)
			assert.LessOrEqual(t, a.CreditScore, 850)
			assert.Positive(t, int64(a.CreditLimit))

			switch a.Type {
			case models.AccountTypeInvestment:
				assert.GreaterOrEqual(t, int64(a.CreditLimit), int64(utils.Dollars(50000)))
			case models.AccountTypeBusiness:
				assert.GreaterOrEqual(t, int64(a.CreditLimit), int64(utils.Dollars(25000)))
				assert.LessOrEqual(t, int64(a.CreditLimit), int64(utils.Dollars(200000)))
			}
		}
	}

	assert.InDelta(t, 0.70, float64(sizes[1])/n, 0.02)
	assert.InDelta(t, 0.25, float64(sizes[2])/n, 0.02)
	assert.InDelta(t, 0.05, float64(sizes[3])/n, 0.01)
}

func TestApplyBalances(t *testing.T) {
	opened := date(2025, 1, 1)
	accounts := []models.Account{
		{ID: "a1", CreatedAt: opened, BalanceUpdatedAt: opened},
		{ID: "a2", CreatedAt: opened, BalanceUpdatedAt: opened},
		{ID: "a3", CreatedAt: opened, BalanceUpdatedAt: opened},
	}
	txns := []models.Transaction{
		{AccountID: "a1", CreatedAt: date(2025, 1, 2), BalanceAfter: 1000},
		{AccountID: "a2", CreatedAt: date(2025, 1, 3), BalanceAfter: -250},
		{AccountID: "a1", CreatedAt: date(2025, 1, 4), BalanceAfter: 4000},
		{AccountID: "other", CreatedAt: date(2025, 1, 5), BalanceAfter: 9},
	}

	ApplyBalances(accounts, txns)

	assert.Equal(t, utils.Money(4000), accounts[0].CurrentBalance)
	assert.Equal(t, date(2025, 1, 4), accounts[0].BalanceUpdatedAt)
	assert.Equal(t, utils.Money(-250), accounts[1].CurrentBalance)
	assert.Equal(t, date(2025, 1, 3), accounts[1].BalanceUpdatedAt)
	assert.Zero(t, accounts[2].CurrentBalance)
	assert.Equal(t, opened, accounts[2].BalanceUpdatedAt)
}
