package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

func TestGenerateSubscriptions(t *testing.T) {
	end := date(2026, 12, 31)
	gen := NewSubscriptionGenerator(utils.NewRandom(42), end)
	created := date(2024, 5, 1)
	gc := testCustomer("c1", models.TierStarter, created)

	prices := make(map[string]utils.Money)
	for _, p := range plans {
		prices[p.Value.Name] = p.Value.MonthlyPrice
	}

	const n = 10000
	subscribed := 0
	statuses := make(map[models.SubscriptionStatus]int)
	for i := 0; i < n; i++ {
		sub, ok := gen.GenerateForCustomer(gc)
		if !ok {
			continue
		}
		subscribed++
		statuses[sub.Status]++

		require.NotEmpty(t, sub.ID)
		assert.Equal(t, "c1", sub.CustomerID)
		assert.Equal(t, "EUR", sub.Currency)
		assertDaysAfter(t, created, sub.CreatedAt, 0, 90)
		assertDaysAfter(t, sub.CreatedAt, sub.StartedAt, 0, 3)

		price, known := prices[sub.PlanName]
		require.True(t, known, "unknown plan %s", sub.PlanName)
		assert.Equal(t, price, sub.MonthlyPrice)

		switch sub.BillingCycle {
		case models.BillingMonthly:
			assert.Equal(t, price, sub.MRR)
		case models.BillingAnnual:
			assert.Equal(t, price.DivInt(12), sub.MRR)
		default:
			t.Fatalf("unexpected billing cycle %s", sub.BillingCycle)
		}
		assert.Equal(t, sub.MRR*12, sub.ARR)

		assert.Equal(t, sub.Status == models.SubStatusCancelled, sub.EndedAt != nil)
		assert.Equal(t, sub.Status == models.SubStatusSuspended, sub.SuspendedAt != nil)
		if sub.EndedAt != nil {
			assert.False(t, sub.EndedAt.Before(sub.StartedAt))
			assert.False(t, sub.EndedAt.After(end))
		}
		if sub.BillingPausedAt != nil {
			assert.Equal(t, models.SubStatusActive, sub.Status)
		}
	}

	assert.InDelta(t, 0.60, float64(subscribed)/n, 0.02)
	assert.InDelta(t, 0.20, float64(statuses[models.SubStatusCancelled])/float64(subscribed), 0.02)
	assert.Positive(t, statuses[models.SubStatusTrialing])
}

func TestAnnualProPlanRevenue(t *testing.T) {
	mrr := utils.Dollars(99).DivInt(12)
	assert.Equal(t, "8.25", mrr.String())
	assert.Equal(t, "99.00", (mrr * 12).String())
}
