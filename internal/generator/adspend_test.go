package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/utils"
)

func TestGenerateAdSpend(t *testing.T) {
	refData := loadRefData(t)
	start, end := date(2024, 1, 1), date(2024, 12, 31)
	spend := NewAdSpendGenerator(utils.NewRandom(5), refData).Generate(start, end)
	require.NotEmpty(t, spend)

	budgets := make(map[string]AmountRange)
	channels := make(map[string][]string)
	for _, n := range adNetworks {
		budgets[n.Value.Name] = n.Value.Budget
		channels[n.Value.Name] = n.Value.Channels
	}

	days := make(map[string]int)
	named := 0
	for i, s := range spend {
		if i > 0 {
			assert.False(t, s.CreatedAt.Before(spend[i-1].CreatedAt))
		}
		assert.False(t, s.CreatedAt.Before(start))
		assert.False(t, s.CreatedAt.After(end))
		assert.Equal(t, truncateDay(s.CreatedAt), s.CreatedAt)
		days[s.CreatedAt.Format("2006-01-02")]++

		budget, ok := budgets[s.Network]
		require.True(t, ok, "unknown network %s", s.Network)
		assert.Contains(t, channels[s.Network], s.Channel)
		assert.True(t, s.Amount >= budget.Min && s.Amount <= budget.Max, "amount %s for %s", s.Amount, s.Network)

		assert.Equal(t, refData.CurrencyFor(s.Country), s.Currency)
		if s.CampaignName != nil {
			named++
			assert.Contains(t, refData.Catalog.CampaignNames, *s.CampaignName)
		}
		if s.Conversions != nil {
			assert.True(t, *s.Conversions >= 1 && *s.Conversions <= 50)
		}
	}

	for _, n := range days {
		assert.True(t, n >= 1 && n <= 3)
	}
	// 366 days at 60%
	assert.InDelta(t, 0.60*366, len(days), 30)
	assert.InDelta(t, 0.50, float64(named)/float64(len(spend)), 0.08)
}

func TestAdSpendEmptyWindow(t *testing.T) {
	gen := NewAdSpendGenerator(utils.NewRandom(1), loadRefData(t))
	assert.Empty(t, gen.Generate(date(2025, 1, 2), date(2025, 1, 1)))
}
