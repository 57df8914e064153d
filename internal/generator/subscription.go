package generator

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// Plan is a subscription plan and its list price
type Plan struct {
	Name         string
	MonthlyPrice utils.Money
}

var plans = []utils.Weighted[Plan]{
	{Value: Plan{"free", 0}, Weight: 40},
	{Value: Plan{"starter", utils.Dollars(29)}, Weight: 20},
	{Value: Plan{"pro", utils.Dollars(99)}, Weight: 25},
	{Value: Plan{"enterprise", utils.Dollars(299)}, Weight: 15},
}

// SubscriptionGenerator signs customers up for plans.
type SubscriptionGenerator struct {
	rng     *utils.Random
	endDate time.Time
}

// NewSubscriptionGenerator creates a new subscription generator
func NewSubscriptionGenerator(rng *utils.Random, endDate time.Time) *SubscriptionGenerator {
	return &SubscriptionGenerator{rng: rng, endDate: endDate}
}

// GenerateForCustomer returns a subscription for 60% of customers.
func (g *SubscriptionGenerator) GenerateForCustomer(gc GeneratedCustomer) (models.Subscription, bool) {
	if !g.rng.Probability(0.60) {
		return models.Subscription{}, false
	}

	plan := utils.PickWeighted(g.rng, plans)
	createdAt := addDays(gc.Customer.CreatedAt, g.rng.IntRange(0, 90))
	startedAt := addDays(createdAt, g.rng.IntRange(0, 3))

	cycle := models.BillingAnnual
	mrr := plan.MonthlyPrice.DivInt(12)
	if g.rng.Probability(0.80) {
		cycle = models.BillingMonthly
		mrr = plan.MonthlyPrice
	}

	sub := models.Subscription{
		CustomerID:   gc.Customer.ID,
		CreatedAt:    createdAt,
		StartedAt:    startedAt,
		PlanName:     plan.Name,
		MonthlyPrice: plan.MonthlyPrice,
		Currency:     gc.Currency(),
		Status:       models.SubStatusActive,
		BillingCycle: cycle,
		MRR:          mrr,
		ARR:          mrr * 12,
	}

	// Each later status is only reached if the earlier draws missed
	switch {
	case g.rng.Probability(0.20):
		sub.Status = models.SubStatusCancelled
		ended := g.rng.Date(startedAt, g.endDate)
		sub.EndedAt = &ended
	case g.rng.Probability(0.05):
		sub.Status = models.SubStatusSuspended
		suspended := g.rng.Date(startedAt, g.endDate)
		sub.SuspendedAt = &suspended
	case g.rng.Probability(0.03):
		sub.Status = models.SubStatusPastDue
	case g.rng.Probability(0.02):
		sub.Status = models.SubStatusTrialing
	}

	if sub.Status == models.SubStatusActive && g.rng.Probability(0.05) {
		paused := g.rng.Date(startedAt, g.endDate)
		sub.BillingPausedAt = &paused
	}

	sub.ID = g.rng.UUID()
	return sub, true
}
