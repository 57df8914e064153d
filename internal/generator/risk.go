package generator

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/willfong/fintech-datagen/internal/config"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// RiskConfig tunes risk event derivation
type RiskConfig struct {
	EndDate time.Time

	// Chance a flagged transaction raises an event
	LinkedEventRate float64
	// Customer-level events per transaction-linked event
	CustomerEventRatio float64
}

// DefaultRiskConfig returns the risk settings from the config defaults
func DefaultRiskConfig(end time.Time) RiskConfig {
	return RiskConfig{
		EndDate:            end,
		LinkedEventRate:    config.LinkedRiskEventRate,
		CustomerEventRatio: config.CustomerRiskEventRatio,
	}
}

// RiskEventDeriver raises risk events from the finished transaction stream
// and samples additional customer-level alerts.
type RiskEventDeriver struct {
	rng *utils.Random
	cfg RiskConfig
}

// NewRiskEventDeriver creates a deriver drawing from rng
func NewRiskEventDeriver(rng *utils.Random, cfg RiskConfig) *RiskEventDeriver {
	return &RiskEventDeriver{rng: rng, cfg: cfg}
}

// Derive runs the transaction-linked pass, then the customer-level pass, and
// returns all events sorted by timestamp. Inputs are not modified.
func (d *RiskEventDeriver) Derive(customers []models.Customer, transactions []models.Transaction, accounts []models.Account) []models.RiskEvent {
	events := d.linkedEvents(transactions)

	count := int(math.Floor(float64(len(events)) * d.cfg.CustomerEventRatio))
	if count > 0 && len(customers) > 0 {
		events = append(events, d.customerEvents(count, customers, firstAccounts(accounts))...)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events
}

func (d *RiskEventDeriver) linkedEvents(transactions []models.Transaction) []models.RiskEvent {
	var events []models.RiskEvent
	for i := range transactions {
		tx := &transactions[i]
		if tx.RiskFlag == models.RiskNormal || !d.rng.Probability(d.cfg.LinkedEventRate) {
			continue
		}

		menu, ok := flagMenus[tx.RiskFlag]
		if !ok {
			menu = fallbackFlagMenu
		}
		eventType := utils.Pick(d.rng, menu.Types)
		severity := utils.Pick(d.rng, menu.Severities)

		at := tx.CreatedAt.AddDate(0, 0, d.rng.IntRange(0, 1))
		if at.After(d.cfg.EndDate) {
			continue
		}

		status, resolvedAt := d.outcome(at, 7)
		txID, accountID := tx.ID, tx.AccountID
		events = append(events, models.RiskEvent{
			ID:            d.rng.UUID(),
			CustomerID:    tx.CustomerID,
			TransactionID: &txID,
			AccountID:     &accountID,
			CreatedAt:     at,
			Type:          eventType,
			Severity:      severity,
			Status:        status,
			ResolvedAt:    resolvedAt,
			Description:   humanize(eventType) + " detected for transaction",
		})
	}
	return events
}

func (d *RiskEventDeriver) customerEvents(count int, customers []models.Customer, accountOf map[string]string) []models.RiskEvent {
	events := make([]models.RiskEvent, 0, count)
	for i := 0; i < count; i++ {
		c := utils.Pick(d.rng, customers)
		kind := utils.PickWeighted(d.rng, customerEventKinds)
		severity := utils.Pick(d.rng, kind.Severities)
		at := d.rng.Date(c.CreatedAt, d.cfg.EndDate)
		status, resolvedAt := d.outcome(at, 14)

		ev := models.RiskEvent{
			ID:          d.rng.UUID(),
			CustomerID:  c.ID,
			CreatedAt:   at,
			Type:        kind.Type,
			Severity:    severity,
			Status:      status,
			ResolvedAt:  resolvedAt,
			Description: humanize(kind.Type) + " for customer",
		}
		if id, ok := accountOf[c.ID]; ok {
			ev.AccountID = &id
		}
		events = append(events, ev)
	}
	return events
}

// outcome draws the investigation status. Closed events are resolved
// between 1 and maxDays days after at.
func (d *RiskEventDeriver) outcome(at time.Time, maxDays int) (models.RiskEventStatus, *time.Time) {
	status := utils.PickThreshold(d.rng, riskStatuses, models.RiskStatusOpen)
	if !status.IsClosed() {
		return status, nil
	}
	status = utils.Pick(d.rng, closedRiskStatuses)
	resolved := at.AddDate(0, 0, d.rng.IntRange(1, maxDays))
	return status, &resolved
}

// firstAccounts maps each customer to the first account listed for them
func firstAccounts(accounts []models.Account) map[string]string {
	m := make(map[string]string)
	for _, a := range accounts {
		if _, ok := m[a.CustomerID]; !ok {
			m[a.CustomerID] = a.ID
		}
	}
	return m
}

func humanize[T ~string](v T) string {
	return strings.ReplaceAll(string(v), "_", " ")
}
