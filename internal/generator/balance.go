package generator

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// endOfDay is the offset of a snapshot from midnight
const endOfDay = 24*time.Hour - time.Second

// BalanceGenerator replays an account's transactions into end-of-day
// balance snapshots.
type BalanceGenerator struct {
	rng          *utils.Random
	endDate      time.Time
	intervalDays int
}

// NewBalanceGenerator creates a snapshot generator. intervalDays below 1
// is treated as daily.
func NewBalanceGenerator(rng *utils.Random, endDate time.Time, intervalDays int) *BalanceGenerator {
	if intervalDays < 1 {
		intervalDays = 1
	}
	return &BalanceGenerator{rng: rng, endDate: endDate, intervalDays: intervalDays}
}

// Walk calls fn with one snapshot per interval from the day the account was
// opened through the end date. Each snapshot holds the balance after the
// last transaction at or before 23:59:59 of its day, or zero before the
// first one. txns must belong to the account and be sorted by timestamp.
// Walk stops at the first error returned by fn.
func (g *BalanceGenerator) Walk(account models.Account, txns []models.Transaction, fn func(models.BalanceSnapshot) error) error {
	day := truncateDay(account.CreatedAt)

	var balance utils.Money
	next := 0
	for ; !day.After(g.endDate); day = addDays(day, g.intervalDays) {
		cutoff := day.Add(endOfDay)
		for next < len(txns) && !txns[next].CreatedAt.After(cutoff) {
			balance = txns[next].BalanceAfter
			next++
		}

		err := fn(models.BalanceSnapshot{
			ID:          g.rng.UUID(),
			AccountID:   account.ID,
			BalanceDate: day,
			Amount:      balance,
			Currency:    account.Currency,
			CreatedAt:   cutoff,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns how many snapshots Walk emits for the account
func (g *BalanceGenerator) Count(account models.Account) int {
	first := truncateDay(account.CreatedAt)
	if first.After(g.endDate) {
		return 0
	}
	days := int(g.endDate.Sub(first).Hours() / 24)
	return days/g.intervalDays + 1
}

// Snapshots collects Walk into a slice
func (g *BalanceGenerator) Snapshots(account models.Account, txns []models.Transaction) []models.BalanceSnapshot {
	var out []models.BalanceSnapshot
	_ = g.Walk(account, txns, func(s models.BalanceSnapshot) error {
		out = append(out, s)
		return nil
	})
	return out
}

// GroupByAccount indexes a timestamp-sorted stream by account, preserving order.
func GroupByAccount(txns []models.Transaction) map[string][]models.Transaction {
	m := make(map[string][]models.Transaction)
	for _, tx := range txns {
		m[tx.AccountID] = append(m[tx.AccountID], tx)
	}
	return m
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
