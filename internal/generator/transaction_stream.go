package generator

import (
	"math"
	"sort"
	"time"

	"github.com/willfong/fintech-datagen/internal/config"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

const yearHours = 365.25 * 24

// StreamInput describes one customer and the accounts they own.
type StreamInput struct {
	CustomerID string
	AccountIDs []string
	// Opening time of each account, parallel to AccountIDs. Nil means every
	// account is open from the customer's first possible transaction.
	AccountOpenedAt []time.Time
	CreatedAt       time.Time
	ActivatedAt     *time.Time
	EndDate         time.Time
	Currency        string
	Country         string
	Tier            models.CustomerTier
}

// StreamConfig tunes the volume and timing model
type StreamConfig struct {
	// Chance a never-activated customer has any transactions at all
	DormantActivityRate float64
	// Upper bound of the dormant transaction count
	DormantMaxTransactions int
	// Exponent applied to the uniform timestamp draw
	RecencyExponent float64
	// Annual transaction-rate band per tier
	TierRates map[models.CustomerTier]CountRange
}

// DefaultStreamConfig returns the stream settings from the config defaults
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		DormantActivityRate:    config.DormantActivityRate,
		DormantMaxTransactions: config.DormantMaxTransactions,
		RecencyExponent:        config.RecencyExponent,
		TierRates:              TierRates,
	}
}

// StreamGenerator produces the full transaction history of a customer,
// tracking a running balance per account.
type StreamGenerator struct {
	rng   *utils.Random
	synth *TransactionSynthesizer
	cfg   StreamConfig
}

// NewStreamGenerator creates a stream generator. synth must draw from the
// same rng for a run to be reproducible.
func NewStreamGenerator(rng *utils.Random, synth *TransactionSynthesizer, cfg StreamConfig) *StreamGenerator {
	if cfg.TierRates == nil {
		cfg.TierRates = TierRates
	}
	if cfg.RecencyExponent <= 0 {
		cfg.RecencyExponent = config.RecencyExponent
	}
	return &StreamGenerator{rng: rng, synth: synth, cfg: cfg}
}

// slot is a scheduled transaction before it is synthesized
type slot struct {
	at      time.Time
	account string
}

// Generate returns the customer's transactions sorted by timestamp.
// It panics if in.AccountIDs is empty.
func (g *StreamGenerator) Generate(in StreamInput) []models.Transaction {
	if len(in.AccountIDs) == 0 {
		panic("generator: transaction stream for customer " + in.CustomerID + " without accounts")
	}

	if in.ActivatedAt == nil {
		return g.dormant(in)
	}

	activated := *in.ActivatedAt
	total := g.TransactionCount(in.Tier, activated, in.EndDate)
	if total == 0 {
		return nil
	}

	open := in.openAccounts(in.EndDate)
	if len(open) == 0 {
		return nil
	}

	slots := make([]slot, total)
	for i := range slots {
		idx := utils.Pick(g.rng, open)
		start := in.windowStart(idx, activated)
		progress := math.Pow(g.rng.Float64(), g.cfg.RecencyExponent)
		slots[i] = slot{
			at:      start.Add(time.Duration(progress * float64(in.EndDate.Sub(start)))),
			account: in.AccountIDs[idx],
		}
	}

	// Settle in time order so each account's balance chain follows the clock
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].at.Before(slots[j].at) })

	balances := make(map[string]utils.Money, len(in.AccountIDs))
	for _, id := range in.AccountIDs {
		balances[id] = 0
	}

	txns := make([]models.Transaction, 0, total)
	for _, sl := range slots {
		tx := g.synth.Synthesize(TransactionContext{
			CustomerID: in.CustomerID,
			AccountID:  sl.account,
			CreatedAt:  sl.at,
			Currency:   in.Currency,
			Country:    in.Country,
			Tier:       in.Tier,
			Balance:    balances[sl.account],
		})
		balances[sl.account] = tx.BalanceAfter
		txns = append(txns, tx)
	}

	return txns
}

// TransactionCount draws the tier's annual rate and scales it by the active
// years between activated and end, rounding down.
func (g *StreamGenerator) TransactionCount(tier models.CustomerTier, activated, end time.Time) int {
	band, ok := g.cfg.TierRates[tier]
	if !ok {
		band = g.cfg.TierRates[models.TierFree]
	}
	perYear := g.rng.IntRange(band.Min, band.Max)

	years := end.Sub(activated).Hours() / yearHours
	total := int(math.Floor(float64(perYear) * years))
	if total < 0 {
		return 0
	}
	return total
}

// dormant covers customers who never activated: most have no activity, the
// rest a few stray transactions on their first account, each from a zero balance.
func (g *StreamGenerator) dormant(in StreamInput) []models.Transaction {
	if !g.rng.Probability(g.cfg.DormantActivityRate) {
		return nil
	}
	start := in.windowStart(0, in.CreatedAt)
	if start.After(in.EndDate) {
		return nil
	}

	count := g.rng.IntRange(0, g.cfg.DormantMaxTransactions)
	txns := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		txns = append(txns, g.synth.Synthesize(TransactionContext{
			CustomerID: in.CustomerID,
			AccountID:  in.AccountIDs[0],
			CreatedAt:  g.rng.Date(start, in.EndDate),
			Currency:   in.Currency,
			Country:    in.Country,
			Tier:       in.Tier,
		}))
	}

	sort.SliceStable(txns, func(i, j int) bool { return txns[i].CreatedAt.Before(txns[j].CreatedAt) })
	return txns
}

// openAccounts returns the indexes of accounts opened by end
func (in StreamInput) openAccounts(end time.Time) []int {
	idx := make([]int, 0, len(in.AccountIDs))
	for i := range in.AccountIDs {
		if i < len(in.AccountOpenedAt) && in.AccountOpenedAt[i].After(end) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// windowStart is the later of from and the opening time of account i
func (in StreamInput) windowStart(i int, from time.Time) time.Time {
	if i < len(in.AccountOpenedAt) && in.AccountOpenedAt[i].After(from) {
		return in.AccountOpenedAt[i]
	}
	return from
}
