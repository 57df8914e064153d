package generator

import (
	"math"
	"strings"
	"time"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// TransactionContext is everything the synthesizer needs to know about the
// account a transaction is posted to.
type TransactionContext struct {
	CustomerID string
	AccountID  string
	CreatedAt  time.Time
	Currency   string
	Country    string
	Tier       models.CustomerTier

	// Balance before this transaction
	Balance utils.Money
}

// TransactionSynthesizer builds single transactions from the distribution tables.
type TransactionSynthesizer struct {
	rng     *utils.Random
	refData *data.ReferenceData
	dist    Distributions
}

// NewTransactionSynthesizer creates a synthesizer drawing from rng
func NewTransactionSynthesizer(rng *utils.Random, refData *data.ReferenceData, dist Distributions) *TransactionSynthesizer {
	return &TransactionSynthesizer{
		rng:     rng,
		refData: refData,
		dist:    dist,
	}
}

// Synthesize produces one transaction against ctx.Balance.
func (s *TransactionSynthesizer) Synthesize(ctx TransactionContext) models.Transaction {
	txType := utils.PickWeighted(s.rng, s.dist.Types)
	method := utils.PickWeighted(s.rng, s.dist.PaymentMethods)
	amount := s.amount(txType, ctx.Tier)
	fee := s.fee(txType, amount)
	status := s.status()

	tx := models.Transaction{
		CustomerID:    ctx.CustomerID,
		AccountID:     ctx.AccountID,
		CreatedAt:     ctx.CreatedAt,
		Type:          txType,
		Status:        status,
		Amount:        amount,
		Currency:      ctx.Currency,
		Fee:           fee,
		PaymentMethod: method,
		Country:       ctx.Country,
	}

	if txType.IsMerchant() {
		category := utils.Pick(s.rng, s.refData.Catalog.MerchantCategories)
		name := s.merchantName(category)
		tx.MerchantCategory = &category
		tx.MerchantName = &name
	}

	tx.BalanceBefore = ctx.Balance
	tx.BalanceAfter = SettleBalance(ctx.Balance, amount, fee, txType, status)
	tx.RiskFlag = utils.PickThreshold(s.rng, s.dist.RiskFlags, models.RiskNormal)

	if txType.IsMerchant() && s.rng.Probability(s.dist.GeoRate) {
		if lat, lng, ok := s.refData.Coordinates(s.rng, ctx.Country); ok {
			lat, lng = roundCoord(lat), roundCoord(lng)
			tx.Latitude = &lat
			tx.Longitude = &lng
		}
	}

	tx.ID = s.rng.UUID()
	return tx
}

func (s *TransactionSynthesizer) amount(txType models.TransactionType, tier models.CustomerTier) utils.Money {
	r, ok := s.dist.TypeAmounts[txType]
	if !ok {
		r, ok = s.dist.TierAmounts[tier]
	}
	if !ok {
		r = s.dist.DefaultAmount
	}
	return s.rng.AmountBetween(r.Min, r.Max)
}

func (s *TransactionSynthesizer) fee(txType models.TransactionType, amount utils.Money) utils.Money {
	r, ok := s.dist.Fees[txType]
	if !ok {
		return 0
	}
	return amount.MulRate(s.rng.Float64Range(r.Min, r.Max))
}

func (s *TransactionSynthesizer) status() models.TransactionStatus {
	u := s.rng.Float64()
	for _, t := range s.dist.Statuses {
		if u < t.Below {
			return t.Value
		}
	}
	return utils.Pick(s.rng, s.dist.StatusTail)
}

// merchantName renders "[Prefix ]Category Suffix"
func (s *TransactionSynthesizer) merchantName(category string) string {
	var b strings.Builder
	if s.rng.Probability(s.dist.MerchantPrefixRate) {
		b.WriteString(utils.Pick(s.rng, s.refData.Catalog.MerchantPrefixes))
		b.WriteByte(' ')
	}
	b.WriteString(capitalize(category))
	b.WriteByte(' ')
	b.WriteString(utils.Pick(s.rng, s.refData.Catalog.MerchantSuffixes))
	return b.String()
}

// SettleBalance applies a transaction to a balance. Only completed
// transactions move money: credits add amount minus fee, everything else
// subtracts amount plus fee. The result never drops below MinBalance.
func SettleBalance(before, amount, fee utils.Money, txType models.TransactionType, status models.TransactionStatus) utils.Money {
	if status != models.TxStatusCompleted {
		return before
	}

	var after utils.Money
	if txType.IsCredit() {
		after = before + amount - fee
	} else {
		after = before - amount - fee
	}
	return after.Max(models.MinBalance)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func roundCoord(v float64) float64 {
	return math.Round(v*10000) / 10000
}
