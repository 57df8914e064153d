package generator

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

var accountCounts = []utils.Threshold[int]{
	{Below: 0.70, Value: 1},
	{Below: 0.95, Value: 2},
}

var accountTypes = []utils.Weighted[models.AccountType]{
	{Value: models.AccountTypeChecking, Weight: 60},
	{Value: models.AccountTypeSavings, Weight: 25},
	{Value: models.AccountTypeBusiness, Weight: 10},
	{Value: models.AccountTypeInvestment, Weight: 5},
}

// AccountGenerator opens accounts for customers.
type AccountGenerator struct {
	rng *utils.Random
}

// NewAccountGenerator creates a new account generator
func NewAccountGenerator(rng *utils.Random) *AccountGenerator {
	return &AccountGenerator{rng: rng}
}

// GenerateForCustomer opens one to three accounts in the customer's
// currency, each 0-7 days after the customer registered.
func (g *AccountGenerator) GenerateForCustomer(gc GeneratedCustomer) []models.Account {
	count := utils.PickThreshold(g.rng, accountCounts, 3)
	accounts := make([]models.Account, 0, count)
	for i := 0; i < count; i++ {
		accounts = append(accounts, g.generateAccount(gc.Customer.ID, gc.Customer.CreatedAt, gc.Currency()))
	}
	return accounts
}

func (g *AccountGenerator) generateAccount(customerID string, customerCreatedAt time.Time, currency string) models.Account {
	accountType := utils.PickWeighted(g.rng, accountTypes)
	creditScore := g.rng.BoundedNormal(700, 80, 300, 850)

	status := models.AccountStatusActive
	if g.rng.Probability(0.03) {
		if g.rng.Probability(0.5) {
			status = models.AccountStatusFrozen
		} else {
			status = models.AccountStatusClosed
		}
	}

	creditLimit := g.creditLimit(accountType, creditScore)
	createdAt := addDays(customerCreatedAt, g.rng.IntRange(0, 7))

	return models.Account{
		ID:          g.rng.UUID(),
		CustomerID:  customerID,
		CreatedAt:   createdAt,
		Type:        accountType,
		Status:      status,
		Currency:    currency,
		CreditLimit: creditLimit,
		CreditScore: creditScore,

		// Overwritten by ApplyBalances once the stream exists
		BalanceUpdatedAt: createdAt,
	}
}

// creditLimit depends on the account type first, then the credit score
func (g *AccountGenerator) creditLimit(t models.AccountType, score int) utils.Money {
	switch {
	case t == models.AccountTypeInvestment:
		return g.rng.AmountBetween(utils.Dollars(50000), utils.Dollars(500000))
	case t == models.AccountTypeBusiness:
		return g.rng.AmountBetween(utils.Dollars(25000), utils.Dollars(200000))
	case score > 750:
		return g.rng.AmountBetween(utils.Dollars(10000), utils.Dollars(100000))
	case score > 650:
		return g.rng.AmountBetween(utils.Dollars(5000), utils.Dollars(50000))
	default:
		return g.rng.AmountBetween(utils.Dollars(1000), utils.Dollars(20000))
	}
}

// ApplyBalances sets each account's current balance to the balance after
// its last transaction. txns must be sorted by timestamp. Accounts without
// transactions keep a zero balance dated at opening.
func ApplyBalances(accounts []models.Account, txns []models.Transaction) {
	index := make(map[string]int, len(accounts))
	for i := range accounts {
		index[accounts[i].ID] = i
	}
	for i := range txns {
		if j, ok := index[txns[i].AccountID]; ok {
			accounts[j].CurrentBalance = txns[i].BalanceAfter
			accounts[j].BalanceUpdatedAt = txns[i].CreatedAt
		}
	}
}
