package models

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeBusiness   AccountType = "business"
	AccountTypeInvestment AccountType = "investment"
)

// AccountStatus represents the current status of an account
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account is a customer-owned account. CurrentBalance mirrors the
// balance_after of the last completed transaction posted to it.
type Account struct {
	ID         string    `json:"account_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`

	Type     AccountType   `json:"account_type"`
	Status   AccountStatus `json:"account_status"`
	Currency string        `json:"currency"`

	CreditLimit utils.Money `json:"credit_limit"`
	CreditScore int         `json:"credit_score"`

	CurrentBalance   utils.Money `json:"current_balance"`
	BalanceUpdatedAt time.Time   `json:"balance_updated_at"`
}
