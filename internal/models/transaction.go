package models

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// TransactionType represents the type of financial transaction
type TransactionType string

const (
	TxTypeCardSpend  TransactionType = "card_spend"
	TxTypeTransfer   TransactionType = "transfer"
	TxTypeDeposit    TransactionType = "deposit"
	TxTypePayment    TransactionType = "payment"
	TxTypeWithdrawal TransactionType = "withdrawal"
	TxTypeRefund     TransactionType = "refund"
)

// IsCredit returns true if the type adds money to the account
func (t TransactionType) IsCredit() bool {
	return t == TxTypeDeposit || t == TxTypeRefund
}

// IsMerchant returns true for types that settle against a merchant
func (t TransactionType) IsMerchant() bool {
	return t == TxTypeCardSpend || t == TxTypePayment
}

// TransactionStatus represents the state of a transaction
type TransactionStatus string

const (
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusPending   TransactionStatus = "pending"
	TxStatusFailed    TransactionStatus = "failed"
	TxStatusReversed  TransactionStatus = "reversed"
	TxStatusCancelled TransactionStatus = "cancelled"
)

// PaymentMethod is the instrument used to move the money
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentWallet       PaymentMethod = "wallet"
	PaymentACH          PaymentMethod = "ach"
)

// RiskFlag is the per-transaction anomaly classification. It is drawn
// independently of type and status.
type RiskFlag string

const (
	RiskNormal     RiskFlag = "normal"
	RiskSuspicious RiskFlag = "suspicious"
	RiskHigh       RiskFlag = "high_risk"
	RiskAMLReview  RiskFlag = "aml_review"
)

// MinBalance is the modeled overdraft floor for any account.
const MinBalance = utils.Money(-1_000_000)

// Transaction is one ledger entry on an account. It is immutable once built.
//
// BalanceBefore and BalanceAfter differ only when Status is completed.
type Transaction struct {
	ID         string    `json:"transaction_id"`
	CustomerID string    `json:"customer_id"`
	AccountID  string    `json:"account_id"`
	CreatedAt  time.Time `json:"created_at"`

	Type     TransactionType   `json:"transaction_type"`
	Status   TransactionStatus `json:"status"`
	Amount   utils.Money       `json:"amount"`
	Currency string            `json:"currency"`
	Fee      utils.Money       `json:"fee_amount"`

	// Set only for card_spend and payment
	MerchantName     *string `json:"merchant_name"`
	MerchantCategory *string `json:"merchant_category"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	BalanceBefore utils.Money   `json:"balance_before"`
	BalanceAfter  utils.Money   `json:"balance_after"`
	RiskFlag      RiskFlag      `json:"risk_flag"`

	Country   string   `json:"country"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// IsCompleted reports whether the transaction moved money
func (t *Transaction) IsCompleted() bool {
	return t.Status == TxStatusCompleted
}
