package models

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// BalanceSnapshot is an end-of-day account balance
type BalanceSnapshot struct {
	ID          string      `json:"balance_snapshot_id"`
	AccountID   string      `json:"account_id"`
	BalanceDate time.Time   `json:"balance_date"`
	Amount      utils.Money `json:"balance_amount"`
	Currency    string      `json:"currency"`
	CreatedAt   time.Time   `json:"created_at"`
}
