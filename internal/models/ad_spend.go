package models

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// AdSpend is one campaign's spend on one day
type AdSpend struct {
	ID           string      `json:"ad_spend_id"`
	CreatedAt    time.Time   `json:"created_at"`
	Network      string      `json:"network"`
	Channel      string      `json:"channel"`
	CampaignName *string     `json:"campaign_name"`
	Country      string      `json:"country"`
	Currency     string      `json:"currency"`
	Amount       utils.Money `json:"amount"`
	Conversions  *int        `json:"conversions"`
}
