package models

import (
	"time"
)

// CustomerTier is the service level driving transaction volume and size
type CustomerTier string

const (
	TierFree       CustomerTier = "free"
	TierStarter    CustomerTier = "starter"
	TierPremium    CustomerTier = "premium"
	TierEnterprise CustomerTier = "enterprise"
)

// KYBStatus tracks the know-your-business onboarding funnel
type KYBStatus string

const (
	KYBNotStarted KYBStatus = "not_started"
	KYBInProgress KYBStatus = "in_progress"
	KYBSubmitted  KYBStatus = "submitted"
	KYBApproved   KYBStatus = "approved"
	KYBDeclined   KYBStatus = "declined"
)

// CustomerStatus represents the customer's account status
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusFrozen    CustomerStatus = "frozen"
	CustomerStatusClosed    CustomerStatus = "closed"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

// Customer is a registered business customer
type Customer struct {
	ID        string    `json:"customer_id"`
	CreatedAt time.Time `json:"created_at"`

	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Country            string `json:"country"` // ISO 3166-1 alpha-2
	City               string `json:"city"`
	Region             string `json:"region"`
	Timezone           string `json:"timezone"`
	RegistrationSource string `json:"registration_source"`

	KYBStartedAt   *time.Time `json:"kyb_started_at"`
	KYBSubmittedAt *time.Time `json:"kyb_submitted_at"`
	KYBApprovedAt  *time.Time `json:"kyb_approved_at"`
	KYBStatus      KYBStatus  `json:"kyb_status"`

	// Nil for customers that never started transacting
	ActivatedAt *time.Time `json:"activated_at"`

	Tier      CustomerTier   `json:"customer_tier"`
	Status    CustomerStatus `json:"account_status"`
	RiskScore int            `json:"risk_score"`
}

// IsActivated reports whether the customer has an activation date
func (c *Customer) IsActivated() bool {
	return c.ActivatedAt != nil
}
