package models

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/utils"
)

// SubscriptionStatus is the billing state of a subscription
type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusCancelled SubscriptionStatus = "cancelled"
	SubStatusSuspended SubscriptionStatus = "suspended"
	SubStatusPastDue   SubscriptionStatus = "past_due"
	SubStatusTrialing  SubscriptionStatus = "trialing"
)

// BillingCycle is how often a subscription is invoiced
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingAnnual  BillingCycle = "annual"
)

// Subscription is a customer's SaaS plan
type Subscription struct {
	ID         string     `json:"subscription_id"`
	CustomerID string     `json:"customer_id"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`

	PlanName     string             `json:"plan_name"`
	MonthlyPrice utils.Money        `json:"monthly_price"`
	Currency     string             `json:"currency"`
	Status       SubscriptionStatus `json:"status"`
	BillingCycle BillingCycle       `json:"billing_cycle"`

	BillingPausedAt *time.Time `json:"billing_paused_at"`
	SuspendedAt     *time.Time `json:"suspended_at"`

	MRR utils.Money `json:"mrr"`
	ARR utils.Money `json:"arr"`
}
