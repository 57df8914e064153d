package models

import (
	"time"
)

// RiskEventType classifies a risk or compliance alert
type RiskEventType string

const (
	RiskEventFraudAlert         RiskEventType = "fraud_alert"
	RiskEventAMLFlag            RiskEventType = "aml_flag"
	RiskEventSuspiciousActivity RiskEventType = "suspicious_activity"
	RiskEventVelocityCheck      RiskEventType = "velocity_check"
	RiskEventAmountThreshold    RiskEventType = "amount_threshold"
	RiskEventGeoAnomaly         RiskEventType = "geographic_anomaly"
	RiskEventDeviceChange       RiskEventType = "device_change"
)

// Severity of a risk event
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskEventStatus is the investigation state of a risk event
type RiskEventStatus string

const (
	RiskStatusResolved      RiskEventStatus = "resolved"
	RiskStatusFalsePositive RiskEventStatus = "false_positive"
	RiskStatusInvestigating RiskEventStatus = "investigating"
	RiskStatusOpen          RiskEventStatus = "open"
)

// IsClosed reports whether the status carries a resolution timestamp
func (s RiskEventStatus) IsClosed() bool {
	return s == RiskStatusResolved || s == RiskStatusFalsePositive
}

// RiskEvent is an alert raised either for a flagged transaction or for a
// customer as a whole. TransactionID is nil for customer-level events.
type RiskEvent struct {
	ID            string          `json:"risk_event_id"`
	CustomerID    string          `json:"customer_id"`
	TransactionID *string         `json:"transaction_id"`
	AccountID     *string         `json:"account_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Type          RiskEventType   `json:"event_type"`
	Severity      Severity        `json:"severity"`
	Status        RiskEventStatus `json:"status"`
	ResolvedAt    *time.Time      `json:"resolved_at"`
	Description   string          `json:"description"`
}
