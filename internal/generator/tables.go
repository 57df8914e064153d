package generator

import (
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// AmountRange is an inclusive money range
type AmountRange struct {
	Min, Max utils.Money
}

// RateRange is a fractional range such as a fee rate
type RateRange struct {
	Min, Max float64
}

// CountRange is an inclusive integer range
type CountRange struct {
	Min, Max int
}

// Distributions holds every table the transaction synthesizer samples from.
// Swap a field to reshape the generated data without touching the code.
type Distributions struct {
	Types          []utils.Weighted[models.TransactionType]
	PaymentMethods []utils.Weighted[models.PaymentMethod]

	// Amount ranges by type take precedence over ranges by tier
	TypeAmounts   map[models.TransactionType]AmountRange
	TierAmounts   map[models.CustomerTier]AmountRange
	DefaultAmount AmountRange

	// Types missing from Fees carry no fee
	Fees map[models.TransactionType]RateRange

	// Statuses is evaluated against one uniform draw; a draw above every
	// ceiling picks uniformly from StatusTail.
	Statuses   []utils.Threshold[models.TransactionStatus]
	StatusTail []models.TransactionStatus

	RiskFlags []utils.Threshold[models.RiskFlag]

	MerchantPrefixRate float64
	GeoRate            float64
}

// DefaultDistributions returns the production transaction mix.
func DefaultDistributions() Distributions {
	return Distributions{
		Types: []utils.Weighted[models.TransactionType]{
			{Value: models.TxTypeCardSpend, Weight: 50},
			{Value: models.TxTypeTransfer, Weight: 20},
			{Value: models.TxTypeDeposit, Weight: 15},
			{Value: models.TxTypePayment, Weight: 10},
			{Value: models.TxTypeWithdrawal, Weight: 3},
			{Value: models.TxTypeRefund, Weight: 2},
		},
		PaymentMethods: []utils.Weighted[models.PaymentMethod]{
			{Value: models.PaymentCard, Weight: 60},
			{Value: models.PaymentBankTransfer, Weight: 25},
			{Value: models.PaymentWallet, Weight: 10},
			{Value: models.PaymentACH, Weight: 5},
		},
		TypeAmounts: map[models.TransactionType]AmountRange{
			models.TxTypeDeposit:    {utils.Dollars(100), utils.Dollars(10000)},
			models.TxTypeRefund:     {utils.Dollars(10), utils.Dollars(500)},
			models.TxTypeWithdrawal: {utils.Dollars(50), utils.Dollars(5000)},
		},
		TierAmounts: map[models.CustomerTier]AmountRange{
			models.TierEnterprise: {utils.Dollars(100), utils.Dollars(50000)},
			models.TierPremium:    {utils.Dollars(50), utils.Dollars(10000)},
		},
		DefaultAmount: AmountRange{utils.Dollars(10), utils.Dollars(1000)},
		Fees: map[models.TransactionType]RateRange{
			models.TxTypeCardSpend: {0.01, 0.03},
			models.TxTypePayment:   {0.01, 0.03},
			models.TxTypeTransfer:  {0.005, 0.02},
		},
		Statuses: []utils.Threshold[models.TransactionStatus]{
			{Below: 0.85, Value: models.TxStatusCompleted},
			{Below: 0.95, Value: models.TxStatusPending},
			{Below: 0.98, Value: models.TxStatusFailed},
		},
		StatusTail: []models.TransactionStatus{models.TxStatusReversed, models.TxStatusCancelled},
		RiskFlags: []utils.Threshold[models.RiskFlag]{
			{Below: 0.01, Value: models.RiskHigh},
			{Below: 0.05, Value: models.RiskSuspicious},
			{Below: 0.08, Value: models.RiskAMLReview},
		},
		MerchantPrefixRate: 0.30,
		GeoRate:            0.70,
	}
}

// TierRates is the annual transaction-rate band of each tier. Tiers not in
// the table use the free band.
var TierRates = map[models.CustomerTier]CountRange{
	models.TierEnterprise: {100, 200},
	models.TierPremium:    {50, 120},
	models.TierStarter:    {10, 50},
	models.TierFree:       {1, 10},
}

// riskMenu is the event type and severity choice for one kind of alert
type riskMenu struct {
	Types      []models.RiskEventType
	Severities []models.Severity
}

// flagMenus maps a transaction risk flag to the alerts it can raise.
// Flags not listed use fallbackFlagMenu.
var flagMenus = map[models.RiskFlag]riskMenu{
	models.RiskHigh: {
		Types:      []models.RiskEventType{models.RiskEventFraudAlert, models.RiskEventAMLFlag},
		Severities: []models.Severity{models.SeverityHigh, models.SeverityCritical},
	},
	models.RiskSuspicious: {
		Types:      []models.RiskEventType{models.RiskEventSuspiciousActivity, models.RiskEventAMLFlag, models.RiskEventAmountThreshold},
		Severities: []models.Severity{models.SeverityMedium, models.SeverityHigh},
	},
}

var fallbackFlagMenu = riskMenu{
	Types:      []models.RiskEventType{models.RiskEventSuspiciousActivity, models.RiskEventVelocityCheck},
	Severities: []models.Severity{models.SeverityLow, models.SeverityMedium},
}

// customerEventKind is one row of the customer-level event menu
type customerEventKind struct {
	Type       models.RiskEventType
	Severities []models.Severity
}

var customerEventKinds = []utils.Weighted[customerEventKind]{
	{Value: customerEventKind{models.RiskEventFraudAlert, []models.Severity{models.SeverityHigh, models.SeverityCritical}}, Weight: 30},
	{Value: customerEventKind{models.RiskEventAMLFlag, []models.Severity{models.SeverityMedium, models.SeverityHigh}}, Weight: 25},
	{Value: customerEventKind{models.RiskEventSuspiciousActivity, []models.Severity{models.SeverityMedium, models.SeverityHigh}}, Weight: 20},
	{Value: customerEventKind{models.RiskEventVelocityCheck, []models.Severity{models.SeverityLow, models.SeverityMedium}}, Weight: 10},
	{Value: customerEventKind{models.RiskEventAmountThreshold, []models.Severity{models.SeverityMedium, models.SeverityHigh}}, Weight: 8},
	{Value: customerEventKind{models.RiskEventGeoAnomaly, []models.Severity{models.SeverityLow, models.SeverityMedium}}, Weight: 5},
	{Value: customerEventKind{models.RiskEventDeviceChange, []models.Severity{models.SeverityLow}}, Weight: 2},
}

// Risk event investigation outcome thresholds
var riskStatuses = []utils.Threshold[models.RiskEventStatus]{
	{Below: 0.60, Value: models.RiskStatusResolved}, // resolved or false_positive
	{Below: 0.90, Value: models.RiskStatusInvestigating},
}

var closedRiskStatuses = []models.RiskEventStatus{models.RiskStatusResolved, models.RiskStatusFalsePositive}
