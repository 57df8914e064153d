package generator

import (
	"github.com/willfong/fintech-datagen/internal/models"
)

// Table names, also the CSV file names without extension
const (
	TableCustomers     = "raw_customers"
	TableAccounts      = "raw_accounts"
	TableSubscriptions = "raw_subscriptions"
	TableFeatures      = "raw_customer_features"
	TableTransactions  = "raw_transactions"
	TableBalances      = "raw_balances"
	TableRiskEvents    = "raw_risk_events"
	TableAdSpend       = "raw_ad_spend"
)

// Tables lists every output table in load order: parents before children.
var Tables = []string{
	TableCustomers,
	TableAccounts,
	TableSubscriptions,
	TableFeatures,
	TableTransactions,
	TableBalances,
	TableRiskEvents,
	TableAdSpend,
}

// Headers holds the column list of each table, matching the row builders below.
var Headers = map[string][]string{
	TableCustomers: {
		"customer_id", "created_at", "email", "first_name", "last_name",
		"country", "city", "region", "timezone", "registration_source",
		"kyb_started_at", "kyb_submitted_at", "kyb_approved_at", "kyb_status",
		"activated_at", "customer_tier", "account_status", "risk_score",
	},
	TableAccounts: {
		"account_id", "customer_id", "created_at", "account_type", "account_status",
		"currency", "credit_limit", "credit_score", "current_balance", "balance_updated_at",
	},
	TableSubscriptions: {
		"subscription_id", "customer_id", "created_at", "started_at", "ended_at",
		"plan_name", "monthly_price", "currency", "status", "billing_cycle",
		"billing_paused_at", "suspended_at", "mrr", "arr",
	},
	TableFeatures: {
		"customer_feature_id", "customer_id", "feature_name", "activated_at",
		"last_used_at", "feature_category", "is_active",
	},
	TableTransactions: {
		"transaction_id", "customer_id", "account_id", "created_at",
		"transaction_type", "status", "amount", "currency", "fee_amount",
		"merchant_name", "merchant_category", "payment_method",
		"balance_before", "balance_after", "risk_flag",
		"country", "city", "latitude", "longitude",
	},
	TableBalances: {
		"balance_snapshot_id", "account_id", "balance_date", "balance_amount",
		"currency", "created_at",
	},
	TableRiskEvents: {
		"risk_event_id", "customer_id", "transaction_id", "account_id", "created_at",
		"event_type", "severity", "status", "resolved_at", "description",
	},
	TableAdSpend: {
		"ad_spend_id", "created_at", "network", "channel", "campaign_name",
		"country", "currency", "amount", "conversions",
	},
}

// CustomerRow renders a customer in raw_customers column order
func CustomerRow(c *models.Customer) []string {
	return []string{
		c.ID,
		FormatTime(c.CreatedAt),
		c.Email,
		c.FirstName,
		c.LastName,
		c.Country,
		c.City,
		c.Region,
		c.Timezone,
		c.RegistrationSource,
		FormatTimePtr(c.KYBStartedAt),
		FormatTimePtr(c.KYBSubmittedAt),
		FormatTimePtr(c.KYBApprovedAt),
		string(c.KYBStatus),
		FormatTimePtr(c.ActivatedAt),
		string(c.Tier),
		string(c.Status),
		FormatInt(c.RiskScore),
	}
}

// AccountRow renders an account in raw_accounts column order
func AccountRow(a *models.Account) []string {
	return []string{
		a.ID,
		a.CustomerID,
		FormatTime(a.CreatedAt),
		string(a.Type),
		string(a.Status),
		a.Currency,
		FormatMoney(a.CreditLimit),
		FormatInt(a.CreditScore),
		FormatMoney(a.CurrentBalance),
		FormatTime(a.BalanceUpdatedAt),
	}
}

// SubscriptionRow renders a subscription in raw_subscriptions column order
func SubscriptionRow(s *models.Subscription) []string {
	return []string{
		s.ID,
		s.CustomerID,
		FormatTime(s.CreatedAt),
		FormatTime(s.StartedAt),
		FormatTimePtr(s.EndedAt),
		s.PlanName,
		FormatMoney(s.MonthlyPrice),
		s.Currency,
		string(s.Status),
		string(s.BillingCycle),
		FormatTimePtr(s.BillingPausedAt),
		FormatTimePtr(s.SuspendedAt),
		FormatMoney(s.MRR),
		FormatMoney(s.ARR),
	}
}

// FeatureRow renders a feature activation in raw_customer_features column order
func FeatureRow(f *models.CustomerFeature) []string {
	return []string{
		f.ID,
		f.CustomerID,
		f.FeatureName,
		FormatTime(f.ActivatedAt),
		FormatTimePtr(f.LastUsedAt),
		f.Category,
		FormatBool(f.IsActive),
	}
}

// TransactionRow renders a transaction in raw_transactions column order
func TransactionRow(t *models.Transaction) []string {
	return []string{
		t.ID,
		t.CustomerID,
		t.AccountID,
		FormatTime(t.CreatedAt),
		string(t.Type),
		string(t.Status),
		FormatMoney(t.Amount),
		t.Currency,
		FormatMoney(t.Fee),
		FormatStringPtr(t.MerchantName),
		FormatStringPtr(t.MerchantCategory),
		string(t.PaymentMethod),
		FormatMoney(t.BalanceBefore),
		FormatMoney(t.BalanceAfter),
		string(t.RiskFlag),
		t.Country,
		FormatStringPtr(t.City),
		FormatCoord(t.Latitude),
		FormatCoord(t.Longitude),
	}
}

// BalanceRow renders a snapshot in raw_balances column order
func BalanceRow(b *models.BalanceSnapshot) []string {
	return []string{
		b.ID,
		b.AccountID,
		FormatDate(b.BalanceDate),
		FormatMoney(b.Amount),
		b.Currency,
		FormatTime(b.CreatedAt),
	}
}

// RiskEventRow renders a risk event in raw_risk_events column order
func RiskEventRow(e *models.RiskEvent) []string {
	return []string{
		e.ID,
		e.CustomerID,
		FormatStringPtr(e.TransactionID),
		FormatStringPtr(e.AccountID),
		FormatTime(e.CreatedAt),
		string(e.Type),
		string(e.Severity),
		string(e.Status),
		FormatTimePtr(e.ResolvedAt),
		e.Description,
	}
}

// AdSpendRow renders a campaign day in raw_ad_spend column order
func AdSpendRow(a *models.AdSpend) []string {
	return []string{
		a.ID,
		FormatTime(a.CreatedAt),
		a.Network,
		a.Channel,
		FormatStringPtr(a.CampaignName),
		a.Country,
		a.Currency,
		FormatMoney(a.Amount),
		FormatIntPtr(a.Conversions),
	}
}
