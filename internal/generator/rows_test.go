package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

func TestRowsMatchHeaders(t *testing.T) {
	rows := map[string][]string{
		TableCustomers:     CustomerRow(&models.Customer{}),
		TableAccounts:      AccountRow(&models.Account{}),
		TableSubscriptions: SubscriptionRow(&models.Subscription{}),
		TableFeatures:      FeatureRow(&models.CustomerFeature{}),
		TableTransactions:  TransactionRow(&models.Transaction{}),
		TableBalances:      BalanceRow(&models.BalanceSnapshot{}),
		TableRiskEvents:    RiskEventRow(&models.RiskEvent{}),
		TableAdSpend:       AdSpendRow(&models.AdSpend{}),
	}

	require.Len(t, Tables, len(rows))
	for _, table := range Tables {
		assert.Len(t, rows[table], len(Headers[table]), table)
	}
}

func TestTransactionRowNulls(t *testing.T) {
	lat, lng := 52.52, 13.405
	name := "Grocery Mart"
	tx := models.Transaction{
		ID:            "t1",
		CustomerID:    "c1",
		AccountID:     "a1",
		CreatedAt:     date(2025, 1, 2),
		Type:          models.TxTypeCardSpend,
		Status:        models.TxStatusCompleted,
		Amount:        utils.Dollars(12),
		Currency:      "EUR",
		MerchantName:  &name,
		BalanceBefore: 0,
		BalanceAfter:  -1200,
		Latitude:      &lat,
		Longitude:     &lng,
	}

	row := TransactionRow(&tx)
	col := func(name string) string {
		for i, h := range Headers[TableTransactions] {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("no column %s", name)
		return ""
	}

	assert.Equal(t, "2025-01-02 00:00:00", col("created_at"))
	assert.Equal(t, "12.00", col("amount"))
	assert.Equal(t, "Grocery Mart", col("merchant_name"))
	assert.Equal(t, "", col("merchant_category"))
	assert.Equal(t, "", col("city"))
	assert.Equal(t, "-12.00", col("balance_after"))
	assert.Equal(t, "52.5200", col("latitude"))
	assert.Equal(t, "13.4050", col("longitude"))
}
