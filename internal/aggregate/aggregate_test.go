package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChasNicholls/spendlite/internal/model"
)

func txn(category, amount string) model.Transaction {
	return model.Transaction{Category: category, Amount: decimal.RequireFromString(amount)}
}

func TestCategoryTotals_SignedGrandTotal(t *testing.T) {
	rows, grand := CategoryTotals([]model.Transaction{
		txn("GROCERIES", "-45.00"),
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "GROCERIES", rows[0].Category)
	assert.True(t, grand.Equal(decimal.RequireFromString("-45.00")))
}

func TestCategoryTotals_SortDescending(t *testing.T) {
	rows, grand := CategoryTotals([]model.Transaction{
		txn("GROCERIES", "-120.50"),
		txn("SALARY", "2000.00"),
		txn("GROCERIES", "-30.00"),
		txn("PETROL", "-80.00"),
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "SALARY", rows[0].Category)
	assert.Equal(t, "PETROL", rows[1].Category)
	assert.Equal(t, "GROCERIES", rows[2].Category)
	assert.True(t, rows[2].Total.Equal(decimal.RequireFromString("-150.50")))
	assert.True(t, grand.Equal(decimal.RequireFromString("1769.50")))
}

func TestCategoryTotals_TiesKeepFirstAppearanceOrder(t *testing.T) {
	rows, _ := CategoryTotals([]model.Transaction{
		txn("BBB", "-10.00"),
		txn("AAA", "-10.00"),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "BBB", rows[0].Category)
	assert.Equal(t, "AAA", rows[1].Category)
}

func TestCategoryTotals_BlankCategoryBucketsAsUncategorised(t *testing.T) {
	rows, _ := CategoryTotals([]model.Transaction{txn("", "-5.00")})
	require.Len(t, rows, 1)
	assert.Equal(t, model.Uncategorised, rows[0].Category)
}

func TestCategoryTotals_PercentZeroWhenGrandZero(t *testing.T) {
	rows, grand := CategoryTotals([]model.Transaction{
		txn("A", "10.00"),
		txn("B", "-10.00"),
	})
	assert.True(t, grand.IsZero())
	for _, r := range rows {
		assert.Zero(t, r.Percent)
	}
}

func TestCategoryTotals_Empty(t *testing.T) {
	rows, grand := CategoryTotals(nil)
	assert.Empty(t, rows)
	assert.True(t, grand.IsZero())
}

func TestDebitCreditNet_ZeroCountsAsCredit(t *testing.T) {
	debit, credit, net := DebitCreditNet([]model.Transaction{
		txn("A", "100.00"),
		txn("B", "-40.00"),
		txn("C", "0.00"),
	})
	assert.True(t, debit.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, credit.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, net.Equal(decimal.RequireFromString("60.00")))
}
