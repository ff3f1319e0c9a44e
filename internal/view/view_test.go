package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChasNicholls/spendlite/internal/model"
)

func dated(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func manyTxns(n int) []model.Transaction {
	txns := make([]model.Transaction, n)
	for i := range txns {
		txns[i] = model.Transaction{
			Description: fmt.Sprintf("txn %d", i+1),
			Amount:      decimal.NewFromInt(-1),
			Category:    "MISC",
		}
	}
	return txns
}

func TestFilterByMonth(t *testing.T) {
	txns := []model.Transaction{
		{Description: "march", Date: dated(2024, time.March, 15)},
		{Description: "april", Date: dated(2024, time.April, 1)},
		{Description: "undated"},
	}

	march := FilterByMonth(txns, "2024-03")
	require.Len(t, march, 1)
	assert.Equal(t, "march", march[0].Description)

	// empty key keeps everything, even rows with no resolved date
	all := FilterByMonth(txns, "")
	assert.Len(t, all, 3)
}

func TestFilterByCategory(t *testing.T) {
	txns := []model.Transaction{
		{Description: "a", Category: "GROCERIES"},
		{Description: "b", Category: ""},
		{Description: "c", Category: "PETROL"},
	}

	groceries := FilterByCategory(txns, "GROCERIES")
	require.Len(t, groceries, 1)
	assert.Equal(t, "a", groceries[0].Description)

	// blank categories bucket under the uncategorised sentinel
	unc := FilterByCategory(txns, model.Uncategorised)
	require.Len(t, unc, 1)
	assert.Equal(t, "b", unc[0].Description)

	assert.Len(t, FilterByCategory(txns, ""), 3)
}

func TestPaginate(t *testing.T) {
	txns := manyTxns(47)

	p := Paginate(txns, 1, 10)
	assert.Equal(t, 5, p.TotalPages)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, "txn 1", p.Items[0].Description)

	last := Paginate(txns, 5, 10)
	assert.Len(t, last.Items, 7)
	assert.Equal(t, "txn 41", last.Items[0].Description)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	txns := manyTxns(47)

	high := Paginate(txns, 9, 10)
	assert.Equal(t, 5, high.Number)
	assert.Len(t, high.Items, 7)

	low := Paginate(txns, 0, 10)
	assert.Equal(t, 1, low.Number)
}

func TestPaginate_EmptyInput(t *testing.T) {
	p := Paginate(nil, 3, 10)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestPageDelta(t *testing.T) {
	assert.Equal(t, 3, PageDelta(2, 5, 1))
	assert.Equal(t, 1, PageDelta(2, 5, -1))
	// ignored at the edges
	assert.Equal(t, 1, PageDelta(1, 5, -1))
	assert.Equal(t, 5, PageDelta(5, 5, 1))
	// a single page never moves
	assert.Equal(t, 1, PageDelta(1, 1, 1))
	assert.Equal(t, 1, PageDelta(1, 1, -1))
}

func pagerLabels(controls []PagerControl) []string {
	labels := make([]string, len(controls))
	for i, c := range controls {
		labels[i] = c.Label
	}
	return labels
}

func TestPagerControls_WindowCentersOnCurrent(t *testing.T) {
	controls := PagerControls(6, 12)
	assert.Equal(t, []string{"First", "Prev", "4", "5", "6", "7", "8", "Next", "Last"}, pagerLabels(controls))
	for _, c := range controls {
		if c.Label == "6" {
			assert.True(t, c.Active)
		} else {
			assert.False(t, c.Active)
		}
	}
}

func TestPagerControls_WindowClampsAtEdges(t *testing.T) {
	assert.Equal(t,
		[]string{"First", "Prev", "1", "2", "3", "4", "5", "Next", "Last"},
		pagerLabels(PagerControls(1, 12)))
	assert.Equal(t,
		[]string{"First", "Prev", "8", "9", "10", "11", "12", "Next", "Last"},
		pagerLabels(PagerControls(12, 12)))
}

func TestPagerControls_SinglePage(t *testing.T) {
	controls := PagerControls(1, 1)
	assert.Equal(t, []string{"First", "Prev", "1", "Next", "Last"}, pagerLabels(controls))
	assert.True(t, controls[0].Disabled)
	assert.True(t, controls[1].Disabled)
	assert.True(t, controls[3].Disabled)
	assert.True(t, controls[4].Disabled)
}

func TestMonthOptions(t *testing.T) {
	txns := []model.Transaction{
		{Date: dated(2024, time.April, 2)},
		{Date: dated(2024, time.March, 15)},
		{Date: dated(2024, time.March, 1)},
		{Description: "undated"},
	}

	months, effective := MonthOptions(txns, "2024-03")
	assert.Equal(t, []string{"2024-03", "2024-04"}, months)
	assert.Equal(t, "2024-03", effective)

	// stale selection falls back to all months
	_, effective = MonthOptions(txns, "2023-12")
	assert.Equal(t, "", effective)
}

func TestFirstTransactionMonth(t *testing.T) {
	assert.Equal(t, "2024-03", FirstTransactionMonth([]model.Transaction{
		{Date: dated(2024, time.March, 3)},
	}))
	assert.Equal(t, "", FirstTransactionMonth(nil))
	assert.Equal(t, "", FirstTransactionMonth([]model.Transaction{{Description: "undated"}}))
}

func TestBuild_TotalsCoverMonthSetSummaryCoversVisible(t *testing.T) {
	txns := []model.Transaction{
		{Description: "coles", Category: "GROCERIES", Amount: decimal.RequireFromString("-45.00"), Date: dated(2024, time.March, 1)},
		{Description: "shell", Category: "PETROL", Amount: decimal.RequireFromString("-80.00"), Date: dated(2024, time.March, 2)},
		{Description: "april coles", Category: "GROCERIES", Amount: decimal.RequireFromString("-30.00"), Date: dated(2024, time.April, 5)},
	}

	vm := Build(txns, model.FilterState{Month: "2024-03", Category: "GROCERIES", Page: 1}, 10, false)

	// totals span the whole month, not just the category-filtered rows
	require.Len(t, vm.Totals, 2)
	assert.True(t, vm.GrandTotal.Equal(decimal.RequireFromString("-125.00")))

	// summary and table only see the category subset
	assert.Equal(t, 1, vm.Summary.Count)
	assert.True(t, vm.Summary.Credit.Equal(decimal.RequireFromString("45.00")))
	require.Len(t, vm.Page.Items, 1)
	assert.Equal(t, "coles", vm.Page.Items[0].Description)

	assert.Equal(t, []string{"2024-03", "2024-04"}, vm.Months)
	assert.Equal(t, "March 2024", vm.MonthLabel)
}

func TestBuild_StaleMonthFilterShowsEverything(t *testing.T) {
	txns := []model.Transaction{
		{Description: "a", Category: "MISC", Amount: decimal.NewFromInt(-1), Date: dated(2024, time.March, 1)},
	}
	vm := Build(txns, model.FilterState{Month: "2020-01", Page: 1}, 10, false)
	assert.Equal(t, "", vm.MonthFilter)
	assert.Equal(t, AllMonthsLabel, vm.MonthLabel)
	assert.Equal(t, 1, vm.Summary.Count)
}
