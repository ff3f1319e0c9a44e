// Package aggregate computes category totals and debit/credit summaries
// over a transaction set.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ChasNicholls/spendlite/internal/model"
)

// CategoryTotal is one derived totals row.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  float64         `json:"percent"` // share of the grand total
}

// CategoryTotals sums signed amounts per category and returns rows sorted
// descending by total, ties keeping first-appearance order, along with the
// grand total. Credits stay negative: the grand total is the signed sum of
// the input amounts.
func CategoryTotals(txns []model.Transaction) ([]CategoryTotal, decimal.Decimal) {
	byCategory := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range txns {
		cat := strings.ToUpper(t.Category)
		if cat == "" {
			cat = model.Uncategorised
		}
		if _, seen := byCategory[cat]; !seen {
			order = append(order, cat)
		}
		byCategory[cat] = byCategory[cat].Add(t.Amount)
	}

	rows := make([]CategoryTotal, 0, len(order))
	grand := decimal.Zero
	for _, cat := range order {
		rows = append(rows, CategoryTotal{Category: cat, Total: byCategory[cat]})
		grand = grand.Add(byCategory[cat])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	if !grand.IsZero() {
		for i := range rows {
			pct, _ := rows[i].Total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
			rows[i].Percent = pct
		}
	}
	return rows, grand
}

// DebitCreditNet splits a transaction set into debit and credit sums plus
// the net. Only strictly positive amounts are debits; zero and negative
// amounts accumulate their absolute value into credit.
func DebitCreditNet(txns []model.Transaction) (debit, credit, net decimal.Decimal) {
	for _, t := range txns {
		if t.Amount.IsPositive() {
			debit = debit.Add(t.Amount)
		} else {
			credit = credit.Add(t.Amount.Abs())
		}
	}
	return debit, credit, debit.Sub(credit)
}
