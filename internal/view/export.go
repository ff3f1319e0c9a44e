package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChasNicholls/spendlite/internal/aggregate"
	"github.com/ChasNicholls/spendlite/internal/model"
)

const (
	amountWidth  = 12
	percentWidth = 6
	minCatWidth  = 8
)

// TotalsLabel picks the totals-export header label: the active month
// filter, then the first transaction's month, then the current month.
func TotalsLabel(monthFilter string, txns []model.Transaction) string {
	if monthFilter != "" {
		return FriendlyMonthOrAll(monthFilter)
	}
	if first := FirstTransactionMonth(txns); first != "" {
		return MonthLabel(first)
	}
	now := time.Now()
	return fmt.Sprintf("%s %d", now.Month().String(), now.Year())
}

// TotalsFilename returns the export filename for a month label, e.g.
// "category_totals_March_2024.txt".
func TotalsFilename(label string) string {
	return fmt.Sprintf("category_totals_%s.txt", ForFilename(label))
}

// RenderTotalsText renders category totals as fixed-width plain text: a
// header naming the month, an = rule sized to it, the column header, one
// row per category, then a blank line and the TOTAL row at 100%.
func RenderTotalsText(rows []aggregate.CategoryTotal, grand decimal.Decimal, monthLabel string) string {
	header := fmt.Sprintf("SpendLite Category Totals (%s)", monthLabel)

	catWidth := minCatWidth
	if w := len("Category"); w > catWidth {
		catWidth = w
	}
	for _, row := range rows {
		if w := len(TitleCase(row.Category)); w > catWidth {
			catWidth = w
		}
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("=", len(header)))
	lines = append(lines, fmt.Sprintf("%-*s %*s %*s", catWidth, "Category", amountWidth, "Amount", percentWidth, "%"))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-*s %*s %*s",
			catWidth, TitleCase(row.Category),
			amountWidth, row.Total.StringFixed(2),
			percentWidth, fmt.Sprintf("%.1f%%", row.Percent)))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%-*s %*s %*s", catWidth, "TOTAL", amountWidth, grand.StringFixed(2), percentWidth, "100%"))

	return strings.Join(lines, "\n")
}
