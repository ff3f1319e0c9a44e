// Package view builds the filtered, paginated projection of the
// application state that a presentation surface renders.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ChasNicholls/spendlite/internal/aggregate"
	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/parse"
)

// DefaultPageSize is the transaction-table page size.
const DefaultPageSize = 10

// FilterByMonth keeps transactions whose resolved date falls in the given
// "YYYY-MM" bucket. An empty key returns everything, including rows with
// unparseable dates; a non-empty key excludes such rows.
func FilterByMonth(txns []model.Transaction, monthKey string) []model.Transaction {
	if monthKey == "" {
		return txns
	}
	var out []model.Transaction
	for _, t := range txns {
		if t.Date != nil && parse.YearMonthKey(*t.Date) == monthKey {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCategory keeps transactions whose uppercased category equals the
// filter. An empty filter is a passthrough.
func FilterByCategory(txns []model.Transaction, category string) []model.Transaction {
	if category == "" {
		return txns
	}
	var out []model.Transaction
	for _, t := range txns {
		cat := strings.ToUpper(t.Category)
		if cat == "" {
			cat = model.Uncategorised
		}
		if cat == category {
			out = append(out, t)
		}
	}
	return out
}

// Page is one slice of the filtered transaction list.
type Page struct {
	Items      []model.Transaction `json:"items"`
	Number     int                 `json:"number"` // clamped, 1-based
	TotalPages int                 `json:"totalPages"`
}

// Paginate clamps the requested page into [1, totalPages] and slices the
// input. totalPages is never below 1, even for an empty input.
func Paginate(txns []model.Transaction, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(txns) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(txns) {
		start = len(txns)
	}
	if end > len(txns) {
		end = len(txns)
	}
	return Page{Items: txns[start:end], Number: page, TotalPages: totalPages}
}

// PageDelta moves the current page by one wheel tick, staying in range.
// With a single page the tick is ignored.
func PageDelta(current, totalPages, delta int) int {
	if totalPages <= 1 {
		return current
	}
	next := current + delta
	if next < 1 {
		return current
	}
	if next > totalPages {
		return current
	}
	return next
}

// PagerControl is one pager button.
type PagerControl struct {
	Label    string `json:"label"`
	Page     int    `json:"page"`
	Disabled bool   `json:"disabled"`
	Active   bool   `json:"active"`
}

// pagerWindow is the number of numbered buttons around the current page.
const pagerWindow = 5

// PagerControls builds the First/Prev/window/Next/Last button row for the
// given position.
func PagerControls(current, totalPages int) []PagerControl {
	if totalPages < 1 {
		totalPages = 1
	}

	start := current - pagerWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pagerWindow - 1
	if end > totalPages {
		end = totalPages
	}
	if s := end - pagerWindow + 1; s < start {
		start = s
	}
	if start < 1 {
		start = 1
	}

	prev := current - 1
	if prev < 1 {
		prev = 1
	}
	next := current + 1
	if next > totalPages {
		next = totalPages
	}

	controls := []PagerControl{
		{Label: "First", Page: 1, Disabled: current == 1},
		{Label: "Prev", Page: prev, Disabled: current == 1},
	}
	for p := start; p <= end; p++ {
		controls = append(controls, PagerControl{
			Label:  strconv.Itoa(p),
			Page:   p,
			Active: p == current,
		})
	}
	controls = append(controls,
		PagerControl{Label: "Next", Page: next, Disabled: current == totalPages},
		PagerControl{Label: "Last", Page: totalPages, Disabled: current == totalPages},
	)
	return controls
}

// MonthOptions collects the sorted year-month keys of all transactions with
// a resolvable date. The returned effective selection falls back to empty
// (all months) when the previous selection is no longer present.
func MonthOptions(txns []model.Transaction, selected string) (months []string, effective string) {
	seen := make(map[string]struct{})
	for _, t := range txns {
		if t.Date == nil {
			continue
		}
		key := parse.YearMonthKey(*t.Date)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			months = append(months, key)
		}
	}
	sort.Strings(months)

	for _, m := range months {
		if m == selected {
			return months, selected
		}
	}
	return months, ""
}

// FirstTransactionMonth returns the year-month key of the first
// transaction's date, or empty when the list is empty or the date did not
// resolve. Used as the totals-export label fallback.
func FirstTransactionMonth(txns []model.Transaction) string {
	if len(txns) == 0 || txns[0].Date == nil {
		return ""
	}
	return parse.YearMonthKey(*txns[0].Date)
}

// Summary is the count and debit/credit/net bar over the visible set.
type Summary struct {
	Count  int             `json:"count"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Net    decimal.Decimal `json:"net"`
}

// Model is everything a presentation surface needs to render one frame.
type Model struct {
	MonthFilter    string                    `json:"monthFilter"`
	MonthLabel     string                    `json:"monthLabel"`
	CategoryFilter string                    `json:"categoryFilter"`
	Months         []string                  `json:"months"`
	Summary        Summary                   `json:"summary"`
	Totals         []aggregate.CategoryTotal `json:"totals"`
	GrandTotal     decimal.Decimal           `json:"grandTotal"`
	Page           Page                      `json:"page"`
	Pager          []PagerControl            `json:"pager"`
	Collapsed      bool                      `json:"collapsed"`
}

// Build projects the transaction list through the month filter, category
// filter and pagination. Category totals cover the month-filtered set; the
// summary and table cover the category-filtered subset, matching what the
// totals table and transaction table each show.
func Build(txns []model.Transaction, fs model.FilterState, pageSize int, collapsed bool) Model {
	months, effective := MonthOptions(txns, fs.Month)
	monthTxns := FilterByMonth(txns, effective)
	visible := FilterByCategory(monthTxns, fs.Category)

	totals, grand := aggregate.CategoryTotals(monthTxns)
	debit, credit, net := aggregate.DebitCreditNet(visible)
	page := Paginate(visible, fs.Page, pageSize)

	return Model{
		MonthFilter:    effective,
		MonthLabel:     FriendlyMonthOrAll(effective),
		CategoryFilter: fs.Category,
		Months:         months,
		Summary:        Summary{Count: len(visible), Debit: debit, Credit: credit, Net: net},
		Totals:         totals,
		GrandTotal:     grand,
		Page:           page,
		Pager:          PagerControls(page.Number, page.TotalPages),
		Collapsed:      collapsed,
	}
}
