package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorised is the category assigned when no rule matches.
const Uncategorised = "UNCATEGORISED"

// Transaction represents one parsed bank-statement line item.
type Transaction struct {
	ID          string          // assigned at ingest, used to address a row
	RawDate     string          // date text as it appeared in the export
	Date        *time.Time      // resolved calendar date, nil if unparseable
	Amount      decimal.Decimal // signed: positive = debit, negative = credit
	Description string
	Category    string // always set; Uncategorised when no rule matches
}

// Rule maps a description keyword to a category. Order within a rule
// sequence is significant: classification takes the first match.
type Rule struct {
	Keyword  string // lowercase
	Category string // uppercase
}

// FilterState is the process-wide view restriction.
type FilterState struct {
	Month    string // "YYYY-MM", empty = all months
	Category string // uppercase, empty = no category filter
	Page     int    // 1-based current page
}
