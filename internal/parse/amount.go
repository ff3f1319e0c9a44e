// Package parse normalises the raw text fields of a bank-statement export
// into decimal amounts and resolved calendar dates. Failures degrade
// silently: amounts fall back to zero and dates to nil.
package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount converts raw amount text to a decimal. Everything except digits,
// minus sign, comma and period is stripped, thousands separators are
// removed, and anything still unparseable becomes zero.
func Amount(s string) decimal.Decimal {
	cleaned := cleanAmount(s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether the raw text carries a parseable amount. The
// importer uses it to sniff header rows.
func IsNumeric(s string) bool {
	cleaned := cleanAmount(s)
	if cleaned == "" {
		return false
	}
	_, err := decimal.NewFromString(cleaned)
	return err == nil
}

func cleanAmount(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		case r == ',':
			// thousands separator, dropped
		}
	}
	return b.String()
}
