package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/parse"
)

// StatementParser parses the 10-column bank statement export SpendLite was
// built around: date at index 2, debit amount at index 5, long description
// at index 9.
type StatementParser struct{}

const (
	minColumns  = 10
	colDate     = 2
	colDebit    = 5
	colLongDesc = 9
)

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads the export and returns transactions. Rows shorter than the
// 10-column minimum are discarded, as are rows with neither a date nor a
// description. The first row is treated as a header when its amount field
// carries no parseable number. Field-level parse failures degrade silently:
// bad amounts become zero and bad dates stay unresolved.
func (p *StatementParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	start := 0
	if len(records) > 0 && len(records[0]) > colDebit && !parse.IsNumeric(records[0][colDebit]) {
		start = 1
	}

	var txns []model.Transaction
	for _, rec := range records[start:] {
		if len(rec) < minColumns {
			continue
		}
		rawDate := rec[colDate]
		desc := strings.TrimSpace(rec[colLongDesc])
		if rawDate == "" && desc == "" {
			continue
		}
		txns = append(txns, model.Transaction{
			ID:          uuid.NewString(),
			RawDate:     rawDate,
			Date:        parse.DateSmart(rawDate),
			Amount:      parse.Amount(rec[colDebit]),
			Description: desc,
			Category:    model.Uncategorised,
		})
	}
	return txns, nil
}
