package state

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/parse"
)

// snapshotTxn is the persisted transaction shape: a JSON array of these is
// the serialized transaction list.
type snapshotTxn struct {
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
}

func encodeSnapshot(txns []model.Transaction) (string, error) {
	rows := make([]snapshotTxn, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, snapshotTxn{
			Date:        t.RawDate,
			Amount:      json.Number(t.Amount.String()),
			Description: t.Description,
			Category:    t.Category,
		})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeSnapshot restores a persisted transaction list. A corrupt snapshot
// degrades to an empty list; corrupt fields degrade the way live parsing
// does (zero amounts, unresolved dates).
func decodeSnapshot(data string) []model.Transaction {
	var rows []snapshotTxn
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil
	}
	txns := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount.String())
		if err != nil {
			amount = decimal.Zero
		}
		txns = append(txns, model.Transaction{
			ID:          uuid.NewString(),
			RawDate:     row.Date,
			Date:        parse.DateSmart(row.Date),
			Amount:      amount,
			Description: row.Description,
			Category:    row.Category,
		})
	}
	return txns
}
