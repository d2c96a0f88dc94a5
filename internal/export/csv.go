package export

import (
	"encoding/csv"
	"io"

	"spendlog/internal/models"
)

// WriteCSV writes the header row followed by one row per expense, in the
// order given.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range expenses {
		e := &expenses[i]
		if err := cw.Write([]string{e.Title, e.AmountString(), string(e.Category), e.DateString(), e.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
