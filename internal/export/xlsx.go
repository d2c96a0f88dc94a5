package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"spendlog/internal/models"
)

// WriteXLSX writes a workbook with a single "Expenses" sheet. Amounts are
// numeric cells; dates are YYYY-MM-DD text.
func WriteXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(XLSXSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range expenses {
		e := &expenses[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Title, e.Amount.InexactFloat64(), string(e.Category), e.DateString(), e.Notes}
		if err := f.SetSheetRow(XLSXSheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
