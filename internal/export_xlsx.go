package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetExpenses   = "Expenses"
	sheetByCategory = "By Category"
	sheetByMonth    = "By Month"
)

// ExportXLSX writes the expenses (sorted by date) and both reports to a workbook.
// Amounts are written as numbers so the sheet stays usable for further math.
func ExportXLSX(path string, expenses []Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetExpenses); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	rows := [][]any{{"Date", "Category", "Amount", "Frequency"}}
	for _, e := range SortByDate(expenses) {
		rows = append(rows, []any{e.DateString(), e.Category, e.Amount, e.Frequency})
	}
	if err := writeRows(f, sheetExpenses, rows); err != nil {
		return err
	}

	report := BuildReport(expenses)
	if err := writeTotalsSheet(f, sheetByCategory, "Category", report.ByCategory); err != nil {
		return err
	}
	if err := writeTotalsSheet(f, sheetByMonth, "Month", report.ByMonth); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	logger.Info().Str("path", path).Int("count", len(expenses)).Msg("exported workbook")
	return nil
}

func writeTotalsSheet(f *excelize.File, sheet, keyHeader string, totals []Total) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{keyHeader, "Count", "Total"}}
	for _, t := range totals {
		rows = append(rows, []any{t.Key, t.Count, t.Sum.InexactFloat64()})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
