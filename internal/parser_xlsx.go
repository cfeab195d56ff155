package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const FormatXLSX = "xlsx"

// ParseXLSX reads expenses from the first sheet of an Excel workbook.
// The header row must contain Date, Category and Amount columns; a Frequency
// column is optional and a non-empty cell there makes the row recurring.
// Rows that fail validation are skipped. Workbooks written by ExportXLSX
// round-trip through this parser.
func ParseXLSX(path string) ([]Expense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	dateCol, categoryCol, amountCol, frequencyCol := -1, -1, -1, -1
	dataStartRow := -1

	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
			case "category":
				categoryCol = j
			case "amount":
				amountCol = j
			case "frequency":
				frequencyCol = j
			}
		}
		if dateCol >= 0 && categoryCol >= 0 && amountCol >= 0 {
			dataStartRow = i + 1
			break
		}
	}

	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Date, Category, Amount)")
	}

	var expenses []Expense
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		// Ensure row has enough columns
		maxCol := max(dateCol, categoryCol, amountCol)
		if len(row) <= maxCol {
			continue
		}

		dateStr := strings.TrimSpace(row[dateCol])
		category := row[categoryCol]
		amountStr := strings.TrimSpace(row[amountCol])

		// Skip empty rows
		if dateStr == "" && strings.TrimSpace(category) == "" && amountStr == "" {
			continue
		}

		frequency := ""
		if frequencyCol >= 0 && frequencyCol < len(row) {
			frequency = strings.TrimSpace(row[frequencyCol])
		}

		e, err := xlsxRowToExpense(dateStr, category, amountStr, frequency)
		if err != nil {
			logger.Warn().Str("path", path).Int("row", i+1).Err(err).Msg("skipping row")
			continue
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

func xlsxRowToExpense(dateStr, category, amountStr, frequency string) (Expense, error) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return Expense{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return Expense{}, err
	}
	if frequency != "" {
		return NewRecurringExpense(amount, category, dateStr, frequency)
	}
	return NewExpense(amount, category, dateStr)
}

func init() {
	RegisterParser(FormatXLSX, ParserFunc(ParseXLSX))
}
