package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

const FormatSimpleJSON = "simple-json"

// SimpleJSONFormat is a minimal JSON format for importing expenses
// Example:
//
//	{
//	  "expenses": [
//	    {"date": "2025-01-15", "category": "groceries", "amount": 42.10},
//	    {"date": "2025-02-01", "category": "gym", "amount": 40, "frequency": "Monthly"}
//	  ]
//	}
//
// An entry with a "frequency" key becomes a recurring expense.
type SimpleJSONFormat struct {
	Expenses []SimpleJSONExpense `json:"expenses"`
}

type SimpleJSONExpense struct {
	Date      string  `json:"date"` // YYYY-MM-DD format
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Frequency *string `json:"frequency,omitempty"`
}

// ParseSimpleJSON parses a JSON file in the simple JSON format.
// Invalid entries are skipped and logged with their index.
func ParseSimpleJSON(path string) ([]Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var expenses []Expense
	for i, item := range jsonData.Expenses {
		e, err := item.toExpense()
		if err != nil {
			logger.Warn().Str("path", path).Int("entry", i).Err(err).Msg("skipping expense")
			continue
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

func (item SimpleJSONExpense) toExpense() (Expense, error) {
	if err := ValidateAmount(item.Amount); err != nil {
		return Expense{}, err
	}
	if item.Frequency != nil {
		return NewRecurringExpense(item.Amount, item.Category, item.Date, *item.Frequency)
	}
	return NewExpense(item.Amount, item.Category, item.Date)
}

func init() {
	RegisterParser(FormatSimpleJSON, ParserFunc(ParseSimpleJSON))
}
