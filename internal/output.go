package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONExpense is the JSON output format for an expense
type JSONExpense struct {
	Index     int     `json:"index,omitempty"`
	Date      string  `json:"date"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Recurring bool    `json:"recurring"`
	Frequency string  `json:"frequency,omitempty"`
}

// JSONExpenseList is the root JSON object for listings and searches
type JSONExpenseList struct {
	Term     string        `json:"term,omitempty"`
	Count    int           `json:"count"`
	Expenses []JSONExpense `json:"expenses"`
}

// JSONTotal is one grouped report row
type JSONTotal struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// JSONReport is the root JSON object for summary reports
type JSONReport struct {
	Count      int         `json:"count"`
	ByCategory []JSONTotal `json:"by_category"`
	ByMonth    []JSONTotal `json:"by_month"`
	GrandTotal float64     `json:"grand_total"`
}

func toJSONExpenses(expenses []Expense, indexed bool) []JSONExpense {
	out := make([]JSONExpense, 0, len(expenses))
	for i, e := range expenses {
		je := JSONExpense{
			Date:      e.DateString(),
			Category:  e.Category,
			Amount:    e.Amount,
			Recurring: e.IsRecurring(),
			Frequency: e.Frequency,
		}
		if indexed {
			je.Index = i + 1
		}
		out = append(out, je)
	}
	return out
}

func toJSONTotals(totals []Total) []JSONTotal {
	out := make([]JSONTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, JSONTotal{Key: t.Key, Count: t.Count, Total: t.Sum.InexactFloat64()})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintExpensesJSON outputs the date-sorted listing in JSON format
func PrintExpensesJSON(w io.Writer, expenses []Expense) error {
	return writeJSON(w, JSONExpenseList{
		Count:    len(expenses),
		Expenses: toJSONExpenses(SortByDate(expenses), true),
	})
}

// PrintSearchJSON outputs search results in JSON format
func PrintSearchJSON(w io.Writer, term string, found []Expense) error {
	return writeJSON(w, JSONExpenseList{
		Term:     term,
		Count:    len(found),
		Expenses: toJSONExpenses(found, false),
	})
}

// PrintReportJSON outputs both summaries and the grand total in JSON format
func PrintReportJSON(w io.Writer, report Report) error {
	return writeJSON(w, JSONReport{
		Count:      report.Count,
		ByCategory: toJSONTotals(report.ByCategory),
		ByMonth:    toJSONTotals(report.ByMonth),
		GrandTotal: report.GrandTotal.InexactFloat64(),
	})
}

// PrintExpensesTable outputs every expense, oldest first, numbered from 1
func PrintExpensesTable(w io.Writer, expenses []Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses recorded.")
		return
	}
	fmt.Fprintf(w, "All expenses (%d)\n", len(expenses))
	renderExpenses(w, SortByDate(expenses), true)
}

// PrintSearchTable outputs the expenses matching term in collection order
func PrintSearchTable(w io.Writer, term string, total int, found []Expense) {
	if total == 0 {
		fmt.Fprintln(w, "No expenses to search.")
		return
	}
	if len(found) == 0 {
		fmt.Fprintln(w, "No expenses found matching the search term.")
		return
	}
	fmt.Fprintf(w, "Found %d matching expenses for %q\n", len(found), term)
	renderExpenses(w, found, false)
}

func renderExpenses(w io.Writer, expenses []Expense, numbered bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{}
	if numbered {
		header = append(header, "#")
	}
	header = append(header, "Date", "Category", "Amount", "Recurring")
	t.AppendHeader(header)

	for i, e := range expenses {
		recurring := ""
		if e.IsRecurring() {
			recurring = text.FgCyan.Sprint(e.Frequency)
		}
		row := table.Row{}
		if numbered {
			row = append(row, strconv.Itoa(i+1))
		}
		row = append(row, e.DateString(), e.Category, "$"+e.AmountString(), recurring)
		t.AppendRow(row)
	}

	t.AppendSeparator()
	footer := table.Row{}
	if numbered {
		footer = append(footer, "")
	}
	footer = append(footer, "", text.Bold.Sprint("Total"), text.Bold.Sprint("$"+FormatTotal(GrandTotal(expenses))), "")
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	amountCol := 3
	if numbered {
		amountCol = 4
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: amountCol, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

// PrintReportTable outputs spending by category, by month and the grand total
func PrintReportTable(w io.Writer, report Report) {
	if report.Count == 0 {
		fmt.Fprintln(w, "No expenses to summarize.")
		return
	}

	fmt.Fprintln(w, "Total spending by category")
	renderTotals(w, "Category", report.ByCategory)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Total spending by month")
	renderTotals(w, "Month", report.ByMonth)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "TOTAL SPENDING: $%s\n", FormatTotal(report.GrandTotal))
}

func renderTotals(w io.Writer, keyHeader string, totals []Total) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{keyHeader, "Count", "Total"})
	for _, total := range totals {
		t.AppendRow(table.Row{total.Key, total.Count, "$" + FormatTotal(total.Sum)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}
