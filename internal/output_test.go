package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrintExpensesTable(t *testing.T) {
	var buf bytes.Buffer
	PrintExpensesTable(&buf, []Expense{
		mustExpense(t, 25, "groceries", "2025-01-03"),
		mustRecurring(t, 40, "gym", "2025-01-01", "Monthly"),
	})
	out := buf.String()

	if !strings.Contains(out, "All expenses (2)") {
		t.Errorf("missing heading:\n%s", out)
	}
	gym := strings.Index(out, "Gym")
	groceries := strings.Index(out, "Groceries")
	if gym < 0 || groceries < 0 || gym > groceries {
		t.Errorf("expected Gym (older) before Groceries:\n%s", out)
	}
	if !strings.Contains(out, "$65.00") {
		t.Errorf("missing total:\n%s", out)
	}
}

func TestPrintTables_EmptyMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintExpensesTable(&buf, nil)
	PrintSearchTable(&buf, "x", 0, nil)
	PrintSearchTable(&buf, "x", 3, nil)
	PrintReportTable(&buf, BuildReport(nil))
	out := buf.String()

	for _, msg := range []string{
		"No expenses recorded.",
		"No expenses to search.",
		"No expenses found matching the search term.",
		"No expenses to summarize.",
	} {
		if !strings.Contains(out, msg) {
			t.Errorf("missing %q in:\n%s", msg, out)
		}
	}
}

func TestPrintReportTable(t *testing.T) {
	var buf bytes.Buffer
	PrintReportTable(&buf, BuildReport(sampleExpenses(t)))
	out := buf.String()

	rent := strings.Index(out, "Rent")
	groceries := strings.Index(out, "Groceries")
	if rent < 0 || groceries < 0 || rent > groceries {
		t.Errorf("expected Rent before Groceries:\n%s", out)
	}
	for _, want := range []string{"$1000.00", "$75.00", "2025-01", "$1075.00", "TOTAL SPENDING: $1075.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintReportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintReportJSON(&buf, BuildReport(sampleExpenses(t))); err != nil {
		t.Fatal(err)
	}

	var got JSONReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Count != 3 || got.GrandTotal != 1075 {
		t.Errorf("unexpected summary %+v", got)
	}
	if len(got.ByCategory) != 2 || got.ByCategory[0].Key != "Rent" || got.ByCategory[1].Total != 75 {
		t.Errorf("unexpected by_category %+v", got.ByCategory)
	}
	if len(got.ByMonth) != 1 || got.ByMonth[0].Key != "2025-01" {
		t.Errorf("unexpected by_month %+v", got.ByMonth)
	}
}

func TestPrintExpensesJSON(t *testing.T) {
	var buf bytes.Buffer
	err := PrintExpensesJSON(&buf, []Expense{
		mustExpense(t, 25, "groceries", "2025-01-03"),
		mustRecurring(t, 40, "gym", "2025-01-01", "Weekly"),
	})
	if err != nil {
		t.Fatal(err)
	}

	var got JSONExpenseList
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Count != 2 {
		t.Fatalf("Count = %d", got.Count)
	}
	first := got.Expenses[0]
	if first.Index != 1 || first.Category != "Gym" || !first.Recurring || first.Frequency != "Weekly" {
		t.Errorf("unexpected first expense %+v", first)
	}
}

func TestPrintSearchJSON(t *testing.T) {
	var buf bytes.Buffer
	found := Search(sampleExpenses(t), "groc")
	if err := PrintSearchJSON(&buf, "groc", found); err != nil {
		t.Fatal(err)
	}

	var got JSONExpenseList
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Term != "groc" || got.Count != 2 {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestFormatTotal_MatchesRow(t *testing.T) {
	for _, amount := range []float64{2.675, 0.125, 1.005, 100.5} {
		e := mustExpense(t, amount, "misc", "2025-01-01")
		if got, want := FormatTotal(GrandTotal([]Expense{e})), e.AmountString(); got != want {
			t.Errorf("FormatTotal(%v) = %q, row shows %q", amount, got, want)
		}
	}
	if got := FormatTotal(decimal.NewFromFloat(2.675)); got != "2.67" {
		t.Errorf("FormatTotal(2.675) = %q, want 2.67", got)
	}
}

func TestPrintTables_SingleExpenseTotalMatchesRow(t *testing.T) {
	expenses := []Expense{mustExpense(t, 2.675, "misc", "2025-01-01")}

	var buf bytes.Buffer
	PrintExpensesTable(&buf, expenses)
	PrintReportTable(&buf, BuildReport(expenses))
	out := buf.String()

	if strings.Contains(out, "$2.68") {
		t.Errorf("total disagrees with row:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL SPENDING: $2.67") {
		t.Errorf("missing grand total:\n%s", out)
	}
}
