package internal

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Total is one row of a grouped report
type Total struct {
	Key   string
	Count int
	Sum   decimal.Decimal
}

// Report holds both grouped summaries and the grand total
type Report struct {
	ByCategory []Total
	ByMonth    []Total
	GrandTotal decimal.Decimal
	Count      int
}

// SortByDate returns a copy ordered by date, oldest first. Expenses on the same
// day keep their original order.
func SortByDate(expenses []Expense) []Expense {
	sorted := make([]Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// Search returns the expenses whose category contains term (case-insensitive),
// whose date equals term, or whose two-decimal amount equals term.
// Results keep collection order.
func Search(expenses []Expense, term string) []Expense {
	fold := cases.Fold()
	needle := fold.String(term)

	var found []Expense
	for _, e := range expenses {
		if matches(e, term, needle, fold) {
			found = append(found, e)
		}
	}
	return found
}

func matches(e Expense, term, needle string, fold cases.Caser) bool {
	if strings.Contains(fold.String(e.Category), needle) {
		return true
	}
	if term == e.DateString() {
		return true
	}
	return term == e.AmountString()
}

// CategoryTotals sums amounts per category, largest total first.
// Equal totals are ordered by category name.
func CategoryTotals(expenses []Expense) []Total {
	totals := groupTotals(expenses, func(e Expense) string { return e.Category })
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Sum.Cmp(totals[j].Sum); c != 0 {
			return c > 0
		}
		return totals[i].Key < totals[j].Key
	})
	return totals
}

// MonthTotals sums amounts per YYYY-MM, oldest month first
func MonthTotals(expenses []Expense) []Total {
	totals := groupTotals(expenses, Expense.MonthKey)
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Key < totals[j].Key
	})
	return totals
}

// GrandTotal is the sum of every amount in the collection
func GrandTotal(expenses []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum
}

// UniqueCategories returns the distinct categories in alphabetical order
func UniqueCategories(expenses []Expense) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, e := range expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// BuildReport computes both grouped summaries and the grand total
func BuildReport(expenses []Expense) Report {
	byCategory := CategoryTotals(expenses)
	grand := decimal.Zero
	for _, t := range byCategory {
		grand = grand.Add(t.Sum)
	}
	return Report{
		ByCategory: byCategory,
		ByMonth:    MonthTotals(expenses),
		GrandTotal: grand,
		Count:      len(expenses),
	}
}

func groupTotals(expenses []Expense, keyOf func(Expense) string) []Total {
	index := make(map[string]int)
	var totals []Total
	for _, e := range expenses {
		key := keyOf(e)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, Total{Key: key, Sum: decimal.Zero})
		}
		totals[i].Count++
		totals[i].Sum = totals[i].Sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return totals
}

// FormatTotal renders a total with two decimals, rounding the same way as
// Expense.AmountString so a single-expense total matches its row.
func FormatTotal(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', 2, 64)
}
