package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadExpenses_UniqueCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_data.txt")
	writeFile(t, path, strings.Join([]string{
		"2025-01-01,Groceries,50.00",
		"2025-01-02,Rent,1000.00",
		"2025-01-03,Groceries,25.00",
	}, "\n"))

	expenses, stats, err := LoadExpenses(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expenses) != 3 || stats.Loaded != 3 {
		t.Fatalf("expected 3 expenses, got %d (stats %+v)", len(expenses), stats)
	}
	if stats.Categories != 2 {
		t.Errorf("Categories = %d, want 2", stats.Categories)
	}

	categories := UniqueCategories(expenses)
	if len(categories) != 2 || categories[0] != "Groceries" || categories[1] != "Rent" {
		t.Errorf("UniqueCategories = %v", categories)
	}
}

func TestLoadExpenses_SkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	writeFile(t, path, strings.Join([]string{
		"2025-01-01,Groceries,50.00",
		"",
		"garbage",
		"2025-01-02,Rent",
		"2025-01-03,Gym,abc",
		"2025-13-40,Gym,10.00",
		"2025-01-04,Gym,-1.00,Monthly",
		"2025-02-01,Gym,40.00,Monthly",
		"a,b,c,d,e",
	}, "\n"))

	expenses, stats, err := LoadExpenses(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if stats.Skipped != 6 {
		t.Errorf("Skipped = %d, want 6", stats.Skipped)
	}
	if !expenses[1].IsRecurring() {
		t.Error("expected the second expense to be recurring")
	}
}

func TestLoadExpenses_MissingFile(t *testing.T) {
	expenses, stats, err := LoadExpenses(filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expected no expenses, got %d", len(expenses))
	}
	if !stats.Missing {
		t.Error("expected stats.Missing")
	}
}

func TestReadAllLines_NotFound(t *testing.T) {
	_, err := ReadAllLines(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadExpenses_LongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	long := "2025-01-02," + strings.Repeat("x", 70*1024) + ",5.00,Weekly,extra"
	writeFile(t, path, "2025-01-01,Groceries,50.00\n"+long+"\n2025-01-03,Rent,1000.00\n")

	expenses, stats, err := LoadExpenses(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Loaded != 2 || stats.Skipped != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(expenses) != 2 || expenses[1].Category != "Rent" {
		t.Errorf("unexpected expenses %v", expenses)
	}
}

func TestReadAllLines_LongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	long := strings.Repeat("y", 100*1024)
	writeFile(t, path, "a\r\n"+long+"\nb")

	lines, err := ReadAllLines(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 || lines[0] != "a" || lines[1] != long || lines[2] != "b" {
		t.Errorf("unexpected lines (count %d)", len(lines))
	}
}

func TestSaveAndLoad_SmallAmounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")

	var expenses []Expense
	for _, amount := range []float64{0.004, 0.005, 0.01, 2.675} {
		if err := ValidateAmount(amount); err != nil {
			continue
		}
		expenses = append(expenses, mustExpense(t, amount, "tiny", "2025-01-01"))
	}
	if len(expenses) != 3 {
		t.Fatalf("expected 0.004 to be rejected, kept %d amounts", len(expenses))
	}

	if err := SaveExpenses(path, expenses); err != nil {
		t.Fatal(err)
	}
	_, stats, err := LoadExpenses(path)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != len(expenses) || stats.Skipped != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "expenses.txt")
	expenses := []Expense{
		mustExpense(t, 100.5, "rent", "2025-10-01"),
		mustRecurring(t, 40, "gym", "2025-02-01", "Monthly"),
		mustExpense(t, 3.333, "snacks", "2025-02-02"),
	}

	if err := SaveExpenses(path, expenses); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "2025-10-01,Rent,100.50\n2025-02-01,Gym,40.00,Monthly\n2025-02-02,Snacks,3.33\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}

	loaded, stats, err := LoadExpenses(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if stats.Loaded != 3 || stats.Skipped != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	for i := range expenses {
		if loaded[i].Record() != expenses[i].Record() {
			t.Errorf("record %d = %q, want %q", i, loaded[i].Record(), expenses[i].Record())
		}
	}
}

func TestSaveExpenses_OverwritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	writeFile(t, path, "2025-01-01,Old,1.00\n2025-01-02,Old,2.00\n")

	if err := SaveExpenses(path, []Expense{mustExpense(t, 5, "new", "2025-05-05")}); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadAllLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "2025-05-05,New,5.00" {
		t.Errorf("lines = %v", lines)
	}
}

func TestSaveExpenses_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	if err := SaveExpenses(path, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", data)
	}
}
