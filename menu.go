package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gigurra/expense-tracker/internal"
)

// errInputClosed ends the session when stdin runs out
var errInputClosed = errors.New("input closed")

type session struct {
	in       *bufio.Scanner
	out      io.Writer
	dataFile string
	cfg      *internal.Config
	expenses []internal.Expense
}

func newSession(in io.Reader, out io.Writer, dataFile string, cfg *internal.Config, expenses []internal.Expense) *session {
	return &session{
		in:       bufio.NewScanner(in),
		out:      out,
		dataFile: dataFile,
		cfg:      cfg,
		expenses: expenses,
	}
}

// Run shows the menu until the user saves and exits. Closing stdin leaves
// without saving.
func (s *session) Run() error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "==============================")
		fmt.Fprintln(s.out, "     EXPENSE TRACKER MENU")
		fmt.Fprintln(s.out, "==============================")
		fmt.Fprintln(s.out, "1. Add New Expense")
		fmt.Fprintln(s.out, "2. View All Expenses")
		fmt.Fprintln(s.out, "3. Search Expenses")
		fmt.Fprintln(s.out, "4. View Summary Reports")
		fmt.Fprintln(s.out, "5. Save and Exit")

		choice, err := s.prompt("Enter your choice (1-5): ")
		if err != nil {
			return s.closed(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.add()
		case "2":
			s.list()
		case "3":
			err = s.search()
		case "4":
			internal.PrintReportTable(s.out, internal.BuildReport(s.expenses))
		case "5":
			if err := internal.SaveExpenses(s.dataFile, s.expenses); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Saved %d expenses to '%s'.\n", len(s.expenses), s.dataFile)
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "[Error] Invalid choice. Please enter a number between 1 and 5.")
		}
		if err != nil {
			return s.closed(err)
		}
	}
}

func (s *session) closed(err error) error {
	if errors.Is(err, errInputClosed) {
		internal.Logger().Warn().Int("unsaved", len(s.expenses)).Msg("input closed, leaving without saving")
		return nil
	}
	return err
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return s.in.Text(), nil
}

func (s *session) add() error {
	fmt.Fprintln(s.out, "\n--- Add New Expense ---")

	var amount float64
	for {
		raw, err := s.prompt("Enter amount (e.g., 15.50): ")
		if err != nil {
			return err
		}
		amount, err = internal.ParseAmount(raw)
		if err != nil {
			fmt.Fprintln(s.out, "[Error] Invalid amount. Please enter a number.")
			continue
		}
		if internal.ValidateAmount(amount) != nil {
			fmt.Fprintln(s.out, "[Error] Amount must be positive.")
			continue
		}
		break
	}

	category, err := s.prompt("Enter category (e.g., Groceries): ")
	if err != nil {
		return err
	}

	var date string
	for {
		date, err = s.prompt("Enter date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		date = strings.TrimSpace(date)
		if _, err := internal.ParseDate(date); err != nil {
			fmt.Fprintln(s.out, "[Error] Invalid date. Please use YYYY-MM-DD.")
			continue
		}
		break
	}

	answer, err := s.prompt("Is this a recurring expense? (yes/no): ")
	if err != nil {
		return err
	}

	var e internal.Expense
	if strings.EqualFold(strings.TrimSpace(answer), "yes") {
		frequency, err := s.prompt(fmt.Sprintf("Enter frequency (default %s): ", s.cfg.Frequency()))
		if err != nil {
			return err
		}
		if strings.TrimSpace(frequency) == "" {
			frequency = s.cfg.Frequency()
		}
		e, err = internal.NewRecurringExpense(amount, category, date, frequency)
		if err != nil {
			fmt.Fprintf(s.out, "[Error] Could not create expense: %v\n", err)
			return nil
		}
	} else {
		e, err = internal.NewExpense(amount, category, date)
		if err != nil {
			fmt.Fprintf(s.out, "[Error] Could not create expense: %v\n", err)
			return nil
		}
	}

	s.expenses = append(s.expenses, e)
	fmt.Fprintf(s.out, "Added: %s\n", e.Display())
	return nil
}

func (s *session) list() {
	fmt.Fprintln(s.out, "\n--- All Expenses ---")
	if len(s.expenses) == 0 {
		fmt.Fprintln(s.out, "No expenses recorded.")
		return
	}
	for i, e := range internal.SortByDate(s.expenses) {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, e.Display())
	}
}

func (s *session) search() error {
	fmt.Fprintln(s.out, "\n--- Search Expenses ---")
	if len(s.expenses) == 0 {
		fmt.Fprintln(s.out, "No expenses to search.")
		return nil
	}

	term, err := s.prompt("Enter search term (category, date, or amount): ")
	if err != nil {
		return err
	}

	found := internal.Search(s.expenses, strings.TrimSpace(term))
	if len(found) == 0 {
		fmt.Fprintln(s.out, "No expenses found matching the search term.")
		return nil
	}
	fmt.Fprintf(s.out, "\nFound %d matching expenses:\n", len(found))
	for _, e := range found {
		fmt.Fprintf(s.out, "- %s\n", e.Display())
	}
	return nil
}
