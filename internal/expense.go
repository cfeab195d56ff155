package internal

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the canonical textual form of an expense date
const DateLayout = "2006-01-02"

// DefaultFrequency is used for recurring expenses when no frequency is supplied
const DefaultFrequency = "Monthly"

var (
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrInvalidDateFormat = errors.New("date format must be YYYY-MM-DD")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrMalformedRecord   = errors.New("malformed record line")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Kind tells plain and recurring expenses apart
type Kind int

const (
	KindPlain Kind = iota
	KindRecurring
)

func (k Kind) String() string {
	switch k {
	case KindRecurring:
		return "recurring"
	default:
		return "plain"
	}
}

// Expense is a single dated, categorized amount. Frequency is only meaningful
// when Kind is KindRecurring.
type Expense struct {
	Kind      Kind
	Amount    float64
	Category  string
	Date      time.Time
	Frequency string
}

// NewExpense validates the raw fields and builds a plain expense
func NewExpense(amount float64, category, dateText string) (Expense, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Expense{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	date, err := ParseDate(dateText)
	if err != nil {
		return Expense{}, err
	}

	category = NormalizeCategory(category)
	if category == "" {
		return Expense{}, ErrEmptyCategory
	}

	return Expense{
		Kind:     KindPlain,
		Amount:   amount,
		Category: category,
		Date:     date,
	}, nil
}

// NewRecurringExpense validates like NewExpense and keeps frequency verbatim.
// Callers pass DefaultFrequency when the user gave none.
func NewRecurringExpense(amount float64, category, dateText, frequency string) (Expense, error) {
	e, err := NewExpense(amount, category, dateText)
	if err != nil {
		return Expense{}, err
	}
	e.Kind = KindRecurring
	e.Frequency = frequency
	return e, nil
}

// ParseDate accepts only YYYY-MM-DD strings that name a real calendar day
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseAmount converts user or file text into an amount. Non-numeric text is
// reported as ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// ValidateAmount rejects amounts that cannot be stored: non-positive,
// non-finite, or so small that the two-decimal record would read "0.00".
// Input paths call it before building an expense.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if strconv.FormatFloat(amount, 'f', 2, 64) == "0.00" {
		return fmt.Errorf("%w: %v rounds to 0.00", ErrInvalidAmount, amount)
	}
	return nil
}

// NormalizeCategory trims the label and title-cases its first letter.
// The rest of the label keeps its case.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + s[size:]
}

// DateString renders the date as YYYY-MM-DD
func (e Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// AmountString renders the amount with two decimals
func (e Expense) AmountString() string {
	return strconv.FormatFloat(e.Amount, 'f', 2, 64)
}

// MonthKey is the YYYY-MM bucket used by the month report
func (e Expense) MonthKey() string {
	return e.Date.Format("2006-01")
}

// IsRecurring reports whether the expense carries a frequency
func (e Expense) IsRecurring() bool {
	return e.Kind == KindRecurring
}

// Record encodes the expense as one line of the data file
func (e Expense) Record() string {
	base := e.DateString() + "," + e.Category + "," + e.AmountString()
	switch e.Kind {
	case KindRecurring:
		return base + "," + e.Frequency
	default:
		return base
	}
}

// Display renders a one-line human-readable description
func (e Expense) Display() string {
	base := fmt.Sprintf("Date: %s, Category: %s, Amount: $%s", e.DateString(), e.Category, e.AmountString())
	switch e.Kind {
	case KindRecurring:
		return fmt.Sprintf("%s (%s Recurring)", base, e.Frequency)
	default:
		return base
	}
}

// ParseRecord decodes one data-file line. Three fields give a plain expense,
// four a recurring one. Any other count yields ErrMalformedRecord.
// Only the line terminator is stripped; the frequency keeps its spacing.
func ParseRecord(line string) (Expense, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), ",")

	switch len(parts) {
	case 3, 4:
	default:
		return Expense{}, fmt.Errorf("%w: %d fields", ErrMalformedRecord, len(parts))
	}

	amount, err := ParseAmount(parts[2])
	if err != nil {
		return Expense{}, err
	}

	if len(parts) == 4 {
		return NewRecurringExpense(amount, parts[1], parts[0], parts[3])
	}
	return NewExpense(amount, parts[1], parts[0])
}
