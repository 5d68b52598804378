package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
	Savings Kind = "savings"
)

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

type (
	// Kind classifies a ledger entry. Direction is carried here, never by
	// the sign of the amount.
	Kind string

	// Frequency is the billing cadence of a subscription.
	Frequency string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// Entry is one recorded income, expense, or savings event. Immutable
	// once created; removed only by explicit deletion.
	Entry struct {
		ID          string          `json:"id"`
		Kind        Kind            `json:"kind"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}

	// Subscription is a recurring obligation with a billing frequency.
	Subscription struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Amount      decimal.Decimal `json:"amount"`
		Frequency   Frequency       `json:"frequency"`
		NextDueDate Date            `json:"nextDueDate"`
		Category    string          `json:"category"`
		Active      bool            `json:"active"`
	}

	// ScheduledIncomeRule emits one income entry per calendar month on its
	// day of month. DayOfMonth is restricted to 1-28 so the target day
	// exists in every month.
	ScheduledIncomeRule struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		DayOfMonth  int             `json:"dayOfMonth"`
		Active      bool            `json:"active"`
	}

	// SavingsGoal tracks progress toward a target amount. CurrentAmount is
	// user-maintained and is not reconciled against savings-kind entries.
	SavingsGoal struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		TargetAmount  decimal.Decimal `json:"targetAmount"`
		CurrentAmount decimal.Decimal `json:"currentAmount"`
		TargetDate    Date            `json:"targetDate"`
	}
)

var (
	ErrInvalidKind      = errors.New("invalid entry kind")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDay       = errors.New("day of month must be between 1 and 28")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// MarshalJSON encodes the date as an ISO calendar date (YYYY-MM-DD).
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON accepts an ISO calendar date string. Empty and null are
// treated as the zero date so optional dates round-trip.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense, Savings:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (e Entry) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	// Amounts are stored as non-negative magnitudes.
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (s Subscription) Validate() error {
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if !s.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := s.Frequency.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (r ScheduledIncomeRule) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 28 {
		return ErrInvalidDay
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidAmount
	}
	// Overshoot past the target is tolerated; only negative balances are
	// rejected.
	if g.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
