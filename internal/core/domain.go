package core

import (
	"errors"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the closed transaction type enumeration.
	Kind string

	// Date is a calendar day in canonical YYYY-MM-DD form. Keeping the
	// canonical string (rather than time.Time) is what makes month
	// filtering a plain prefix match.
	Date string

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. Fields are
	// immutable after creation; Color is resolved once from the category
	// table and stored redundantly, so later palette changes do not
	// restyle existing records.
	Transaction struct {
		ID       int64  `json:"id"`
		Amount   Money  `json:"amount_cents"`
		Kind     Kind   `json:"type"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
		Color    string `json:"color"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// Today returns the current calendar day in canonical form.
func Today() Date {
	return Date(time.Now().Format(dateLayout))
}

// NewDate builds a canonical Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(dateLayout))
}

func (d Date) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Time parses the date; malformed values yield the zero time.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrInvalidKind
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// New assembles a transaction from validated parts. The id comes from the
// millisecond clock — unique enough within a session, never re-verified.
// An empty date defaults to today. Category is stored as given: unknown
// labels are legal and only affect the display color fallback.
func New(amount Money, kind Kind, category string, date Date) Transaction {
	if date == "" {
		date = Today()
	}
	return Transaction{
		ID:       time.Now().UnixMilli(),
		Amount:   amount,
		Kind:     kind,
		Category: category,
		Date:     date,
		Color:    ColorFor(category),
	}
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}
