package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Household is the ownership boundary for all budget data.
	Household struct {
		ID   string
		Name string
	}

	// Category is a top-level budget grouping for a given month.
	// LineItems are assembled by the store layer; aggregation never
	// fetches them separately.
	Category struct {
		ID          string
		HouseholdID string
		Name        string
		Month       int
		Year        int
		LineItems   []LineItem
	}

	// LineItem is a planned sub-allocation within a category.
	LineItem struct {
		ID         string
		CategoryID string
		Name       string
		Planned    Money
		Month      int
		Year       int
		CreatedBy  string
	}

	// Income is a single income entry, owned by the user who created it.
	Income struct {
		ID          string
		HouseholdID string
		Name        string
		Amount      Money
		Month       int
		Year        int
		CreatedBy   string
	}

	// Transaction is a recorded expense. LineItemID is empty for
	// uncategorized transactions.
	Transaction struct {
		ID          string
		HouseholdID string
		LineItemID  string
		Amount      Money
		Description string
		Date        Date
		Month       int
		Year        int
		CreatedBy   string
	}

	// TransactionDetail is a transaction with its line-item and
	// category names resolved by the store. Names stay empty when the
	// reference is missing.
	TransactionDetail struct {
		Transaction
		LineItemName string
		CategoryName string
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrEmptyName       = errors.New("name is required")
	ErrMissingDate     = errors.New("transaction date is required")
	ErrMissingLineItem = errors.New("a budget line item must be selected")
)

// NewDate creates a Date at day granularity in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DayKey returns the calendar-date portion (YYYY-MM-DD) used for
// grouping. The zero date has no key.
func (d Date) DayKey() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the fields required to create a category.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks the fields required to create or update a line item.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Name) == "" {
		return ErrEmptyName
	}
	if err := li.Planned.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the fields required to create an income entry.
func (in Income) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the fields required to create or update a
// transaction. Every saved transaction must reference a line item and
// carry a date; the description stays optional.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.LineItemID == "" {
		return ErrMissingLineItem
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
