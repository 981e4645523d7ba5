package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Expense is the zero value on purpose: a payment whose type was never
	// set behaves as an expense everywhere in the app.
	Expense PaymentType = iota
	Income
	Transfer
)

type (
	// PaymentType tags a payment as expense, income or transfer.
	PaymentType int

	// Date is a calendar day. The time portion is always midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Payment is a single ledger entry. Amount is a magnitude; the sign a
	// payment contributes to a balance is derived from Type and from which
	// account side (charged or target) is being looked at.
	Payment struct {
		ID               int64
		Amount           Money
		Date             Date
		Type             PaymentType
		ChargedAccountID int64
		TargetAccountID  int64
		CategoryID       int64
		CategoryName     string
		IsCleared        bool
		Note             string
	}

	Account struct {
		ID             int64
		Name           string
		CurrentBalance Money
		// EndMonthWarning is derived state written by the end-of-month
		// projection. Valid values are WarningNegative and WarningNone.
		EndMonthWarning string
	}

	Category struct {
		ID   int64
		Name string
	}
)

// Warning values written onto accounts by the end-of-month projection.
/// WarningNone is a single blank, not the empty string: UI bindings need a
// non-empty placeholder and persistence must round-trip it unchanged.
const (
	WarningNegative = "Negative at end of month"
	WarningNone     = " "
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidPaymentType    = errors.New("invalid payment type")
	ErrMissingChargedAccount = errors.New("missing charged account")
	ErrMissingTargetAccount  = errors.New("missing target account")
	ErrSameAccountTransfer   = errors.New("transfer must reference two distinct accounts")
	ErrEmptyAccountName      = errors.New("empty account name")
	ErrEmptyCategoryName     = errors.New("empty category name")
)

func (t PaymentType) String() string {
	switch t {
	case Income:
		return "income"
	case Transfer:
		return "transfer"
	default:
		return "expense"
	}
}

// ParsePaymentType maps the wire name to a PaymentType. The empty string is
// the unset case and resolves to Expense.
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense":
		return Expense, nil
	case "income":
		return Income, nil
	case "transfer":
		return Transfer, nil
	default:
		return Expense, ErrInvalidPaymentType
	}
}

func (t PaymentType) Valid() bool {
	return t == Expense || t == Income || t == Transfer
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date {
	firstOfNext := time.Date(d.Year(), d.Time.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Date{Time: firstOfNext.AddDate(0, 0, -1)}
}

// InRange reports whether the date falls within [start, end] inclusive.
func (d Date) InRange(start, end Date) bool {
	return !d.Time.Before(start.Time) && !d.Time.After(end.Time)
}

// OnOrBefore reports whether the date is not after other.
func (d Date) OnOrBefore(other Date) bool {
	return !d.Time.After(other.Time)
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// Validate rejects negative magnitudes. The sign of a payment is never
// stored on the amount.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks that exactly the accounts implied by the payment type are
// referenced and that the amount and date are usable.
func (p Payment) Validate() error {
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return ErrInvalidPaymentType
	}
	switch p.Type {
	case Expense:
		if p.ChargedAccountID == 0 {
			return ErrMissingChargedAccount
		}
	case Income:
		if p.TargetAccountID == 0 {
			return ErrMissingTargetAccount
		}
	case Transfer:
		if p.ChargedAccountID == 0 {
			return ErrMissingChargedAccount
		}
		if p.TargetAccountID == 0 {
			return ErrMissingTargetAccount
		}
		if p.ChargedAccountID == p.TargetAccountID {
			return ErrSameAccountTransfer
		}
	}
	if len(p.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyAccountName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
