package core

import (
	"testing"
	"time"
)

func TestPaymentTypeDefaultIsExpense(t *testing.T) {
	var p Payment
	if p.Type != Expense {
		t.Fatalf("zero-value payment type should be expense, got %v", p.Type)
	}
	if p.Type.String() != "expense" {
		t.Fatalf("expected %q, got %q", "expense", p.Type.String())
	}
}

func TestParsePaymentType(t *testing.T) {
	cases := []struct {
		in  string
		out PaymentType
		ok  bool
	}{
		{"expense", Expense, true},
		{"Income", Income, true},
		{" transfer ", Transfer, true},
		{"", Expense, true}, // unset resolves to expense
		{"refund", Expense, false},
	}
	for i, tc := range cases {
		got, err := ParsePaymentType(tc.in)
		if tc.ok && (err != nil || got != tc.out) {
			t.Fatalf("case %d: got %v (err=%v), want %v", i, got, err, tc.out)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestDateEndOfMonth(t *testing.T) {
	cases := []struct {
		in   Date
		want Date
	}{
		{NewDate(2026, 1, 15), NewDate(2026, 1, 31)},
		{NewDate(2026, 2, 1), NewDate(2026, 2, 28)},
		{NewDate(2024, 2, 10), NewDate(2024, 2, 29)}, // leap year
		{NewDate(2026, 12, 31), NewDate(2026, 12, 31)},
	}
	for i, tc := range cases {
		if got := tc.in.EndOfMonth(); !got.Equal(tc.want.Time) {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestDateInRange(t *testing.T) {
	start := NewDate(2026, 3, 1)
	end := NewDate(2026, 3, 31)

	if !start.InRange(start, end) || !end.InRange(start, end) {
		t.Fatal("range bounds must be inclusive")
	}
	if NewDate(2026, 2, 28).InRange(start, end) {
		t.Fatal("date before start should be out of range")
	}
	if NewDate(2026, 4, 1).InRange(start, end) {
		t.Fatal("date after end should be out of range")
	}
}

func TestPaymentValidate(t *testing.T) {
	good := []Payment{
		{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 100}, Type: Expense, ChargedAccountID: 1},
		{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 100}, Type: Income, TargetAccountID: 2},
		{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 100}, Type: Transfer, ChargedAccountID: 1, TargetAccountID: 2},
	}
	for i, p := range good {
		if err := p.Validate(); err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
	}

	bads := []struct {
		p    Payment
		want error
	}{
		{Payment{Amount: Money{Cents: 1}, Type: Expense, ChargedAccountID: 1}, ErrInvalidDate},
		{Payment{Date: NewDate(2026, 1, 1), Amount: Money{Cents: -1}, Type: Expense, ChargedAccountID: 1}, ErrInvalidAmount},
		{Payment{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 1}, Type: Expense}, ErrMissingChargedAccount},
		{Payment{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 1}, Type: Income}, ErrMissingTargetAccount},
		{Payment{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 1}, Type: Transfer, ChargedAccountID: 1}, ErrMissingTargetAccount},
		{Payment{Date: NewDate(2026, 1, 1), Amount: Money{Cents: 1}, Type: Transfer, ChargedAccountID: 1, TargetAccountID: 1}, ErrSameAccountTransfer},
	}
	for i, tc := range bads {
		if err := tc.p.Validate(); err != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	if err := (Account{Name: "Checking"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Account{Name: "  "}).Validate(); err != ErrEmptyAccountName {
		t.Fatal("expected ErrEmptyAccountName for blank name")
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2026, 8, 31).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatal("expected error for zero date")
	}
}
