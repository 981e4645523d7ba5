package stats

import (
	"context"
	"testing"

	"cashbook/internal/core"
)

func TestProjectEndOfMonthSignsByType(t *testing.T) {
	account := core.Account{ID: 1, Name: "Checking", CurrentBalance: core.Money{Cents: 10000}}
	until := core.Today().EndOfMonth()
	store := paymentStore(
		core.Payment{ID: 1, Type: core.Expense, ChargedAccountID: 1, Amount: core.Money{Cents: 3000}, Date: core.Today()},
		core.Payment{ID: 2, Type: core.Income, TargetAccountID: 1, Amount: core.Money{Cents: 2000}, Date: core.Today()},
	)

	got, err := NewAccountBalanceProjector(store).ProjectEndOfMonth(context.Background(), account, until)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got.Cents != 9000 {
		t.Fatalf("got %d, want 9000", got.Cents)
	}
}

func TestProjectEndOfMonthTransferRoles(t *testing.T) {
	until := core.Today().EndOfMonth()
	store := paymentStore(
		core.Payment{ID: 1, Type: core.Transfer, ChargedAccountID: 1, TargetAccountID: 2, Amount: core.Money{Cents: 2500}, Date: core.Today()},
	)
	projector := NewAccountBalanceProjector(store)

	charged := core.Account{ID: 1, Name: "Checking", CurrentBalance: core.Money{Cents: 10000}}
	got, err := projector.ProjectEndOfMonth(context.Background(), charged, until)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got.Cents != 7500 {
		t.Fatalf("charged side: got %d, want 7500", got.Cents)
	}

	target := core.Account{ID: 2, Name: "Savings", CurrentBalance: core.Money{Cents: 10000}}
	got, err = projector.ProjectEndOfMonth(context.Background(), target, until)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got.Cents != 12500 {
		t.Fatalf("target side: got %d, want 12500", got.Cents)
	}
}

func TestProjectEndOfMonthIgnoresClearedAndLate(t *testing.T) {
	account := core.Account{ID: 1, Name: "Checking", CurrentBalance: core.Money{Cents: 10000}}
	until := core.NewDate(2026, 8, 31)
	store := paymentStore(
		// Cleared: already in the current balance.
		core.Payment{ID: 1, Type: core.Expense, ChargedAccountID: 1, Amount: core.Money{Cents: 1000}, Date: core.NewDate(2026, 8, 10), IsCleared: true},
		// Dated after the reference date.
		core.Payment{ID: 2, Type: core.Expense, ChargedAccountID: 1, Amount: core.Money{Cents: 2000}, Date: core.NewDate(2026, 9, 1)},
		// On the reference date: included.
		core.Payment{ID: 3, Type: core.Expense, ChargedAccountID: 1, Amount: core.Money{Cents: 4000}, Date: until},
		// Someone else's payment.
		core.Payment{ID: 4, Type: core.Expense, ChargedAccountID: 2, Amount: core.Money{Cents: 8000}, Date: core.NewDate(2026, 8, 10)},
	)

	got, err := NewAccountBalanceProjector(store).ProjectEndOfMonth(context.Background(), account, until)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got.Cents != 6000 {
		t.Fatalf("got %d, want 6000", got.Cents)
	}
}

func TestProjectEndOfMonthNilSource(t *testing.T) {
	projector := NewAccountBalanceProjector(nil)

	_, err := projector.ProjectEndOfMonth(context.Background(), core.Account{ID: 1}, core.Today())
	if err != ErrNoPaymentSource {
		t.Fatalf("expected ErrNoPaymentSource, got %v", err)
	}
}

func TestProjectBalanceDoesNotMutateAccount(t *testing.T) {
	account := core.Account{ID: 1, Name: "Checking", CurrentBalance: core.Money{Cents: 500}}
	pending := []core.Payment{
		{ID: 1, Type: core.Expense, ChargedAccountID: 1, Amount: core.Money{Cents: 100}, Date: core.Today()},
	}

	got := ProjectBalance(account, pending)

	if got.Cents != 400 {
		t.Fatalf("got %d, want 400", got.Cents)
	}
	if account.CurrentBalance.Cents != 500 {
		t.Fatalf("account mutated: %d", account.CurrentBalance.Cents)
	}
}
