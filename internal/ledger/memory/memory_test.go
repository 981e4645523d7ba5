package memory

import (
	"context"
	"testing"

	"cashbook/internal/core"
)

func TestSavePaymentAssignsIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.SavePayment(ctx, core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Expense, ChargedAccountID: 1,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	id2, err := s.SavePayment(ctx, core.Payment{
		Date: core.NewDate(2026, 8, 2), Amount: core.Money{Cents: 200},
		Type: core.Income, TargetAccountID: 1,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	all, err := s.Query(ctx, nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(all))
	}
}

func TestSavePaymentRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.SavePayment(context.Background(), core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Expense, // no charged account
	})
	if err != core.ErrMissingChargedAccount {
		t.Fatalf("expected ErrMissingChargedAccount, got %v", err)
	}
}

func TestQueryAppliesFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed(nil, nil, []core.Payment{
		{ID: 1, Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100}, Type: core.Expense, ChargedAccountID: 1},
		{ID: 2, Date: core.NewDate(2026, 8, 2), Amount: core.Money{Cents: 200}, Type: core.Expense, ChargedAccountID: 2},
	})

	got, err := s.Query(ctx, func(p core.Payment) bool { return p.ChargedAccountID == 2 })
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only payment 2, got %+v", got)
	}
}

func TestSaveWarning(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed([]core.Account{{ID: 7, Name: "Checking"}}, nil, nil)

	if err := s.SaveWarning(ctx, 7, core.WarningNegative); err != nil {
		t.Fatalf("save warning: %v", err)
	}
	accounts, _ := s.All(ctx)
	if accounts[0].EndMonthWarning != core.WarningNegative {
		t.Fatalf("warning not applied: %q", accounts[0].EndMonthWarning)
	}

	if err := s.SaveWarning(ctx, 99, core.WarningNone); err == nil {
		t.Fatal("expected error for unknown account")
	}
}

func TestDeletePayment(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed(nil, nil, []core.Payment{
		{ID: 1, Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100}, Type: core.Expense, ChargedAccountID: 1},
	})

	if err := s.DeletePayment(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeletePayment(ctx, 1); err == nil {
		t.Fatal("expected error deleting twice")
	}
}
