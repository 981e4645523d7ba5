package services

import (
	"context"
	"errors"
	"testing"

	"cashbook/internal/core"
	"cashbook/internal/ledger/memory"
)

type recordingPublisher struct {
	published []string
	fail      bool
}

func (p *recordingPublisher) PublishLedgerChanged(_ context.Context, _ int64, action string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, action)
	return nil
}

func TestCreatePaymentPublishesChange(t *testing.T) {
	store := memory.New()
	pub := &recordingPublisher{}
	svc := NewPaymentService(store, pub)

	id, err := svc.CreatePayment(context.Background(), core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Expense, ChargedAccountID: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}
	if len(pub.published) != 1 || pub.published[0] != "saved" {
		t.Fatalf("expected one saved notification, got %v", pub.published)
	}
}

func TestCreatePaymentSurvivesPublishFailure(t *testing.T) {
	store := memory.New()
	svc := NewPaymentService(store, &recordingPublisher{fail: true})

	id, err := svc.CreatePayment(context.Background(), core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Expense, ChargedAccountID: 1,
	})
	if err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}

	payments, _ := store.Query(context.Background(), nil)
	if len(payments) != 1 || payments[0].ID != id {
		t.Fatalf("payment not persisted: %+v", payments)
	}
}

func TestCreatePaymentNilPublisher(t *testing.T) {
	svc := NewPaymentService(memory.New(), nil)

	if _, err := svc.CreatePayment(context.Background(), core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Income, TargetAccountID: 1,
	}); err != nil {
		t.Fatalf("nil publisher must be tolerated: %v", err)
	}
}

func TestCreatePaymentRejectsInvalid(t *testing.T) {
	svc := NewPaymentService(memory.New(), &recordingPublisher{})

	_, err := svc.CreatePayment(context.Background(), core.Payment{
		Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100},
		Type: core.Transfer, ChargedAccountID: 1, TargetAccountID: 1,
	})
	if !errors.Is(err, core.ErrSameAccountTransfer) {
		t.Fatalf("expected ErrSameAccountTransfer, got %v", err)
	}
}

func TestDeletePayment(t *testing.T) {
	store := memory.New()
	store.Seed(nil, nil, []core.Payment{
		{ID: 4, Date: core.NewDate(2026, 8, 1), Amount: core.Money{Cents: 100}, Type: core.Expense, ChargedAccountID: 1},
	})
	pub := &recordingPublisher{}
	svc := NewPaymentService(store, pub)

	if err := svc.DeletePayment(context.Background(), 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != "deleted" {
		t.Fatalf("expected one deleted notification, got %v", pub.published)
	}

	if err := svc.DeletePayment(context.Background(), 4); err == nil {
		t.Fatal("expected error for missing payment")
	}
}
