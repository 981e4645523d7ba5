package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"cashbook/internal/amqp"
	"cashbook/internal/core"
)

type fakeRecomputer struct {
	calls    int
	accounts []core.Account
	err      error
}

func (f *fakeRecomputer) RecomputeWarnings(ctx context.Context) ([]core.Account, error) {
	f.calls++
	return f.accounts, f.err
}

func TestHandleLedgerChangeRecomputes(t *testing.T) {
	rec := &fakeRecomputer{accounts: []core.Account{{ID: 1, Name: "Checking"}}}
	w := NewProjectionWorker(rec)

	msg := amqp.NewLedgerChangedMessage(42, amqp.ActionSaved)
	if err := w.HandleLedgerChange(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerChange: %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("recompute calls = %d, want 1", rec.calls)
	}
}

func TestHandleLedgerChangePropagatesError(t *testing.T) {
	rec := &fakeRecomputer{err: errors.New("storage down")}
	w := NewProjectionWorker(rec)

	msg := amqp.NewLedgerChangedMessage(42, amqp.ActionDeleted)
	if err := w.HandleLedgerChange(context.Background(), msg); err == nil {
		t.Fatal("expected error from failed recompute")
	}
}

func TestStartupCheck(t *testing.T) {
	rec := &fakeRecomputer{accounts: []core.Account{
		{ID: 1, Name: "Checking", EndMonthWarning: core.WarningNegative},
		{ID: 2, Name: "Savings", EndMonthWarning: core.WarningNone},
	}}
	w := NewProjectionWorker(rec)

	if err := w.StartupCheck(context.Background()); err != nil {
		t.Fatalf("StartupCheck: %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("recompute calls = %d, want 1", rec.calls)
	}
}

func TestRunPeriodicStopsOnCancel(t *testing.T) {
	rec := &fakeRecomputer{}
	w := NewProjectionWorker(rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.RunPeriodic(ctx, 5*time.Millisecond)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RunPeriodic returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RunPeriodic did not stop after cancel")
	}

	if rec.calls == 0 {
		t.Fatal("expected at least one periodic recompute")
	}
}
