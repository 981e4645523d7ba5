package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cashbook/internal/amqp"
	"cashbook/internal/core"
)

// Recomputer recalculates end of month warnings across all accounts.
type Recomputer interface {
	RecomputeWarnings(ctx context.Context) ([]core.Account, error)
}

// ProjectionWorker keeps account warnings up to date. It reacts to
// ledger change messages and also recomputes on a fixed interval so
// warnings stay correct when messages are lost.
type ProjectionWorker struct {
	projections Recomputer
}

func NewProjectionWorker(projections Recomputer) *ProjectionWorker {
	return &ProjectionWorker{projections: projections}
}

// HandleLedgerChange processes a single ledger change message from AMQP.
func (w *ProjectionWorker) HandleLedgerChange(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	slog.InfoContext(ctx, "Processing ledger change",
		"payment_id", msg.PaymentID,
		"action", msg.Action)

	accounts, err := w.projections.RecomputeWarnings(ctx)
	if err != nil {
		return fmt.Errorf("recompute warnings: %w", err)
	}

	slog.InfoContext(ctx, "Warnings recomputed after ledger change",
		"payment_id", msg.PaymentID,
		"accounts", len(accounts))

	return nil
}

// StartupCheck recomputes warnings once at worker startup. This is
// useful to recover from missed messages or worker downtime.
func (w *ProjectionWorker) StartupCheck(ctx context.Context) error {
	accounts, err := w.projections.RecomputeWarnings(ctx)
	if err != nil {
		return fmt.Errorf("startup recompute: %w", err)
	}

	negative := 0
	for _, a := range accounts {
		if a.EndMonthWarning == core.WarningNegative {
			negative++
		}
	}

	slog.InfoContext(ctx, "Startup recompute completed",
		"accounts", len(accounts),
		"negative", negative)

	return nil
}

// RunPeriodic recomputes warnings on a fixed interval until the
// context is cancelled. Month boundaries shift the projection window
// even when no payment changes, so a timer is required.
func (w *ProjectionWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.projections.RecomputeWarnings(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic recompute failed", "error", err)
				continue
			}
			slog.DebugContext(ctx, "Periodic recompute completed")
		}
	}
}
