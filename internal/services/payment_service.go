package services

import (
	"context"
	"fmt"
	"log/slog"

	"cashbook/internal/amqp"
	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

// ChangePublisher notifies interested parties that the ledger changed.
// *amqp.Client satisfies this.
type ChangePublisher interface {
	PublishLedgerChanged(ctx context.Context, paymentID int64, action string) error
}

// PaymentService orchestrates payment writes: persist first, then notify.
type PaymentService struct {
	writer    ledger.PaymentWriter
	publisher ChangePublisher
}

func NewPaymentService(writer ledger.PaymentWriter, publisher ChangePublisher) *PaymentService {
	return &PaymentService{
		writer:    writer,
		publisher: publisher,
	}
}

// CreatePayment validates and saves a payment, then publishes a change
// notification. The notification is best effort: a messaging failure is
// logged but never fails a write that already succeeded.
func (s *PaymentService) CreatePayment(ctx context.Context, p core.Payment) (int64, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("payment writer not configured")
	}
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("validate payment: %w", err)
	}

	id, err := s.writer.SavePayment(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("save payment: %w", err)
	}

	s.publishChange(ctx, id, amqp.ActionSaved)
	return id, nil
}

// DeletePayment removes a payment and publishes a change notification.
func (s *PaymentService) DeletePayment(ctx context.Context, id int64) error {
	if s.writer == nil {
		return fmt.Errorf("payment writer not configured")
	}
	if err := s.writer.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	s.publishChange(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *PaymentService) publishChange(ctx context.Context, id int64, action string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No change publisher configured, skipping notification",
			"payment_id", id, "action", action)
		return
	}
	if err := s.publisher.PublishLedgerChanged(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"payment_id", id, "action", action, "error", err)
	}
}
