package backend

import (
	"context"

	"cashbook/internal/ledger"
)

// Backend bundles every ledger port a single store must provide.
type Backend interface {
	ledger.PaymentSource
	ledger.AccountSource
	ledger.CategorySource
	ledger.PaymentWriter
	ledger.AccountWriter
	ledger.WarningWriter
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the backend instance, the optional change publisher
// and a cleanup function.
type Result struct {
	Backend   Backend
	Publisher ChangePublisher
	Cleanup   CleanupFunc
}

// ChangePublisher emits ledger change notifications. Nil when the
// backend runs without AMQP.
type ChangePublisher interface {
	PublishLedgerChanged(ctx context.Context, paymentID int64, action string) error
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Type represents the kind of backing store.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
