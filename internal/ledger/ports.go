// Package ledger defines the ports between the aggregation engine and
// whatever repository layer materializes payments, accounts and categories.
package ledger

import (
	"context"
	"errors"

	"cashbook/internal/core"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrAccountNotFound = errors.New("account not found")
)

// PaymentFilter is a caller-supplied predicate applied while querying
// payments. A nil filter selects everything.
type PaymentFilter func(core.Payment) bool

// Ports for outbound adapters.
type (
	PaymentSource interface {
		// Query returns all payments matching the filter.
		Query(ctx context.Context, filter PaymentFilter) ([]core.Payment, error)
	}

	AccountSource interface {
		// All returns every account with its current state.
		All(ctx context.Context) ([]core.Account, error)
	}

	CategorySource interface {
		List(ctx context.Context) ([]core.Category, error)
	}

	PaymentWriter interface {
		// SavePayment persists the payment and returns its assigned id.
		SavePayment(ctx context.Context, p core.Payment) (int64, error)
		DeletePayment(ctx context.Context, id int64) error
	}

	AccountWriter interface {
		SaveAccount(ctx context.Context, a core.Account) (int64, error)
	}

	// WarningWriter persists the derived end-of-month warning for an account.
	WarningWriter interface {
		SaveWarning(ctx context.Context, accountID int64, warning string) error
	}
)
