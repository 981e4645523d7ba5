package stats

import (
	"context"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

// AccountBalanceProjector projects a single account's balance forward to a
// reference date. Unlike EndOfMonthProjector it honors the payment type and
// only considers the account's own uncleared payments dated on or before the
// reference date; cleared payments are already reflected in the current
// balance.
type AccountBalanceProjector struct {
	payments ledger.PaymentSource
}

func NewAccountBalanceProjector(payments ledger.PaymentSource) *AccountBalanceProjector {
	return &AccountBalanceProjector{payments: payments}
}

// ProjectEndOfMonth returns the account balance expected once every pending
// payment up to until has settled. The account is not mutated.
func (b *AccountBalanceProjector) ProjectEndOfMonth(ctx context.Context, account core.Account, until core.Date) (core.Money, error) {
	if b.payments == nil {
		return core.Money{}, ErrNoPaymentSource
	}

	pending, err := b.payments.Query(ctx, func(p core.Payment) bool {
		return !p.IsCleared &&
			p.Date.OnOrBefore(until) &&
			(p.ChargedAccountID == account.ID || p.TargetAccountID == account.ID)
	})
	if err != nil {
		return core.Money{}, err
	}

	return ProjectBalance(account, pending), nil
}

// ProjectBalance applies the pending payments to the account's current
// balance, signing each by its type and by which side of the payment the
// account is on.
func ProjectBalance(account core.Account, pending []core.Payment) core.Money {
	balance := account.CurrentBalance
	for _, p := range pending {
		switch p.Type {
		case core.Expense:
			balance = balance.Sub(p.Amount)
		case core.Income:
			balance = balance.Add(p.Amount)
		case core.Transfer:
			if p.ChargedAccountID == account.ID {
				balance = balance.Sub(p.Amount)
			} else {
				balance = balance.Add(p.Amount)
			}
		}
	}
	return balance
}
