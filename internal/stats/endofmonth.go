package stats

import (
	"context"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

// EndOfMonthProjector flags accounts whose projected balance goes negative.
//
// This projector and AccountBalanceProjector both "project a balance
// forward" but deliberately disagree: this one applies every known payment
// regardless of date, cleared status or payment type, signing purely by
// whether the account is the charged or the target side. The divergence is
// inherited behavior and is kept as two named strategies on purpose; see
// DESIGN.md before unifying them.
type EndOfMonthProjector struct {
	payments ledger.PaymentSource
	accounts ledger.AccountSource
}

func NewEndOfMonthProjector(payments ledger.PaymentSource, accounts ledger.AccountSource) *EndOfMonthProjector {
	return &EndOfMonthProjector{payments: payments, accounts: accounts}
}

// Project computes the warning for each account without mutating anything.
// Every account gets an entry: core.WarningNegative when the projected
// balance drops below zero, core.WarningNone otherwise.
func Project(accounts []core.Account, payments []core.Payment) map[int64]string {
	// Pre-bucket payments per account so the pass over accounts stays
	// linear even for large ledgers.
	charged := make(map[int64]int64)
	target := make(map[int64]int64)
	for _, p := range payments {
		charged[p.ChargedAccountID] += p.Amount.Cents
		target[p.TargetAccountID] += p.Amount.Cents
	}

	warnings := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		projected := a.CurrentBalance.Cents - charged[a.ID] + target[a.ID]
		if projected < 0 {
			warnings[a.ID] = core.WarningNegative
		} else {
			warnings[a.ID] = core.WarningNone
		}
	}
	return warnings
}

// Assign queries both sources, projects every account and writes the warning
// onto the account values it returns. The caller owns persisting the result.
func (e *EndOfMonthProjector) Assign(ctx context.Context) ([]core.Account, error) {
	if e.payments == nil {
		return nil, ErrNoPaymentSource
	}
	if e.accounts == nil {
		return nil, ErrNoAccountSource
	}

	accounts, err := e.accounts.All(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := e.payments.Query(ctx, nil)
	if err != nil {
		return nil, err
	}

	warnings := Project(accounts, payments)
	for i := range accounts {
		accounts[i].EndMonthWarning = warnings[accounts[i].ID]
	}
	return accounts, nil
}
