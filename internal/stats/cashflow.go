// Package stats implements the aggregation and projection engine: cash-flow
// totals, category spending rankings and end-of-month balance projections
// over read-only ledger snapshots.
//
// Every computation here is pure and synchronous. Calculators may be
// constructed with a nil source; the missing dependency surfaces as an error
// on first use, never at construction time.
package stats

import (
	"context"
	"errors"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

var (
	ErrNoPaymentSource = errors.New("payment source not configured")
	ErrNoAccountSource = errors.New("account source not configured")
)

// CashFlow holds the income, spending and net revenue of a date window.
type CashFlow struct {
	Income   core.Money
	Spending core.Money
	Revenue  core.Money
}

// CashFlowCalculator totals income and expenses within a date window.
// Transfers move money between own accounts and are not cash flow, so they
// are excluded entirely.
type CashFlowCalculator struct {
	payments ledger.PaymentSource
}

func NewCashFlowCalculator(payments ledger.PaymentSource) *CashFlowCalculator {
	return &CashFlowCalculator{payments: payments}
}

// Compute returns the cash flow for payments dated within [start, end]
// inclusive. Revenue may be negative; an empty window yields zero totals.
func (c *CashFlowCalculator) Compute(ctx context.Context, start, end core.Date) (CashFlow, error) {
	if c.payments == nil {
		return CashFlow{}, ErrNoPaymentSource
	}

	payments, err := c.payments.Query(ctx, func(p core.Payment) bool {
		return p.Type != core.Transfer && p.Date.InRange(start, end)
	})
	if err != nil {
		return CashFlow{}, err
	}

	var flow CashFlow
	for _, p := range payments {
		switch p.Type {
		case core.Income:
			flow.Income = flow.Income.Add(p.Amount)
		case core.Expense:
			flow.Spending = flow.Spending.Add(p.Amount)
		}
	}
	flow.Revenue = flow.Income.Sub(flow.Spending)

	return flow, nil
}
