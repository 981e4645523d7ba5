package stats

import (
	"context"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

// maxSpreadItems is the number of categories reported individually before
// the rest collapses into the overflow bucket.
const maxSpreadItems = 6

// OverflowLabel names the synthetic entry that aggregates every category
// ranked below the display limit.
const OverflowLabel = "Other"

// SpreadEntry is one slice of the category spending ranking.
type SpreadEntry struct {
	Label string
	Value core.Money
}

// CategorySpreadingCalculator ranks categories by net spending within a date
// window. Net spend is the category's expenses minus its income; categories
// that net to zero or to income are not spending and are dropped.
type CategorySpreadingCalculator struct {
	payments ledger.PaymentSource
}

func NewCategorySpreadingCalculator(payments ledger.PaymentSource) *CategorySpreadingCalculator {
	return &CategorySpreadingCalculator{payments: payments}
}

// Compute returns at most maxSpreadItems+1 entries ordered descending by net
// spend: the top categories individually, then one "Other" entry summing the
// remainder when more categories qualify than fit the limit.
func (c *CategorySpreadingCalculator) Compute(ctx context.Context, start, end core.Date) ([]SpreadEntry, error) {
	if c.payments == nil {
		return nil, ErrNoPaymentSource
	}

	payments, err := c.payments.Query(ctx, func(p core.Payment) bool {
		return p.Type != core.Transfer && p.Date.InRange(start, end)
	})
	if err != nil {
		return nil, err
	}

	// Group net spend by category, remembering first-seen order so that the
	// stable sort below gives deterministic tie-breaks.
	netByCategory := make(map[int64]int64)
	nameByCategory := make(map[int64]string)
	var order []int64
	for _, p := range payments {
		if _, seen := netByCategory[p.CategoryID]; !seen {
			order = append(order, p.CategoryID)
			nameByCategory[p.CategoryID] = p.CategoryName
		}
		switch p.Type {
		case core.Expense:
			netByCategory[p.CategoryID] += p.Amount.Cents
		case core.Income:
			netByCategory[p.CategoryID] -= p.Amount.Cents
		}
	}

	items := make([]ranked, 0, len(order))
	for _, id := range order {
		if net := netByCategory[id]; net > 0 {
			items = append(items, ranked{label: nameByCategory[id], value: net})
		}
	}

	items = rankDescending(items, maxSpreadItems, OverflowLabel)

	entries := make([]SpreadEntry, len(items))
	for i, item := range items {
		entries[i] = SpreadEntry{Label: item.label, Value: core.Money{Cents: item.value}}
	}
	return entries, nil
}
