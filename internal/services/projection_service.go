package services

import (
	"context"
	"fmt"
	"log/slog"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
	"cashbook/internal/stats"
)

// ProjectionService recomputes end-of-month warnings across all accounts
// and persists the ones that changed.
type ProjectionService struct {
	payments ledger.PaymentSource
	accounts ledger.AccountSource
	warnings ledger.WarningWriter
}

func NewProjectionService(payments ledger.PaymentSource, accounts ledger.AccountSource, warnings ledger.WarningWriter) *ProjectionService {
	return &ProjectionService{
		payments: payments,
		accounts: accounts,
		warnings: warnings,
	}
}

// RecomputeWarnings projects every account, persists changed warnings and
// returns the accounts with their fresh warning state.
func (s *ProjectionService) RecomputeWarnings(ctx context.Context) ([]core.Account, error) {
	if err := s.validateSources(); err != nil {
		return nil, err
	}

	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	payments, err := s.payments.Query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	computed := stats.Project(accounts, payments)

	changed := 0
	for i := range accounts {
		warning := computed[accounts[i].ID]
		if accounts[i].EndMonthWarning == warning {
			continue
		}
		if err := s.warnings.SaveWarning(ctx, accounts[i].ID, warning); err != nil {
			return nil, fmt.Errorf("save warning for account %d: %w", accounts[i].ID, err)
		}
		accounts[i].EndMonthWarning = warning
		changed++
	}

	slog.InfoContext(ctx, "End-of-month warnings recomputed",
		"accounts", len(accounts),
		"payments", len(payments),
		"changed", changed)

	return accounts, nil
}

// Missing sources surface on first use, never at construction, matching the
// calculator contract.
func (s *ProjectionService) validateSources() error {
	if s.payments == nil {
		return stats.ErrNoPaymentSource
	}
	if s.accounts == nil {
		return stats.ErrNoAccountSource
	}
	if s.warnings == nil {
		return fmt.Errorf("warning writer not configured")
	}
	return nil
}
