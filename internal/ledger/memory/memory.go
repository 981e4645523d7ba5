// Package memory provides an in-memory implementation of the ledger ports,
// used as the default backend and as a test double.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

type Store struct {
	mu         sync.Mutex
	payments   []core.Payment
	accounts   []core.Account
	categories []core.Category
	nextID     int64
}

func New() *Store {
	return &Store{nextID: 1}
}

// Seed replaces the store contents wholesale. Intended for tests and for
// bootstrapping the memory backend from fixtures.
func (s *Store) Seed(accounts []core.Account, categories []core.Category, payments []core.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]core.Account(nil), accounts...)
	s.categories = append([]core.Category(nil), categories...)
	s.payments = append([]core.Payment(nil), payments...)
	for _, p := range payments {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	for _, a := range accounts {
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
}

// Query implements ledger.PaymentSource.
func (s *Store) Query(_ context.Context, filter ledger.PaymentFilter) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// All implements ledger.AccountSource.
func (s *Store) All(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}

// List implements ledger.CategorySource.
func (s *Store) List(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...), nil
}

// SavePayment implements ledger.PaymentWriter.
func (s *Store) SavePayment(_ context.Context, p core.Payment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	for i, existing := range s.payments {
		if existing.ID == p.ID {
			s.payments[i] = p
			return p.ID, nil
		}
	}
	s.payments = append(s.payments, p)
	return p.ID, nil
}

// DeletePayment implements ledger.PaymentWriter.
func (s *Store) DeletePayment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.payments {
		if p.ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("payment %d: %w", id, ledger.ErrPaymentNotFound)
}

// SaveAccount implements ledger.AccountWriter.
func (s *Store) SaveAccount(_ context.Context, a core.Account) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.EndMonthWarning == "" {
		a.EndMonthWarning = core.WarningNone
	}
	if a.ID == 0 {
		a.ID = s.nextID
		s.nextID++
	}
	for i, existing := range s.accounts {
		if existing.ID == a.ID {
			s.accounts[i] = a
			return a.ID, nil
		}
	}
	s.accounts = append(s.accounts, a)
	return a.ID, nil
}

// SaveWarning implements ledger.WarningWriter.
func (s *Store) SaveWarning(_ context.Context, accountID int64, warning string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].EndMonthWarning = warning
			return nil
		}
	}
	return fmt.Errorf("account %d: %w", accountID, ledger.ErrAccountNotFound)
}
