package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cashbook/internal/core"
	applog "cashbook/internal/log"
	"cashbook/internal/stats"
)

type accountRequest struct {
	Name                string `json:"name"`
	CurrentBalanceCents int64  `json:"current_balance_cents"`
}

type accountResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	CurrentBalanceCents int64  `json:"current_balance_cents"`
	EndMonthWarning     string `json:"end_month_warning"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{
		ID:                  a.ID,
		Name:                a.Name,
		CurrentBalanceCents: a.CurrentBalance.Cents,
		EndMonthWarning:     a.EndMonthWarning,
	}
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.All(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Account query failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := core.Account{
		Name:           sanitizeInput(req.Name),
		CurrentBalance: core.Money{Cents: req.CurrentBalanceCents},
	}
	if err := a.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.SaveAccount(r.Context(), a)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account save failed",
			applog.FieldError, err,
			"name", a.Name)
		respondError(w, http.StatusInternalServerError, "failed to save account")
		return
	}

	a.ID = id
	a.EndMonthWarning = core.WarningNone
	respondJSON(w, http.StatusCreated, toAccountResponse(a))
}

type projectionResponse struct {
	AccountID             int64  `json:"account_id"`
	Until                 string `json:"until"`
	ProjectedBalanceCents int64  `json:"projected_balance_cents"`
}

// handleAccountProjection projects one account's balance forward over
// its uncleared payments, by default to the end of the current month.
func (s *Server) handleAccountProjection(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	until := core.Today().EndOfMonth()
	if raw := strings.TrimSpace(r.URL.Query().Get("until")); raw != "" {
		until, err = parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid until date")
			return
		}
	}

	account, err := s.findAccount(r, id)
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}

	balance, err := s.balance.ProjectEndOfMonth(r.Context(), account, until)
	if err != nil {
		slog.ErrorContext(r.Context(), "Balance projection failed",
			applog.FieldError, err,
			applog.FieldAccountID, id)
		respondError(w, http.StatusInternalServerError, "failed to project balance")
		return
	}

	respondJSON(w, http.StatusOK, projectionResponse{
		AccountID:             id,
		Until:                 until.Format("2006-01-02"),
		ProjectedBalanceCents: balance.Cents,
	})
}

func (s *Server) findAccount(r *http.Request, id int64) (core.Account, error) {
	accounts, err := s.store.All(r.Context())
	if err != nil {
		return core.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Account{}, errors.New("account not found")
}

// handleEndOfMonthProjection recomputes and persists the end of month
// warning for every account, returning the refreshed accounts.
func (s *Server) handleEndOfMonthProjection(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.projections.RecomputeWarnings(r.Context())
	if err != nil {
		if errors.Is(err, stats.ErrNoPaymentSource) || errors.Is(err, stats.ErrNoAccountSource) {
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Warning recompute failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "failed to recompute warnings")
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category query failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name})
	}
	respondJSON(w, http.StatusOK, out)
}
