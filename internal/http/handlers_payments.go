package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
	applog "cashbook/internal/log"
)

type paymentRequest struct {
	Amount           string `json:"amount"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	ChargedAccountID int64  `json:"charged_account_id"`
	TargetAccountID  int64  `json:"target_account_id"`
	CategoryID       int64  `json:"category_id"`
	IsCleared        bool   `json:"is_cleared"`
	Note             string `json:"note"`
}

type paymentResponse struct {
	ID               int64  `json:"id"`
	AmountCents      int64  `json:"amount_cents"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	ChargedAccountID int64  `json:"charged_account_id"`
	TargetAccountID  int64  `json:"target_account_id,omitempty"`
	CategoryID       int64  `json:"category_id,omitempty"`
	CategoryName     string `json:"category_name,omitempty"`
	IsCleared        bool   `json:"is_cleared"`
	Note             string `json:"note,omitempty"`
}

func toPaymentResponse(p core.Payment) paymentResponse {
	return paymentResponse{
		ID:               p.ID,
		AmountCents:      p.Amount.Cents,
		Date:             p.Date.Format("2006-01-02"),
		Type:             p.Type.String(),
		ChargedAccountID: p.ChargedAccountID,
		TargetAccountID:  p.TargetAccountID,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		IsCleared:        p.IsCleared,
		Note:             p.Note,
	}
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	paymentType, err := core.ParsePaymentType(req.Type)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid payment type")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	p := core.Payment{
		Amount:           core.Money{Cents: cents},
		Date:             date,
		Type:             paymentType,
		ChargedAccountID: req.ChargedAccountID,
		TargetAccountID:  req.TargetAccountID,
		CategoryID:       req.CategoryID,
		IsCleared:        req.IsCleared,
		Note:             sanitizeInput(req.Note),
	}

	id, err := s.payments.CreatePayment(r.Context(), p)
	if err != nil {
		if p.Validate() != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Payment create failed",
			applog.FieldError, err,
			applog.FieldAmountCents, p.Amount.Cents)
		respondError(w, http.StatusInternalServerError, "failed to save payment")
		return
	}

	s.invalidateStats()
	p.ID = id
	respondJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	filter, err := paymentFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payments, err := s.store.Query(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment query failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// paymentFilterFromQuery builds a predicate from the optional start, end
// and account query parameters.
func paymentFilterFromQuery(r *http.Request) (ledger.PaymentFilter, error) {
	q := r.URL.Query()

	var (
		start, end core.Date
		hasStart   = strings.TrimSpace(q.Get("start")) != ""
		hasEnd     = strings.TrimSpace(q.Get("end")) != ""
		accountID  int64
	)
	if hasStart {
		d, err := parseDate(q.Get("start"))
		if err != nil {
			return nil, errors.New("invalid start date")
		}
		start = d
	}
	if hasEnd {
		d, err := parseDate(q.Get("end"))
		if err != nil {
			return nil, errors.New("invalid end date")
		}
		end = d
	}
	if raw := strings.TrimSpace(q.Get("account")); raw != "" {
		id, err := parseInt64(raw)
		if err != nil {
			return nil, errors.New("invalid account id")
		}
		accountID = id
	}

	if !hasStart && !hasEnd && accountID == 0 {
		return nil, nil
	}

	return func(p core.Payment) bool {
		if hasStart && p.Date.Before(start.Time) {
			return false
		}
		if hasEnd && !p.Date.OnOrBefore(end) {
			return false
		}
		if accountID != 0 && p.ChargedAccountID != accountID && p.TargetAccountID != accountID {
			return false
		}
		return true
	}, nil
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.payments.DeletePayment(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrPaymentNotFound) {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		slog.ErrorContext(r.Context(), "Payment delete failed",
			applog.FieldError, err,
			applog.FieldPaymentID, id)
		respondError(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
