package http

import (
	"log/slog"
	"net/http"

	"cashbook/internal/core"
	applog "cashbook/internal/log"
)

type cashFlowResponse struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	IncomeCents   int64  `json:"income_cents"`
	SpendingCents int64  `json:"spending_cents"`
	RevenueCents  int64  `json:"revenue_cents"`
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := statsCacheKey(start, end)
	flow, found := s.cashflowCache.Get(key)
	if found {
		slog.DebugContext(r.Context(), "Cash flow cache hit",
			applog.FieldDateStart, start.Format("2006-01-02"),
			applog.FieldDateEnd, end.Format("2006-01-02"))
	} else {
		flow, err = s.cashflow.Compute(r.Context(), start, end)
		if err != nil {
			slog.ErrorContext(r.Context(), "Cash flow computation failed", applog.FieldError, err)
			respondError(w, http.StatusInternalServerError, "failed to compute cash flow")
			return
		}
		s.cashflowCache.Set(key, flow)
	}

	respondJSON(w, http.StatusOK, cashFlowResponse{
		Start:         start.Format("2006-01-02"),
		End:           end.Format("2006-01-02"),
		IncomeCents:   flow.Income.Cents,
		SpendingCents: flow.Spending.Cents,
		RevenueCents:  flow.Revenue.Cents,
	})
}

type spreadEntryResponse struct {
	Label      string `json:"label"`
	ValueCents int64  `json:"value_cents"`
}

func (s *Server) handleCategorySpreading(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := statsCacheKey(start, end)
	entries, found := s.spreadingCache.Get(key)
	if !found {
		entries, err = s.spreading.Compute(r.Context(), start, end)
		if err != nil {
			slog.ErrorContext(r.Context(), "Category spreading failed", applog.FieldError, err)
			respondError(w, http.StatusInternalServerError, "failed to compute category spreading")
			return
		}
		s.spreadingCache.Set(key, entries)
	}

	out := make([]spreadEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, spreadEntryResponse{Label: e.Label, ValueCents: e.Value.Cents})
	}
	respondJSON(w, http.StatusOK, out)
}

func statsCacheKey(start, end core.Date) string {
	return start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
}
