package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cashbook/internal/core"
)

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// parseDateRange reads the start and end query parameters. Both are
// required and end must not precede start.
func parseDateRange(r *http.Request) (start, end core.Date, err error) {
	startStr := strings.TrimSpace(r.URL.Query().Get("start"))
	endStr := strings.TrimSpace(r.URL.Query().Get("end"))
	if startStr == "" || endStr == "" {
		return core.Date{}, core.Date{}, fmt.Errorf("start and end are required")
	}

	start, err = parseDate(startStr)
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("invalid start date %q", startStr)
	}
	end, err = parseDate(endStr)
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("invalid end date %q", endStr)
	}
	if end.Before(start.Time) {
		return core.Date{}, core.Date{}, fmt.Errorf("end date precedes start date")
	}
	return start, end, nil
}

// parsePathID reads the {id} path value as a positive integer.
func parsePathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseInt64(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
