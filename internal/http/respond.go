package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agriledger/internal/core"

	"github.com/gorilla/mux"
)

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

// writeDomainError maps domain and storage errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, core.ErrItemIndex):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, "validation", err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrEmptyName,
		core.ErrInvalidAmount,
		core.ErrMissingBuyer,
		core.ErrMissingOwner,
		core.ErrMissingLand,
		core.ErrMissingDate,
		core.ErrInvalidBasis,
		core.ErrEmptyLineItems,
		core.ErrWindowMissingBound,
		core.ErrWindowInverted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// pathID extracts a numeric path variable registered with the router.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

const dateLayout = "2006-01-02"

// parseWindow builds the inclusive range from the from/to query parameters.
// Bound validation is left to the caller via DateWindow.Validate.
func parseWindow(r *http.Request) core.DateWindow {
	var w core.DateWindow
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			w.From = t
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			w.To = t
		}
	}
	return w
}

// flexDate accepts the date formats different client versions send.
type flexDate struct {
	time.Time
}

func (d *flexDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// pickDate prefers the camelCase key but accepts the snake_case one older
// clients still send.
func pickDate(camel, snake flexDate) time.Time {
	if !camel.IsZero() {
		return camel.Time
	}
	return snake.Time
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
