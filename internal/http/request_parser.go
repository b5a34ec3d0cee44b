// Package http exposes the budget views and mutations as a JSON API.
//
// This file implements utilities for parsing and validating HTTP
// request data: scope headers, month selection, and JSON bodies.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"budget/internal/monthkey"
)

const (
	headerHousehold = "X-Household-ID"
	headerUser      = "X-User-ID"

	maxBodyBytes = 1 << 20 // 1 MiB
)

var (
	errMissingHousehold = errors.New("X-Household-ID header is required")
	errMissingUser      = errors.New("X-User-ID header is required")
)

// scope identifies whose data a request operates on. Authentication
// is handled upstream; these headers only parameterize the store.
type scope struct {
	HouseholdID string
	UserID      string
}

// parseScope extracts the household scope from request headers.
// userRequired additionally demands the user header, needed by
// per-user reads (income) and all writes.
func parseScope(r *http.Request, userRequired bool) (scope, error) {
	sc := scope{
		HouseholdID: sanitizeInput(r.Header.Get(headerHousehold)),
		UserID:      sanitizeInput(r.Header.Get(headerUser)),
	}
	if sc.HouseholdID == "" {
		return scope{}, errMissingHousehold
	}
	if userRequired && sc.UserID == "" {
		return scope{}, errMissingUser
	}
	return sc, nil
}

// monthParam returns the month key a request targets: the explicit
// ?month= query value when present, otherwise the shared selection.
// Malformed keys are not an error here; the codec falls back to the
// current month on decode.
func (s *Server) monthParam(r *http.Request) string {
	if v := sanitizeInput(r.URL.Query().Get("month")); v != "" {
		// Round-trip through the codec to canonicalize casing
		// and reject garbage.
		month, year := monthkey.Decode(v)
		return monthkey.Encode(month, year)
	}
	return s.selection.Current()
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}
