package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"influence/internal/game"
	"influence/internal/store"
	"influence/internal/table"
)

var (
	ErrBadRequest = errors.New("malformed request")
	ErrMustCoup   = errors.New("a player with enough coins must coup")
)

type errorResponse struct {
	Error string `json:"error"`
}

// TableResponse is returned by every command that changes a table
type TableResponse struct {
	Code    string    `json:"code"`
	Version uint64    `json:"version"`
	View    game.View `json:"view"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// statusFor maps engine and store errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrTableNotFound),
		errors.Is(err, table.ErrClosed),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case game.IsUnauthorized(err):
		return http.StatusForbidden
	case errors.Is(err, store.ErrStoreFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusConflict
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusServiceUnavailable {
		log.Printf("⚠️ %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
