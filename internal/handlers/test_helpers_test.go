package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"influence/internal/config"
	"influence/internal/store"
)

// newTestHandler creates a handler with default test configuration
func newTestHandler(t *testing.T) (*Handler, *chi.Mux) {
	t.Helper()
	return newTestHandlerWithConfig(t, config.DefaultConfig())
}

func newTestHandlerWithConfig(t *testing.T, cfg *config.ServerConfig) (*Handler, *chi.Mux) {
	t.Helper()
	h := New(store.NewMemoryStore(cfg), cfg)
	router := SetupRouter(h, cfg, &RouterOptions{
		DisableRateLimiting:  true,
		DisableRequestLogger: true,
	})
	return h, router
}

// rawJSON is sent as-is, for bodies that are not valid JSON
type rawJSON string

// request sends a JSON request through the router; body may be nil
func request(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case rawJSON:
		buf.WriteString(string(b))
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func createTable(t *testing.T, router http.Handler) string {
	t.Helper()
	w := request(t, router, "POST", "/tables", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeResponse[TableResponse](t, w).Code
}

func addPlayer(t *testing.T, router http.Handler, code, name string) string {
	t.Helper()
	w := request(t, router, "POST", "/tables/"+code+"/players", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeResponse[addPlayerResponse](t, w).Player.ID
}

// startedTable creates a table, seats the named players and deals
func startedTable(t *testing.T, router http.Handler, names ...string) (string, []string) {
	t.Helper()
	code := createTable(t, router)
	var ids []string
	for _, name := range names {
		ids = append(ids, addPlayer(t, router, code, name))
	}
	w := request(t, router, "POST", "/tables/"+code+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return code, ids
}

func tableView(t *testing.T, router http.Handler, code, viewer string) TableResponse {
	t.Helper()
	w := request(t, router, "GET", "/tables/"+code+"?viewer="+viewer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeResponse[TableResponse](t, w)
}

func coinsOf(resp TableResponse, id string) int {
	for _, p := range resp.View.Players {
		if p.ID == id {
			return p.Coins
		}
	}
	return -1
}
