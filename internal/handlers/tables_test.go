package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influence/internal/config"
	"influence/internal/game"
)

func TestHealthEndpoints(t *testing.T) {
	_, router := newTestHandler(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := request(t, router, "GET", path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "OK", w.Body.String())
	}
}

func TestTableLifecycle(t *testing.T) {
	h, router := newTestHandler(t)

	code := createTable(t, router)
	assert.Len(t, code, 5)
	assert.Equal(t, 1, h.Store().Len())

	w := request(t, router, "GET", "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string][]string{"tables": {code}}, decodeResponse[map[string][]string](t, w))

	resp := tableView(t, router, strings.ToLower(code), "")
	assert.Equal(t, code, resp.Code)
	assert.False(t, resp.View.Started)

	w = request(t, router, "DELETE", "/tables/"+code, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = request(t, router, "GET", "/tables/"+code, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeResponse[errorResponse](t, w).Error, "table not found")

	w = request(t, router, "DELETE", "/tables/"+code, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTable_StoreFull(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxTables = 1
	_, router := newTestHandlerWithConfig(t, cfg)

	createTable(t, router)
	w := request(t, router, "POST", "/tables", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAddPlayer(t *testing.T) {
	_, router := newTestHandler(t)
	code := createTable(t, router)

	w := request(t, router, "POST", "/tables/"+code+"/players", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse[addPlayerResponse](t, w)
	assert.NotEmpty(t, resp.Player.ID)
	assert.Equal(t, "Alice", resp.Player.Name)
	assert.Equal(t, 2, resp.Player.Coins)
	assert.Equal(t, uint64(1), resp.Table.Version)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"duplicate name", `{"name":"alice"}`, http.StatusConflict},
		{"empty name", `{"name":"  "}`, http.StatusConflict},
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"unknown field", `{"nickname":"Bob"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, router, "POST", "/tables/"+code+"/players", rawJSON(tt.body))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w = request(t, router, "POST", "/tables/NOPE0/players", map[string]string{"name": "Bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartGame(t *testing.T) {
	_, router := newTestHandler(t)
	code := createTable(t, router)
	alice := addPlayer(t, router, code, "Alice")

	w := request(t, router, "POST", "/tables/"+code+"/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "not enough players")

	bob := addPlayer(t, router, code, "Bob")
	w = request(t, router, "POST", "/tables/"+code+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse[TableResponse](t, w)
	assert.True(t, resp.View.Started)
	assert.Equal(t, alice, resp.View.CurrentPlayerID)
	assert.Equal(t, 11, resp.View.DeckSize)

	w = request(t, router, "POST", "/tables/"+code+"/players", map[string]string{"name": "Carol"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Each seat sees only its own face-down cards
	view := tableView(t, router, code, alice).View
	for _, c := range view.Players[0].Influences {
		assert.NotEmpty(t, c.Role)
	}
	for _, c := range view.Players[1].Influences {
		assert.Empty(t, c.Role)
	}
	assert.Equal(t, bob, view.Players[1].ID)
}

func TestResetGame(t *testing.T) {
	_, router := newTestHandler(t)
	code, _ := startedTable(t, router, "Alice", "Bob")

	w := request(t, router, "POST", "/tables/"+code+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse[TableResponse](t, w)
	assert.False(t, resp.View.Started)
	assert.Empty(t, resp.View.Players)

	addPlayer(t, router, code, "Alice")
}

func TestEvents(t *testing.T) {
	_, router := newTestHandler(t)
	code, _ := startedTable(t, router, "Alice", "Bob")

	w := request(t, router, "GET", "/tables/"+code+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeResponse[map[string][]game.Event](t, w)["events"]
	require.Len(t, all, 3)
	assert.Equal(t, game.EventGameStarted, all[2].Type)

	w = request(t, router, "GET", "/tables/"+code+"/events?since=2", nil)
	tail := decodeResponse[map[string][]game.Event](t, w)["events"]
	require.Len(t, tail, 1)
	assert.Equal(t, 2, tail[0].Seq)

	w = request(t, router, "GET", "/tables/"+code+"/events?since=99", nil)
	assert.JSONEq(t, `{"events":[]}`, w.Body.String())

	w = request(t, router, "GET", "/tables/"+code+"/events?since=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
