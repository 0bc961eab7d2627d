package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/josbon93/Elite-Games-Soccer-Room/internal/config"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Config{
		RoundSecondsSkeeball: 45,
		RoundSecondsShooter:  45,
		RoundSecondsRelay:    300,
		TotalSeconds:         300,
		CountdownSeconds:     5,
		AdminPassphrase:      "eg2017",
	}
	srv := New(nil, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.stopAllMatchClocks()
		ts.Close()
	})
	return srv, ts
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}

func catalogGame(t *testing.T, baseURL, gameType string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodGet, baseURL+"/api/games", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list games: status %d", resp.StatusCode)
	}
	games := decodeBody[[]map[string]any](t, resp)
	for _, game := range games {
		if game["type"] == gameType {
			return game
		}
	}
	t.Fatalf("catalog is missing %s", gameType)
	return nil
}

func createTestSession(t *testing.T, baseURL string, body map[string]any) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, baseURL+"/api/sessions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: status %d", resp.StatusCode)
	}
	return decodeBody[map[string]any](t, resp)
}

func createTestMatch(t *testing.T, baseURL, sessionID string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, baseURL+"/api/sessions/"+sessionID+"/match", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create match: status %d", resp.StatusCode)
	}
	return decodeBody[map[string]any](t, resp)
}

func TestListGamesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp := doRequest(t, http.MethodGet, ts.URL+"/api/games", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	games := decodeBody[[]map[string]any](t, resp)
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	for _, game := range games {
		if game["id"] == "" || game["name"] == "" || game["description"] == "" {
			t.Fatalf("incomplete game payload: %v", game)
		}
	}
}

func TestGetGameNotFound(t *testing.T) {
	_, ts := newTestServer(t)
	resp := doRequest(t, http.MethodGet, ts.URL+"/api/games/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateSessionEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)

	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 3,
	})
	if session["status"] != sessionPending {
		t.Fatalf("expected pending session, got %v", session["status"])
	}

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/sessions", map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 1,
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad player count, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/sessions", map[string]any{
		"game_id": game["id"],
		"mode":    modeIndividual,
		"bogus":   true,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSessionStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)
	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 2,
	})
	sessionID := session["id"].(string)

	resp := doRequest(t, http.MethodPatch, ts.URL+"/api/sessions/"+sessionID+"/status", map[string]any{
		"status": sessionCompleted,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	updated := decodeBody[map[string]any](t, resp)
	if updated["status"] != sessionCompleted {
		t.Fatalf("expected completed, got %v", updated["status"])
	}

	resp = doRequest(t, http.MethodPatch, ts.URL+"/api/sessions/"+sessionID+"/status", map[string]any{
		"status": "bogus",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)
	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 2,
	})
	sessionID := session["id"].(string)

	match := createTestMatch(t, ts.URL, sessionID)
	matchID := match["match_id"].(string)
	if match["phase"] != phaseSetup {
		t.Fatalf("expected setup, got %v", match["phase"])
	}
	if match["total_rounds"].(float64) != 2 {
		t.Fatalf("expected 2 rounds, got %v", match["total_rounds"])
	}

	// A session runs one match at a time.
	resp := doRequest(t, http.MethodPost, ts.URL+"/api/sessions/"+sessionID+"/match", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for second match, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/start", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", resp.StatusCode)
	}
	started := decodeBody[map[string]any](t, resp)
	if started["phase"] != phasePlaying {
		t.Fatalf("expected playing, got %v", started["phase"])
	}

	// Submitting before the round clock has run must be refused.
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/scores/submit", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for early submit, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/rounds/start", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("round start: expected 200, got %d", resp.StatusCode)
	}
	live := decodeBody[map[string]any](t, resp)
	clocks := live["clocks"].(map[string]any)
	if clocks["round_running"] != true || clocks["round_remaining"].(float64) != 45 {
		t.Fatalf("round clock not running: %v", clocks)
	}

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/scores/adjust", map[string]any{
		"participant_id": 1,
		"delta":          25,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("adjust: expected 200, got %d", resp.StatusCode)
	}
	adjusted := decodeBody[map[string]any](t, resp)
	pending := adjusted["pending"].(map[string]any)
	if pending["1"].(float64) != 25 {
		t.Fatalf("expected pending 25, got %v", pending)
	}

	// Participant 2 waits for round 2.
	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/scores/set", map[string]any{
		"participant_id": 2,
		"value":          10,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-round participant, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/exit", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("exit: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/matches/"+matchID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after exit, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/sessions/"+sessionID, nil)
	closed := decodeBody[map[string]any](t, resp)
	if closed["status"] != sessionCompleted {
		t.Fatalf("expected completed session after exit, got %v", closed["status"])
	}
}

func TestRelayMatchStartsCountdownOverHTTP(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeRelay)
	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":    game["id"],
		"mode":       modeTeam,
		"team_count": 2,
	})
	match := createTestMatch(t, ts.URL, session["id"].(string))
	matchID := match["match_id"].(string)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/start", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", resp.StatusCode)
	}
	started := decodeBody[map[string]any](t, resp)
	if started["phase"] != phaseCountdown {
		t.Fatalf("expected countdown, got %v", started["phase"])
	}
	grid := started["grid"].([]any)
	if len(grid) != gridRows {
		t.Fatalf("expected %d grid rows, got %d", gridRows, len(grid))
	}
}

func TestAdminResetEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)
	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 2,
	})
	match := createTestMatch(t, ts.URL, session["id"].(string))
	matchID := match["match_id"].(string)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/admin/reset", map[string]any{
		"passphrase": "wrong",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong passphrase, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/admin/reset", map[string]any{
		"passphrase": "eg2017",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	result := decodeBody[map[string]any](t, resp)
	if result["cleared_matches"].(float64) != 1 {
		t.Fatalf("expected 1 cleared match, got %v", result["cleared_matches"])
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/matches/"+matchID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after reset, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestViewsRender(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)

	resp := doRequest(t, http.MethodGet, ts.URL+"/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home: expected 200, got %d", resp.StatusCode)
	}
	var home bytes.Buffer
	home.ReadFrom(resp.Body)
	resp.Body.Close()
	if !strings.Contains(home.String(), "Soccer Skeeball") {
		t.Fatal("home page should list the catalog")
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/setup/"+game["id"].(string), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("setup: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 2,
	})
	match := createTestMatch(t, ts.URL, session["id"].(string))
	resp = doRequest(t, http.MethodGet, ts.URL+"/matches/"+match["match_id"].(string)+"/board", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("board: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMatchWebsocketSendsSnapshot(t *testing.T) {
	_, ts := newTestServer(t)
	game := catalogGame(t, ts.URL, gameTypeSkeeball)
	session := createTestSession(t, ts.URL, map[string]any{
		"game_id":      game["id"],
		"mode":         modeIndividual,
		"player_count": 2,
	})
	match := createTestMatch(t, ts.URL, session["id"].(string))
	matchID := match["match_id"].(string)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/matches/" + matchID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	var snapshot map[string]any
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snapshot["match_id"] != matchID || snapshot["phase"] != phaseSetup {
		t.Fatalf("unexpected snapshot: %v", snapshot)
	}

	// A state change pushes a fresh snapshot to the open socket.
	resp := doRequest(t, http.MethodPost, ts.URL+"/api/matches/"+matchID+"/start", nil)
	resp.Body.Close()
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if snapshot["phase"] != phasePlaying {
		t.Fatalf("expected playing broadcast, got %v", snapshot["phase"])
	}
}
