package server

import (
	"log"
	"net/http"
)

type createSessionRequest struct {
	GameID      string `json:"game_id"`
	Mode        string `json:"mode"`
	PlayerCount int    `json:"player_count"`
	TeamCount   int    `json:"team_count"`
	Teams       []Team `json:"teams"`
}

type sessionStatusRequest struct {
	Status string `json:"status"`
}

type scoreAdjustRequest struct {
	ParticipantID int `json:"participant_id"`
	Delta         int `json:"delta"`
}

type scoreSetRequest struct {
	ParticipantID int `json:"participant_id"`
	Value         int `json:"value"`
}

type adminResetRequest struct {
	Passphrase string `json:"passphrase"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.store.Games()
	payload := make([]map[string]any, 0, len(games))
	for _, game := range games {
		payload = append(payload, gamePayload(game))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := s.store.GetGame(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, gamePayload(*game))
}

func gamePayload(game Game) map[string]any {
	return map[string]any{
		"id":          game.ID,
		"name":        game.Name,
		"type":        game.Type,
		"description": game.Description,
		"max_players": game.MaxPlayers,
		"max_teams":   game.MaxTeams,
		"teams_only":  game.TeamsOnly,
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "create_session") {
		return
	}
	var req createSessionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session data")
		return
	}
	session, err := s.store.CreateSession(GameSession{
		GameID:      req.GameID,
		Mode:        req.Mode,
		PlayerCount: req.PlayerCount,
		TeamCount:   req.TeamCount,
		Teams:       req.Teams,
	})
	if err != nil {
		writeMatchError(w, err)
		return
	}
	if err := s.persistSession(session); err != nil {
		log.Printf("session persist failed session_id=%s error=%v", session.ID, err)
	}
	log.Printf("session created session_id=%s game_id=%s mode=%s", session.ID, session.GameID, session.Mode)
	writeJSON(w, http.StatusCreated, sessionPayload(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.store.GetSession(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionPayload(session))
}

func sessionPayload(session *GameSession) map[string]any {
	return map[string]any{
		"id":           session.ID,
		"game_id":      session.GameID,
		"mode":         session.Mode,
		"player_count": session.PlayerCount,
		"team_count":   session.TeamCount,
		"teams":        session.Teams,
		"status":       session.Status,
		"created_at":   session.CreatedAt,
	}
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	var req sessionStatusRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid status payload")
		return
	}
	switch req.Status {
	case sessionPending, sessionActive, sessionCompleted:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	session, ok := s.store.UpdateSessionStatus(r.PathValue("id"), req.Status)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err := s.persistSessionStatus(session); err != nil {
		log.Printf("session status persist failed session_id=%s error=%v", session.ID, err)
	}
	writeJSON(w, http.StatusOK, sessionPayload(session))
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "create_match") {
		return
	}
	match, err := s.store.CreateMatch(r.PathValue("id"), s.matchDurations())
	if err != nil {
		writeMatchError(w, err)
		return
	}
	log.Printf("match created match_id=%s session_id=%s game_type=%s rounds=%d",
		match.ID, match.Session.ID, match.Game.Type, match.Plan.TotalRounds)
	s.respondWithMatch(w, http.StatusCreated, match.ID)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	s.respondWithMatch(w, http.StatusOK, r.PathValue("id"))
}

// respondWithMatch builds the snapshot under the store lock and writes
// it out; every match endpoint responds with the same shape so the kiosk
// can rerender from any reply.
func (s *Server) respondWithMatch(w http.ResponseWriter, status int, matchID string) {
	var snapshot map[string]any
	_, err := s.store.UpdateMatch(matchID, func(m *Match) error {
		snapshot = buildMatchSnapshot(m)
		return nil
	})
	if err != nil {
		writeMatchError(w, err)
		return
	}
	writeJSON(w, status, snapshot)
}

// applyMatchAction funnels every state transition through one path:
// mutate under the lock, snapshot, broadcast, respond.
func (s *Server) applyMatchAction(w http.ResponseWriter, matchID string, action func(m *Match) error) error {
	var snapshot map[string]any
	_, err := s.store.UpdateMatch(matchID, func(m *Match) error {
		if err := action(m); err != nil {
			return err
		}
		snapshot = buildMatchSnapshot(m)
		return nil
	})
	if err != nil {
		writeMatchError(w, err)
		return err
	}
	s.hub.Broadcast(matchID, snapshot)
	writeJSON(w, http.StatusOK, snapshot)
	return nil
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	err := s.applyMatchAction(w, matchID, func(m *Match) error {
		if err := m.StartGame(s.store.Rand()); err != nil {
			return err
		}
		log.Printf("match started match_id=%s game_type=%s phase=%s", m.ID, m.Game.Type, m.Phase)
		return nil
	})
	if err == nil {
		s.startMatchClock(matchID)
	}
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	err := s.applyMatchAction(w, matchID, func(m *Match) error {
		if err := m.StartRound(); err != nil {
			return err
		}
		log.Printf("round started match_id=%s round=%d of=%d", m.ID, m.CurrentRound, m.Plan.TotalRounds)
		return nil
	})
	if err == nil {
		s.startMatchClock(matchID)
	}
}

func (s *Server) handleAdjustScore(w http.ResponseWriter, r *http.Request) {
	var req scoreAdjustRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid score payload")
		return
	}
	s.applyMatchAction(w, r.PathValue("id"), func(m *Match) error {
		return m.AdjustPendingScore(req.ParticipantID, req.Delta)
	})
}

func (s *Server) handleSetScore(w http.ResponseWriter, r *http.Request) {
	var req scoreSetRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid score payload")
		return
	}
	s.applyMatchAction(w, r.PathValue("id"), func(m *Match) error {
		return m.SetPendingScore(req.ParticipantID, req.Value)
	})
}

func (s *Server) handleSubmitScores(w http.ResponseWriter, r *http.Request) {
	s.applyMatchAction(w, r.PathValue("id"), func(m *Match) error {
		if err := m.SubmitRoundScores(); err != nil {
			return err
		}
		log.Printf("round scores submitted match_id=%s round=%d", m.ID, m.CurrentRound)
		return nil
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	finished := false
	s.applyMatchAction(w, matchID, func(m *Match) error {
		if err := m.AdvanceOrFinish(); err != nil {
			return err
		}
		finished = m.Phase == phaseFinished
		return nil
	})
	if finished {
		s.stopMatchClock(matchID)
		s.completeMatch(matchID)
	}
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.applyMatchAction(w, r.PathValue("id"), func(m *Match) error {
		return m.ContinueAfterTimeExpiry()
	})
}

func (s *Server) handleExitMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	s.stopMatchClock(matchID)
	match, ok := s.store.RemoveMatch(matchID)
	if !ok {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	if session, ok := s.store.UpdateSessionStatus(match.Session.ID, sessionCompleted); ok {
		if err := s.persistSessionStatus(session); err != nil {
			log.Printf("session status persist failed session_id=%s error=%v", session.ID, err)
		}
	}
	log.Printf("match exited match_id=%s session_id=%s", matchID, match.Session.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "exited"})
}

// completeMatch records the final result and closes out the session once
// a match reaches finished.
func (s *Server) completeMatch(matchID string) {
	match, ok := s.store.GetMatch(matchID)
	if !ok {
		return
	}
	if session, ok := s.store.UpdateSessionStatus(match.Session.ID, sessionCompleted); ok {
		if err := s.persistSessionStatus(session); err != nil {
			log.Printf("session status persist failed session_id=%s error=%v", session.ID, err)
		}
	}
	if err := s.persistMatchResult(match); err != nil {
		log.Printf("match result persist failed match_id=%s error=%v", matchID, err)
	}
	log.Printf("match finished match_id=%s session_id=%s", matchID, match.Session.ID)
}

func (s *Server) handleAdminReset(w http.ResponseWriter, r *http.Request) {
	if !s.enforceRateLimit(w, r, "admin_reset") {
		return
	}
	var req adminResetRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reset payload")
		return
	}
	if req.Passphrase != s.cfg.AdminPassphrase {
		writeError(w, http.StatusForbidden, "wrong passphrase")
		return
	}
	s.stopAllMatchClocks()
	cleared := s.store.Reset()
	log.Printf("admin reset cleared_matches=%d", len(cleared))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "reset",
		"cleared_matches": len(cleared),
	})
}
