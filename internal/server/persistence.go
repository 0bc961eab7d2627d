package server

import (
	"encoding/json"
	"time"

	"github.com/josbon93/Elite-Games-Soccer-Room/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Persistence is best-effort: the kiosk keeps running from memory when no
// database is configured, and callers log write failures instead of
// failing the request.

func (s *Server) persistSession(session *GameSession) error {
	if s.db == nil {
		return nil
	}
	teams, err := json.Marshal(session.Teams)
	if err != nil {
		return err
	}
	record := db.GameSession{
		ID:          session.ID,
		GameID:      session.GameID,
		Mode:        session.Mode,
		PlayerCount: session.PlayerCount,
		TeamCount:   session.TeamCount,
		Teams:       datatypes.JSON(teams),
		Status:      session.Status,
		CreatedAt:   session.CreatedAt,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func (s *Server) persistSessionStatus(session *GameSession) error {
	if s.db == nil {
		return nil
	}
	return s.db.Model(&db.GameSession{}).
		Where("id = ?", session.ID).
		Update("status", session.Status).Error
}

func (s *Server) persistMatchResult(match *Match) error {
	if s.db == nil {
		return nil
	}
	scores, err := json.Marshal(match.Entries)
	if err != nil {
		return err
	}
	standings, err := json.Marshal(match.Standings())
	if err != nil {
		return err
	}
	record := db.MatchResult{
		SessionID:   match.Session.ID,
		GameType:    match.Game.Type,
		TotalRounds: match.Plan.TotalRounds,
		Scores:      datatypes.JSON(scores),
		Standings:   datatypes.JSON(standings),
		FinishedAt:  time.Now().UTC(),
	}
	return s.db.Create(&record).Error
}
