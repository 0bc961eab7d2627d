package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:64;not null"`
	Type        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"not null"`
	MaxPlayers  int    `gorm:"not null"`
	MaxTeams    int    `gorm:"not null"`
	TeamsOnly   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GameSession struct {
	ID          string `gorm:"primaryKey;size:36"`
	GameID      string `gorm:"size:36;index;not null"`
	Mode        string `gorm:"size:16;not null"`
	PlayerCount int
	TeamCount   int
	Teams       datatypes.JSON `gorm:"type:jsonb"`
	Status      string         `gorm:"size:16;not null;default:pending"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

type MatchResult struct {
	ID          uint           `gorm:"primaryKey"`
	SessionID   string         `gorm:"size:36;index;not null"`
	GameType    string         `gorm:"size:32;not null"`
	TotalRounds int            `gorm:"not null"`
	Scores      datatypes.JSON `gorm:"type:jsonb;not null"`
	Standings   datatypes.JSON `gorm:"type:jsonb;not null"`
	FinishedAt  time.Time      `gorm:"not null"`
	CreatedAt   time.Time
}
