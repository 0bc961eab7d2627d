package server

import "time"

const (
	gameTypeSkeeball = "soccer-skeeball"
	gameTypeShooter  = "elite-shooter"
	gameTypeRelay    = "team-relay-shootout"
)

const (
	modeIndividual = "individual"
	modeTeam       = "team"
)

const (
	phaseSetup     = "setup"
	phaseCountdown = "countdown"
	phasePlaying   = "playing"
	phaseFinished  = "finished"
)

const (
	sessionPending   = "pending"
	sessionActive    = "active"
	sessionCompleted = "completed"
)

const (
	labelWin  = "Win"
	labelLoss = "Loss"
	labelTie  = "Tie"
)

var teamColors = []string{"red", "blue", "green", "yellow"}
var teamNames = []string{"Red Team", "Blue Team", "Green Team", "Yellow Team"}

// Game is a catalog entry describing one of the arcade stations.
type Game struct {
	ID          string
	Name        string
	Type        string
	Description string
	MaxPlayers  int
	MaxTeams    int
	TeamsOnly   bool
}

type Team struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Players []int  `json:"players"`
}

type GameSession struct {
	ID          string
	GameID      string
	Mode        string
	PlayerCount int
	TeamCount   int
	Teams       []Team
	Status      string
	CreatedAt   time.Time
}

// RoundPlan assigns participants to rounds. Rounds holds 1-based
// participant ids; their union is always the full participant set.
type RoundPlan struct {
	TotalRounds int
	Rounds      [][]int
}

// GridCell is one of the fifteen target zones. Value carries the point
// score for zones that score, Label the printed marking ("X" zones score
// nothing), Color the owning team for relay grids.
type GridCell struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

type ScoreEntry struct {
	ParticipantID int    `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Color         string `json:"color,omitempty"`
	RoundScores   []int  `json:"round_scores"`
}

func (e *ScoreEntry) Total() int {
	total := 0
	for _, score := range e.RoundScores {
		total += score
	}
	return total
}

type Standing struct {
	ParticipantID int    `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Total         int    `json:"total"`
	Rank          int    `json:"rank"`
	Label         string `json:"label"`
}

// Clocks holds the countdown values advanced by Match.Tick. All three are
// plain seconds so tests can drive them without wall time.
type Clocks struct {
	RoundRemaining     int
	TotalRemaining     int
	CountdownRemaining int
	RoundRunning       bool
	TotalRunning       bool
}

// Match owns all mutable state for one scoreboard run: the phase, the
// round plan, both clocks and the score ledger. It is only ever touched
// through Store.UpdateMatch, so one session maps to one owner.
type Match struct {
	ID      string
	Session *GameSession
	Game    *Game

	Phase string
	Plan  RoundPlan
	Grid  [][]GridCell

	CurrentRound  int
	RoundStarted  bool
	RoundComplete bool
	Submitted     bool

	Clocks  Clocks
	Pending map[int]int
	Entries []ScoreEntry

	TimeExpired        bool
	ExpiryNotice       bool
	ExpiryAcknowledged bool

	roundSeconds     int
	totalSeconds     int
	countdownSeconds int
	totalStarted     bool
}

func roundDuration(gameType string, cfg matchDurations) int {
	switch gameType {
	case gameTypeRelay:
		return cfg.RoundSecondsRelay
	case gameTypeShooter:
		return cfg.RoundSecondsShooter
	default:
		return cfg.RoundSecondsSkeeball
	}
}

// matchDurations is the slice of config a match needs; keeping it small
// lets tests shrink the clocks to a few seconds.
type matchDurations struct {
	RoundSecondsSkeeball int
	RoundSecondsShooter  int
	RoundSecondsRelay    int
	TotalSeconds         int
	CountdownSeconds     int
}

func scoreStep(gameType string) int {
	if gameType == gameTypeSkeeball {
		return 5
	}
	return 1
}

// allowNegative reports whether staged scores may go below zero. Only the
// skeeball board has negative zones.
func allowNegative(gameType string) bool {
	return gameType == gameTypeSkeeball
}
