package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the game catalog, live sessions and live matches behind one
// mutex. The catalog is seeded at construction and never changes; matches
// are mutated exclusively through UpdateMatch closures.
type Store struct {
	mu       sync.Mutex
	games    []Game
	sessions map[string]*GameSession
	matches  map[string]*Match
	rng      *rand.Rand
}

func NewStore() *Store {
	return &Store{
		games:    defaultGames(),
		sessions: make(map[string]*GameSession),
		matches:  make(map[string]*Match),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func defaultGames() []Game {
	return []Game{
		{
			ID:          uuid.NewString(),
			Name:        "Soccer Skeeball",
			Type:        gameTypeSkeeball,
			Description: "Roll soccer balls up a ramp to score points in different target holes. Precision meets fun in this classic arcade experience!",
			MaxPlayers:  8,
			MaxTeams:    4,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Elite Shooter",
			Type:        gameTypeShooter,
			Description: "Test your shooting accuracy with timed challenges. Hit targets, beat the clock, and show off your elite skills!",
			MaxPlayers:  8,
			MaxTeams:    4,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Team Relay Shootout",
			Type:        gameTypeRelay,
			Description: "Ultimate team competition! Work together in relay-style shooting challenges. Teamwork makes the dream work!",
			MaxTeams:    4,
			TeamsOnly:   true,
		},
	}
}

func (s *Store) Games() []Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]Game, len(s.games))
	copy(games, s.games)
	return games
}

func (s *Store) GetGame(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findGame(id)
}

func (s *Store) findGame(id string) (*Game, bool) {
	for i := range s.games {
		if s.games[i].ID == id {
			return &s.games[i], true
		}
	}
	return nil, false
}

// CreateSession validates the configuration against the chosen game and
// stores the session in pending status.
func (s *Store) CreateSession(session GameSession) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.findGame(session.GameID)
	if !ok {
		return nil, errGameNotFound
	}
	if err := validateSessionConfig(game, &session); err != nil {
		return nil, err
	}
	session.ID = uuid.NewString()
	session.Status = sessionPending
	session.CreatedAt = time.Now().UTC()
	s.sessions[session.ID] = &session
	return &session, nil
}

func (s *Store) GetSession(id string) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *Store) UpdateSessionStatus(id, status string) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	session.Status = status
	return session, true
}

// CreateMatch builds the match for a session and marks the session
// active. One session runs at most one match at a time.
func (s *Store) CreateMatch(sessionID string, durations matchDurations) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errSessionNotFound
	}
	game, ok := s.findGame(session.GameID)
	if !ok {
		return nil, errGameNotFound
	}
	for _, existing := range s.matches {
		if existing.Session.ID == sessionID {
			return nil, configErr("session already has a match")
		}
	}
	match, err := newMatch(uuid.NewString(), game, session, durations, s.rng)
	if err != nil {
		return nil, err
	}
	session.Status = sessionActive
	s.matches[match.ID] = match
	return match, nil
}

func (s *Store) GetMatch(id string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	return match, ok
}

// UpdateMatch runs update while holding the store lock, so every mutation
// of match state (actions and clock ticks alike) is serialized.
func (s *Store) UpdateMatch(id string, update func(match *Match) error) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, errMatchNotFound
	}
	if err := update(match); err != nil {
		return nil, err
	}
	return match, nil
}

// RemoveMatch discards the match synchronously; a tick arriving after
// this sees match-not-found and cannot touch discarded state.
func (s *Store) RemoveMatch(id string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, false
	}
	delete(s.matches, id)
	return match, true
}

// Rand exposes the store's random source for grid generation under the
// same lock discipline as the rest of match state.
func (s *Store) Rand() *rand.Rand {
	return s.rng
}

// Reset drops every session and match but keeps the catalog. Returns the
// ids of the matches that were live so their clocks can be stopped.
func (s *Store) Reset() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	s.sessions = make(map[string]*GameSession)
	s.matches = make(map[string]*Match)
	return ids
}
