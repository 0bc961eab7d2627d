package server

import (
	"log"
	"time"
)

// startMatchClock launches the 1-second tick driver for a match. All the
// clock math lives in Match.Tick; this goroutine only feeds it through
// the store lock and pushes the resulting snapshot to the scoreboard.
func (s *Server) startMatchClock(matchID string) {
	s.clocksMu.Lock()
	if _, ok := s.clocks[matchID]; ok {
		s.clocksMu.Unlock()
		return
	}
	done := make(chan struct{})
	s.clocks[matchID] = done
	s.clocksMu.Unlock()

	go s.runMatchClock(matchID, done)
}

func (s *Server) stopMatchClock(matchID string) {
	s.clocksMu.Lock()
	defer s.clocksMu.Unlock()
	if done, ok := s.clocks[matchID]; ok {
		close(done)
		delete(s.clocks, matchID)
	}
}

func (s *Server) stopAllMatchClocks() {
	s.clocksMu.Lock()
	defer s.clocksMu.Unlock()
	for id, done := range s.clocks {
		close(done)
		delete(s.clocks, id)
	}
}

func (s *Server) runMatchClock(matchID string, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			var snapshot map[string]any
			var active bool
			_, err := s.store.UpdateMatch(matchID, func(match *Match) error {
				match.Tick()
				snapshot = buildMatchSnapshot(match)
				active = match.Active()
				return nil
			})
			if err != nil {
				// Match was discarded; the driver dies with it.
				s.stopMatchClock(matchID)
				return
			}
			s.hub.Broadcast(matchID, snapshot)
			if !active {
				log.Printf("match clock stopped match_id=%s", matchID)
				s.stopMatchClock(matchID)
				return
			}
		}
	}
}
