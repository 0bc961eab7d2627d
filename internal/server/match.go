package server

import (
	"fmt"
	"math/rand"
)

// newMatch builds a match in the setup phase: configuration is validated,
// the round plan computed and the ledger zeroed. The relay grid is not
// rolled here; it is built once when the match leaves setup.
func newMatch(id string, game *Game, session *GameSession, durations matchDurations, rng *rand.Rand) (*Match, error) {
	if game == nil || session == nil {
		return nil, configErr("missing game or session")
	}
	if err := validateSessionConfig(game, session); err != nil {
		return nil, err
	}

	count := session.PlayerCount
	if session.Mode == modeTeam {
		count = session.TeamCount
	}
	plan, err := computeRoundPlan(game.Type, count)
	if err != nil {
		return nil, err
	}

	match := &Match{
		ID:               id,
		Session:          session,
		Game:             game,
		Phase:            phaseSetup,
		Plan:             plan,
		Pending:          make(map[int]int),
		Entries:          buildEntries(session, plan.TotalRounds),
		roundSeconds:     roundDuration(game.Type, durations),
		totalSeconds:     durations.TotalSeconds,
		countdownSeconds: durations.CountdownSeconds,
	}
	if game.Type != gameTypeRelay {
		match.Grid = buildScoringGrid(game.Type, 0, rng)
	}
	return match, nil
}

func buildEntries(session *GameSession, totalRounds int) []ScoreEntry {
	if session.Mode == modeTeam {
		entries := make([]ScoreEntry, 0, session.TeamCount)
		for i := 0; i < session.TeamCount; i++ {
			entry := ScoreEntry{
				ParticipantID: i + 1,
				DisplayName:   teamNames[i%len(teamNames)],
				Color:         teamColors[i%len(teamColors)],
				RoundScores:   make([]int, totalRounds),
			}
			if i < len(session.Teams) {
				entry.DisplayName = session.Teams[i].Name
				entry.Color = session.Teams[i].Color
			}
			entries = append(entries, entry)
		}
		return entries
	}
	entries := make([]ScoreEntry, 0, session.PlayerCount)
	for i := 0; i < session.PlayerCount; i++ {
		entries = append(entries, ScoreEntry{
			ParticipantID: i + 1,
			DisplayName:   fmt.Sprintf("Player %d", i+1),
			RoundScores:   make([]int, totalRounds),
		})
	}
	return entries
}

// StartGame moves a match out of setup. The relay rolls its color grid
// here and runs a pre-round countdown; everything else goes straight to
// playing and waits for an explicit round start.
func (m *Match) StartGame(rng *rand.Rand) error {
	if m.Phase != phaseSetup {
		return errInvalidTransition
	}
	if err := validateSessionConfig(m.Game, m.Session); err != nil {
		return err
	}
	m.CurrentRound = 1
	if m.Game.Type == gameTypeRelay {
		m.Grid = buildScoringGrid(gameTypeRelay, m.Session.TeamCount, rng)
		m.Phase = phaseCountdown
		m.Clocks.CountdownRemaining = m.countdownSeconds
		return nil
	}
	m.Phase = phasePlaying
	return nil
}

// StartRound starts the current round's clock, or advances to the next
// round after a submission. It refuses to restart a running round, to
// skip ahead of an unsubmitted one and to open new rounds once the total
// clock has expired.
func (m *Match) StartRound() error {
	if m.Phase != phasePlaying {
		return errInvalidTransition
	}
	if !m.RoundStarted {
		m.beginRound()
		return nil
	}
	if m.Submitted && m.CurrentRound < m.Plan.TotalRounds && !m.TimeExpired {
		m.advanceRound()
		return nil
	}
	return errInvalidTransition
}

func (m *Match) advanceRound() {
	m.CurrentRound++
	m.Pending = make(map[int]int)
	m.Submitted = false
	m.beginRound()
}

func (m *Match) beginRound() {
	m.RoundStarted = true
	m.RoundComplete = false
	m.Clocks.RoundRunning = true
	m.Clocks.RoundRemaining = m.roundSeconds
	if !m.totalStarted {
		// The total clock starts with the first round and never again.
		m.totalStarted = true
		m.Clocks.TotalRunning = true
		m.Clocks.TotalRemaining = m.totalSeconds
	}
}

// Tick advances every running clock by one second. The round clock is
// authoritative for interruptions: when the total clock hits zero during
// a live round, the expiry notice waits until the round clock stops too.
func (m *Match) Tick() {
	switch m.Phase {
	case phaseCountdown:
		if m.Clocks.CountdownRemaining > 0 {
			m.Clocks.CountdownRemaining--
		}
		if m.Clocks.CountdownRemaining <= 0 {
			m.Phase = phasePlaying
			m.beginRound()
		}
	case phasePlaying:
		if m.Clocks.RoundRunning {
			m.Clocks.RoundRemaining--
			if m.Clocks.RoundRemaining <= 0 {
				m.Clocks.RoundRemaining = 0
				m.Clocks.RoundRunning = false
				m.RoundComplete = true
			}
		}
		if m.Clocks.TotalRunning {
			m.Clocks.TotalRemaining--
			if m.Clocks.TotalRemaining <= 0 {
				m.Clocks.TotalRemaining = 0
				m.Clocks.TotalRunning = false
				m.TimeExpired = true
			}
		}
		if m.TimeExpired && !m.Clocks.RoundRunning && !m.ExpiryAcknowledged {
			m.ExpiryNotice = true
		}
	}
}

// Active reports whether the match still needs clock ticks.
func (m *Match) Active() bool {
	return m.Phase == phaseCountdown || m.Phase == phasePlaying
}

func (m *Match) currentGroup() []int {
	if m.CurrentRound < 1 || m.CurrentRound > len(m.Plan.Rounds) {
		return nil
	}
	return m.Plan.Rounds[m.CurrentRound-1]
}

func (m *Match) inCurrentGroup(participantID int) bool {
	for _, id := range m.currentGroup() {
		if id == participantID {
			return true
		}
	}
	return false
}

func (m *Match) entryFor(participantID int) *ScoreEntry {
	for i := range m.Entries {
		if m.Entries[i].ParticipantID == participantID {
			return &m.Entries[i]
		}
	}
	return nil
}

// AdjustPendingScore nudges a staged score by delta (the kiosk buttons
// step by 5 on skeeball, 1 elsewhere). Values are clamped at zero except
// on the skeeball board, whose zones include -10.
func (m *Match) AdjustPendingScore(participantID, delta int) error {
	if m.Phase != phasePlaying || !m.RoundStarted {
		return errInvalidTransition
	}
	if !m.inCurrentGroup(participantID) {
		return fmt.Errorf("%w: participant %d is not in round %d", errInvalidInput, participantID, m.CurrentRound)
	}
	m.Pending[participantID] = m.clampScore(m.Pending[participantID] + delta)
	return nil
}

// SetPendingScore stages a typed-in score, clamped the same way.
func (m *Match) SetPendingScore(participantID, value int) error {
	if m.Phase != phasePlaying || !m.RoundStarted {
		return errInvalidTransition
	}
	if !m.inCurrentGroup(participantID) {
		return fmt.Errorf("%w: participant %d is not in round %d", errInvalidInput, participantID, m.CurrentRound)
	}
	m.Pending[participantID] = m.clampScore(value)
	return nil
}

func (m *Match) clampScore(value int) int {
	if value < 0 && !allowNegative(m.Game.Type) {
		return 0
	}
	return value
}

// SubmitRoundScores commits the staged values for the active round. It is
// gated on the round clock having hit zero; submitting again before the
// next round starts overwrites the same slots, never adds to them.
// Participants with nothing staged record a zero.
func (m *Match) SubmitRoundScores() error {
	if m.Phase != phasePlaying || !m.RoundComplete {
		return errInvalidTransition
	}
	slot := m.CurrentRound - 1
	for _, id := range m.currentGroup() {
		if entry := m.entryFor(id); entry != nil {
			entry.RoundScores[slot] = m.Pending[id]
		}
	}
	m.Submitted = true
	return nil
}

// AdvanceOrFinish resolves a submitted round: the last round (or any
// round once total time has expired) closes the match, otherwise play
// moves on to the next round's group.
func (m *Match) AdvanceOrFinish() error {
	if m.Phase != phasePlaying || !m.Submitted {
		return errInvalidTransition
	}
	if m.CurrentRound >= m.Plan.TotalRounds || m.TimeExpired {
		m.finish()
		return nil
	}
	m.advanceRound()
	return nil
}

func (m *Match) finish() {
	m.Phase = phaseFinished
	m.Clocks.RoundRunning = false
	m.Clocks.TotalRunning = false
	m.ExpiryNotice = false
}

// ContinueAfterTimeExpiry dismisses the time-up notice and leaves the
// match in playing so the finished round's scores can still go in.
func (m *Match) ContinueAfterTimeExpiry() error {
	if !m.ExpiryNotice {
		return errInvalidTransition
	}
	m.ExpiryNotice = false
	m.ExpiryAcknowledged = true
	return nil
}

// Standings is only meaningful once the match is finished.
func (m *Match) Standings() []Standing {
	if m.Phase != phaseFinished {
		return nil
	}
	return computeStandings(m.Entries)
}
