package server

// buildMatchSnapshot flattens everything the scoreboard needs into one
// JSON-ready payload: phase, clocks, round plan, grid, pending and
// committed scores, and standings once the match is finished. Callers
// must hold the store lock (UpdateMatch closures do).
func buildMatchSnapshot(m *Match) map[string]any {
	entries := make([]map[string]any, 0, len(m.Entries))
	for _, entry := range m.Entries {
		entries = append(entries, map[string]any{
			"participant_id": entry.ParticipantID,
			"display_name":   entry.DisplayName,
			"color":          entry.Color,
			"round_scores":   append([]int(nil), entry.RoundScores...),
			"total":          entry.Total(),
		})
	}
	pending := make(map[string]int, len(m.Pending))
	for id, value := range m.Pending {
		pending[itoa(id)] = value
	}
	snapshot := map[string]any{
		"match_id":       m.ID,
		"session_id":     m.Session.ID,
		"game_type":      m.Game.Type,
		"game_name":      m.Game.Name,
		"mode":           m.Session.Mode,
		"phase":          m.Phase,
		"total_rounds":   m.Plan.TotalRounds,
		"rounds":         m.Plan.Rounds,
		"current_round":  m.CurrentRound,
		"current_group":  m.currentGroup(),
		"round_started":  m.RoundStarted,
		"round_complete": m.RoundComplete,
		"submitted":      m.Submitted,
		"score_step":     scoreStep(m.Game.Type),
		"grid":           m.Grid,
		"clocks": map[string]any{
			"round_remaining":     m.Clocks.RoundRemaining,
			"total_remaining":     m.Clocks.TotalRemaining,
			"countdown_remaining": m.Clocks.CountdownRemaining,
			"round_running":       m.Clocks.RoundRunning,
			"total_running":       m.Clocks.TotalRunning,
		},
		"pending":       pending,
		"entries":       entries,
		"time_expired":  m.TimeExpired,
		"expiry_notice": m.ExpiryNotice,
	}
	if m.Phase == phaseFinished {
		snapshot["standings"] = m.Standings()
	}
	return snapshot
}
