package server

// validateSessionConfig is the single gate for mode, count and roster
// rules. It runs when a session is created and again when its match
// starts, so a match can never enter play with an undefined round
// structure.
func validateSessionConfig(game *Game, session *GameSession) error {
	if game == nil {
		return configErr("game is required")
	}
	if session == nil {
		return configErr("session is required")
	}
	switch session.Mode {
	case modeIndividual:
		if game.TeamsOnly {
			return configErr("%s is a teams-only game", game.Name)
		}
		if session.PlayerCount < 2 || session.PlayerCount > game.MaxPlayers {
			return configErr("player count must be 2-%d, got %d", game.MaxPlayers, session.PlayerCount)
		}
	case modeTeam:
		if session.TeamCount < 2 || session.TeamCount > game.MaxTeams {
			return configErr("team count must be 2-%d, got %d", game.MaxTeams, session.TeamCount)
		}
		if err := validateRoster(session); err != nil {
			return err
		}
	default:
		return configErr("unknown mode %q", session.Mode)
	}
	return nil
}

func validateRoster(session *GameSession) error {
	if len(session.Teams) == 0 {
		return nil
	}
	if len(session.Teams) != session.TeamCount {
		return configErr("expected %d teams, got %d", session.TeamCount, len(session.Teams))
	}
	seen := make(map[int]bool)
	assigned := 0
	for _, team := range session.Teams {
		if len(team.Players) > maxPlayersPerTeam {
			return configErr("team %q has %d players, max is %d", team.Name, len(team.Players), maxPlayersPerTeam)
		}
		for _, playerID := range team.Players {
			if seen[playerID] {
				return configErr("player %d assigned twice", playerID)
			}
			seen[playerID] = true
			assigned++
		}
	}
	if session.PlayerCount > 0 && assigned != session.PlayerCount {
		return configErr("%d of %d players assigned to teams", assigned, session.PlayerCount)
	}
	return nil
}

const maxPlayersPerTeam = 2

// teamCountForPlayers mirrors the kiosk's team-assignment rule: pairs of
// players fill two, three or four teams.
func teamCountForPlayers(playerCount int) int {
	if playerCount <= 4 {
		return 2
	}
	if playerCount <= 6 {
		return 3
	}
	return 4
}
