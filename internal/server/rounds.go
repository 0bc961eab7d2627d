package server

// computeRoundPlan splits participants into timed rounds. Up to four
// participants each get a solo round; five or six share three rounds;
// seven or eight share four. The relay always runs as a single round
// with every team on the floor at once.
func computeRoundPlan(gameType string, participantCount int) (RoundPlan, error) {
	if gameType == gameTypeRelay {
		if participantCount < 2 || participantCount > 4 {
			return RoundPlan{}, configErr("team relay needs 2-4 teams, got %d", participantCount)
		}
		round := make([]int, 0, participantCount)
		for id := 1; id <= participantCount; id++ {
			round = append(round, id)
		}
		return RoundPlan{TotalRounds: 1, Rounds: [][]int{round}}, nil
	}

	if participantCount < 2 || participantCount > 8 {
		return RoundPlan{}, configErr("supported participant counts are 2-8, got %d", participantCount)
	}

	totalRounds := participantCount
	if participantCount >= 7 {
		totalRounds = 4
	} else if participantCount >= 5 {
		totalRounds = 3
	}

	bandSize := (participantCount + totalRounds - 1) / totalRounds
	rounds := make([][]int, 0, totalRounds)
	for i := 0; i < totalRounds; i++ {
		start := i*bandSize + 1
		end := (i + 1) * bandSize
		if end > participantCount {
			end = participantCount
		}
		band := make([]int, 0, end-start+1)
		for id := start; id <= end; id++ {
			band = append(band, id)
		}
		rounds = append(rounds, band)
	}
	return RoundPlan{TotalRounds: totalRounds, Rounds: rounds}, nil
}
