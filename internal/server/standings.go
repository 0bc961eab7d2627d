package server

import "sort"

// computeStandings ranks the ledger by total score, highest first. The
// sort is stable so participants with equal totals keep their original
// order. Everyone sharing the top score is a Tie when there is more than
// one of them, a Win otherwise; the rest are Losses.
func computeStandings(entries []ScoreEntry) []Standing {
	standings := make([]Standing, 0, len(entries))
	for _, entry := range entries {
		standings = append(standings, Standing{
			ParticipantID: entry.ParticipantID,
			DisplayName:   entry.DisplayName,
			Total:         entry.Total(),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total > standings[j].Total
	})
	if len(standings) == 0 {
		return standings
	}

	highest := standings[0].Total
	leaders := 0
	for _, s := range standings {
		if s.Total == highest {
			leaders++
		}
	}
	for i := range standings {
		standings[i].Rank = i + 1
		switch {
		case standings[i].Total != highest:
			standings[i].Label = labelLoss
		case leaders > 1:
			standings[i].Label = labelTie
		default:
			standings[i].Label = labelWin
		}
	}
	return standings
}
