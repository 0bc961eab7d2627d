package server

import "testing"

func entryWithTotal(id int, name string, total int) ScoreEntry {
	return ScoreEntry{
		ParticipantID: id,
		DisplayName:   name,
		RoundScores:   []int{total},
	}
}

func TestComputeStandingsSingleWinner(t *testing.T) {
	standings := computeStandings([]ScoreEntry{
		entryWithTotal(1, "A", 30),
		entryWithTotal(2, "B", 10),
	})
	if standings[0].Label != labelWin || standings[0].DisplayName != "A" {
		t.Fatalf("expected A to win, got %+v", standings[0])
	}
	if standings[1].Label != labelLoss || standings[1].DisplayName != "B" {
		t.Fatalf("expected B to lose, got %+v", standings[1])
	}
}

func TestComputeStandingsTieAtTop(t *testing.T) {
	standings := computeStandings([]ScoreEntry{
		entryWithTotal(1, "A", 30),
		entryWithTotal(2, "B", 30),
		entryWithTotal(3, "C", 10),
	})
	order := []string{"A", "B", "C"}
	labels := []string{labelTie, labelTie, labelLoss}
	for i := range standings {
		if standings[i].DisplayName != order[i] {
			t.Fatalf("position %d: expected %s, got %s", i, order[i], standings[i].DisplayName)
		}
		if standings[i].Label != labels[i] {
			t.Fatalf("position %d: expected label %s, got %s", i, labels[i], standings[i].Label)
		}
		if standings[i].Rank != i+1 {
			t.Fatalf("position %d: expected rank %d, got %d", i, i+1, standings[i].Rank)
		}
	}
}

func TestComputeStandingsStableOnTies(t *testing.T) {
	standings := computeStandings([]ScoreEntry{
		entryWithTotal(1, "A", 10),
		entryWithTotal(2, "B", 25),
		entryWithTotal(3, "C", 10),
		entryWithTotal(4, "D", 10),
	})
	order := []string{"B", "A", "C", "D"}
	for i, name := range order {
		if standings[i].DisplayName != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, standings[i].DisplayName)
		}
	}
}

func TestComputeStandingsDeterministic(t *testing.T) {
	entries := []ScoreEntry{
		entryWithTotal(1, "A", 20),
		entryWithTotal(2, "B", 20),
		entryWithTotal(3, "C", 5),
	}
	first := computeStandings(entries)
	second := computeStandings(entries)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
