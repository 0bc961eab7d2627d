package server

import (
	"math/rand"
	"strconv"
)

const (
	gridRows  = 3
	gridCols  = 5
	gridCells = gridRows * gridCols

	cellsPerTeam = 3
)

// buildScoringGrid returns the 3x5 target layout for a game type. The
// skeeball and shooter boards are fixed; the relay board scatters three
// cells per team using the supplied source, so callers own the seeding.
func buildScoringGrid(gameType string, teamCount int, rng *rand.Rand) [][]GridCell {
	switch gameType {
	case gameTypeShooter:
		return shooterGrid()
	case gameTypeRelay:
		return relayGrid(teamCount, rng)
	default:
		return skeeballGrid()
	}
}

func skeeballGrid() [][]GridCell {
	values := [gridRows][gridCols]int{
		{50, 25, 15, 25, 50},
		{25, -10, 10, -10, 25},
		{15, 10, 10, 10, 15},
	}
	grid := emptyGrid()
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			grid[row][col] = GridCell{
				Value: values[row][col],
				Label: strconv.Itoa(values[row][col]),
			}
		}
	}
	return grid
}

func shooterGrid() [][]GridCell {
	labels := [gridRows][gridCols]string{
		{"1", "2", "3", "4", "5"},
		{"6", "X", "X", "X", "7"},
		{"8", "X", "X", "X", "9"},
	}
	grid := emptyGrid()
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			label := labels[row][col]
			cell := GridCell{Label: label}
			if label != "X" {
				cell.Value, _ = strconv.Atoi(label)
			}
			grid[row][col] = cell
		}
	}
	return grid
}

// relayGrid assigns exactly cellsPerTeam cells to each of the first
// teamCount colors; leftover cells stay neutral when fewer than four
// teams play.
func relayGrid(teamCount int, rng *rand.Rand) [][]GridCell {
	if teamCount > len(teamColors) {
		teamCount = len(teamColors)
	}
	grid := emptyGrid()
	order := rng.Perm(gridCells)
	for team := 0; team < teamCount; team++ {
		for i := 0; i < cellsPerTeam; i++ {
			idx := order[team*cellsPerTeam+i]
			grid[idx/gridCols][idx%gridCols] = GridCell{
				Value: 1,
				Color: teamColors[team],
			}
		}
	}
	return grid
}

func emptyGrid() [][]GridCell {
	grid := make([][]GridCell, gridRows)
	for row := range grid {
		grid[row] = make([]GridCell, gridCols)
	}
	return grid
}
