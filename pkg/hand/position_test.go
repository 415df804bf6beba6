package hand

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func playersOfSize(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{ID: fmt.Sprintf("p%d", i)}
	}

	return players
}

func TestPositionAssignments(t *testing.T) {
	a := assert.New(t)

	players := playersOfSize(6)
	assignments, err := PositionAssignments(players, "p2")
	a.NoError(err)
	a.Equal(map[string]Position{
		"p2": PositionButton,
		"p3": PositionSmallBlind,
		"p4": PositionBigBlind,
		"p5": PositionUTG,
		"p0": PositionHijack,
		"p1": PositionCutoff,
	}, assignments)
}

func TestPositionAssignments_HeadsUp(t *testing.T) {
	a := assert.New(t)

	assignments, err := PositionAssignments(playersOfSize(2), "p1")
	a.NoError(err)
	a.Equal(map[string]Position{
		"p1": PositionButton,
		"p0": PositionSmallBlind,
	}, assignments, "the seat after the button posts the small blind")
}

func TestPositionAssignments_AllSupportedSizes(t *testing.T) {
	a := assert.New(t)

	runTest := func(t *testing.T, size int) {
		t.Helper()

		players := playersOfSize(size)
		assignments, err := PositionAssignments(players, "p0")
		a.NoError(err)
		a.Len(assignments, size)

		a.Equal(PositionButton, assignments["p0"])
		if size > 2 {
			a.Equal(PositionSmallBlind, assignments["p1"])
			a.Equal(PositionBigBlind, assignments["p2"])
		}

		seen := make(map[Position]bool, size)
		for _, position := range assignments {
			a.False(seen[position], "position %s assigned twice at size %d", position, size)
			seen[position] = true
		}
	}

	for size := 2; size <= 10; size++ {
		runTest(t, size)
	}
}

func TestPositionAssignments_FallbackHeuristic(t *testing.T) {
	a := assert.New(t)

	players := playersOfSize(12)
	assignments, err := PositionAssignments(players, "p0")
	a.NoError(err)

	a.Equal(PositionButton, assignments["p0"])
	a.Equal(PositionSmallBlind, assignments["p1"])
	a.Equal(PositionBigBlind, assignments["p2"])
	for i := 3; i < 12; i++ {
		a.Equal(PositionUTG, assignments[fmt.Sprintf("p%d", i)])
	}
}

func TestPositionAssignments_ButtonNotSeated(t *testing.T) {
	a := assert.New(t)

	_, err := PositionAssignments(playersOfSize(4), "p9")
	a.Equal(ErrButtonNotSeated, err)
}
