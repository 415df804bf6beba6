package live

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerledger-server/pkg/hand"
)

func testPlayers() []hand.Player {
	return []hand.Player{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
		{ID: "c", Name: "Carol"},
		{ID: "d", Name: "Dave"},
	}
}

func TestRegistry_StartHand(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()

	state, err := r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)
	a.Equal(hand.StagePreflop, state.Stage)
	a.Equal(3, state.CurrentIndex, "action opens under the gun")
	a.Equal(1, state.StreetBets["b"])
	a.Equal(2, state.StreetBets["c"])
	a.Equal(3, state.Pot)

	_, err = r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.Equal(ErrHandInProgress, err)

	// a second game gets its own hand
	_, err = r.StartHand("game-2", testPlayers(), "b", 1, 2)
	a.NoError(err)

	got, ok := r.State("game-1")
	a.True(ok)
	a.Equal(state, got)

	_, ok = r.State("game-3")
	a.False(ok)
}

func TestRegistry_StartHand_InvalidButton(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.StartHand("game-1", testPlayers(), "nope", 1, 2)
	a.Equal(hand.ErrButtonNotSeated, err)

	// a failed start must not leave a live hand behind
	_, ok := r.State("game-1")
	a.False(ok)
}

func TestRegistry_ActThroughARound(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)

	snapshot, err := r.Act("game-1", hand.Call, 0)
	a.NoError(err)
	a.False(snapshot.RoundComplete)
	a.Equal(0, snapshot.State.CurrentIndex, "the turn rotates to the button")

	for _, action := range []hand.ActionType{hand.Call, hand.Call} {
		snapshot, err = r.Act("game-1", action, 0)
		a.NoError(err)
		a.False(snapshot.RoundComplete)
	}

	// the big blind checks the option, closing the round without rotating
	snapshot, err = r.Act("game-1", hand.Check, 0)
	a.NoError(err)
	a.True(snapshot.RoundComplete)
	a.False(snapshot.HandComplete)
	a.Equal(2, snapshot.State.CurrentIndex)

	state, err := r.AdvanceStreet("game-1")
	a.NoError(err)
	a.Equal(hand.StageFlop, state.Stage)
	a.Equal(1, state.CurrentIndex)
}

func TestRegistry_ActEndsHandEarly(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)

	for _, want := range []bool{false, false} {
		snapshot, err := r.Act("game-1", hand.Fold, 0)
		a.NoError(err)
		a.Equal(want, snapshot.HandComplete)
	}

	snapshot, err := r.Act("game-1", hand.Fold, 0)
	a.NoError(err)
	a.True(snapshot.HandComplete)
	a.Equal("c", snapshot.WinnerID, "the big blind takes it down")

	state, err := r.Complete("game-1")
	a.NoError(err)
	a.Equal(snapshot.State, state)

	_, err = r.Complete("game-1")
	a.Equal(ErrNoLiveHand, err)
}

func TestRegistry_AdvanceStreetGuard(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.AdvanceStreet("game-1")
	a.Equal(ErrNoLiveHand, err)

	_, err = r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)

	_, err = r.AdvanceStreet("game-1")
	a.Equal(ErrRoundNotComplete, err)
}

func TestRegistry_ActErrors(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.Act("game-1", hand.Call, 0)
	a.Equal(ErrNoLiveHand, err)

	_, err = r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)

	_, err = r.Act("game-1", hand.Raise, 1)
	a.Error(err)

	// the failed action must not have advanced the turn
	state, ok := r.State("game-1")
	a.True(ok)
	a.Equal(3, state.CurrentIndex)
}

func TestRegistry_Abort(t *testing.T) {
	a := assert.New(t)

	r := NewRegistry()
	_, err := r.StartHand("game-1", testPlayers(), "a", 1, 2)
	a.NoError(err)

	r.Abort("game-1")
	_, ok := r.State("game-1")
	a.False(ok)

	_, err = r.StartHand("game-1", testPlayers(), "b", 1, 2)
	a.NoError(err)
}
