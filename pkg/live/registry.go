// Package live tracks the in-progress hand for each game
//
// A game records at most one live hand at a time. The registry owns the hand
// state and serializes all mutations, so callers never apply concurrent
// actions to the same hand.
package live

import (
	"errors"
	"sync"

	"pokerledger-server/pkg/hand"
)

// ErrNoLiveHand is returned when the game has no hand in progress
var ErrNoLiveHand = errors.New("game has no live hand")

// ErrHandInProgress is returned when starting a hand while one is live
var ErrHandInProgress = errors.New("game already has a live hand")

// ErrRoundNotComplete is returned when advancing the street before betting has closed
var ErrRoundNotComplete = errors.New("betting round is not complete")

// Snapshot is the state of a live hand after an action, with the round- and
// hand-level completion flags the caller needs to decide what happens next
type Snapshot struct {
	State         hand.State `json:"state"`
	RoundComplete bool       `json:"roundComplete"`
	HandComplete  bool       `json:"handComplete"`
	WinnerID      string     `json:"winnerId,omitempty"`
}

// Registry tracks live hands keyed by game UUID
type Registry struct {
	mu    sync.Mutex
	hands map[string]hand.State
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		hands: make(map[string]hand.State),
	}
}

// StartHand deals a new hand for the game, advances it to preflop, and posts
// the blinds from the two seats after the button
func (r *Registry) StartHand(gameUUID string, players []hand.Player, buttonPlayerID string, smallBlind, bigBlind int) (hand.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hands[gameUUID]; ok {
		return hand.State{}, ErrHandInProgress
	}

	state, err := hand.NewState(players, buttonPlayerID)
	if err != nil {
		return hand.State{}, err
	}

	state = state.NextStreet()

	if smallBlind > 0 {
		if state, err = state.PostBlind(hand.SmallBlind, smallBlind); err != nil {
			return hand.State{}, err
		}
	}

	if bigBlind > 0 {
		if state, err = state.PostBlind(hand.BigBlind, bigBlind); err != nil {
			return hand.State{}, err
		}
	}

	r.hands[gameUUID] = state
	return state, nil
}

// State returns the game's live hand, if any
func (r *Registry) State(gameUUID string) (hand.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.hands[gameUUID]
	return state, ok
}

// Act applies an action by the current player and rotates the turn
// The turn does not rotate once the betting round has closed or the hand has
// ended early; the snapshot flags tell the caller which happened.
func (r *Registry) Act(gameUUID string, action hand.ActionType, amount int) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.hands[gameUUID]
	if !ok {
		return Snapshot{}, ErrNoLiveHand
	}

	next, err := state.Apply(action, amount)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{}
	if shouldEnd, winnerID := next.ShouldEndHandEarly(); shouldEnd {
		snapshot.HandComplete = true
		snapshot.WinnerID = winnerID
	} else if next.IsBettingRoundComplete() {
		snapshot.RoundComplete = true
	} else {
		next = next.AdvanceTurn()
	}

	r.hands[gameUUID] = next
	snapshot.State = next
	return snapshot, nil
}

// AdvanceStreet moves the live hand to its next street
// Returns ErrRoundNotComplete unless the current street's betting has closed.
func (r *Registry) AdvanceStreet(gameUUID string) (hand.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.hands[gameUUID]
	if !ok {
		return hand.State{}, ErrNoLiveHand
	}

	if state.Stage.IsBetting() && !state.IsBettingRoundComplete() {
		return hand.State{}, ErrRoundNotComplete
	}

	next := state.NextStreet()
	r.hands[gameUUID] = next
	return next, nil
}

// Complete removes the live hand and returns its final state
func (r *Registry) Complete(gameUUID string) (hand.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.hands[gameUUID]
	if !ok {
		return hand.State{}, ErrNoLiveHand
	}

	delete(r.hands, gameUUID)
	return state, nil
}

// Abort discards the live hand without recording it
func (r *Registry) Abort(gameUUID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.hands, gameUUID)
}
