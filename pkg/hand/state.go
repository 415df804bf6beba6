package hand

import (
	"errors"
	"fmt"
)

// NoAggressor is the AggressorIndex value when no bet or raise has reopened the street
const NoAggressor = -1

// ErrButtonNotSeated is returned when the button player is not in the seat order
var ErrButtonNotSeated = errors.New("button player is not seated in the hand")

// Player is a seat in the hand
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActionRecord is a single recorded action on a street
// Amount is the chips added to the pot by the action, not the bet-to total.
type ActionRecord struct {
	PlayerID string     `json:"playerId"`
	Action   ActionType `json:"action"`
	Amount   int        `json:"amount"`
	Sequence int        `json:"sequence"`
}

// State is the full state of one hand in progress
// State is a value type: Apply, AdvanceTurn, and NextStreet return a fresh
// copy and never mutate the receiver.
type State struct {
	Stage          Stage           `json:"stage"`
	ActivePlayers  []Player        `json:"activePlayers"`
	PlayersInHand  map[string]bool `json:"playersInHand"`
	ButtonIndex    int             `json:"buttonIndex"`
	CurrentIndex   int             `json:"currentIndex"`
	CurrentBet     int             `json:"currentBet"`
	Pot            int             `json:"pot"`
	StreetBets     map[string]int  `json:"streetBets"`
	TotalBets      map[string]int  `json:"totalBets"`
	StreetActions  []ActionRecord  `json:"streetActions"`
	ActionSequence int             `json:"actionSequence"`
	AggressorIndex int             `json:"aggressorIndex"`
}

// NewState creates a hand in the setup stage
// The players must be provided in physical seat order; the seat order is fixed
// for the duration of the hand. Advance to preflop with NextStreet.
func NewState(players []Player, buttonPlayerID string) (State, error) {
	if len(players) < 2 {
		return State{}, errors.New("a hand requires at least two players")
	}

	buttonIndex := indexOfPlayer(players, buttonPlayerID)
	if buttonIndex < 0 {
		return State{}, ErrButtonNotSeated
	}

	active := make([]Player, len(players))
	copy(active, players)

	inHand := make(map[string]bool, len(active))
	streetBets := make(map[string]int, len(active))
	totalBets := make(map[string]int, len(active))
	for _, p := range active {
		if inHand[p.ID] {
			return State{}, fmt.Errorf("player %s is seated twice", p.ID)
		}

		inHand[p.ID] = true
		streetBets[p.ID] = 0
		totalBets[p.ID] = 0
	}

	return State{
		Stage:          StageSetup,
		ActivePlayers:  active,
		PlayersInHand:  inHand,
		ButtonIndex:    buttonIndex,
		CurrentIndex:   buttonIndex,
		StreetActions:  make([]ActionRecord, 0),
		AggressorIndex: NoAggressor,
	}, nil
}

// CurrentPlayer returns the player who is to act next
func (s State) CurrentPlayer() Player {
	return s.ActivePlayers[s.CurrentIndex]
}

// Apply records an action by the current player and returns the new state
// For a raise, amount is the new bet-to total for the street, not the delta.
// For blinds, amount is the blind size. Turn rotation is left to AdvanceTurn.
func (s State) Apply(action ActionType, amount int) (State, error) {
	if !action.IsValid() {
		return State{}, fmt.Errorf("%s is not a valid action", action)
	}

	if !s.Stage.IsBetting() {
		return State{}, fmt.Errorf("cannot act during the %s stage", s.Stage)
	}

	actor := s.CurrentPlayer()
	if !s.PlayersInHand[actor.ID] {
		return State{}, fmt.Errorf("player %s is no longer in the hand", actor.ID)
	}

	next := s.clone()

	additional := 0
	switch action {
	case Fold:
		delete(next.PlayersInHand, actor.ID)
	case Check:
		if s.CurrentBet > s.StreetBets[actor.ID] {
			return State{}, fmt.Errorf("cannot check facing a bet of ${%d}", s.CurrentBet)
		}
	case Call:
		additional = s.CurrentBet - s.StreetBets[actor.ID]
	case Raise:
		if amount <= s.CurrentBet {
			return State{}, fmt.Errorf("raise to ${%d} must exceed the current bet of ${%d}", amount, s.CurrentBet)
		}

		additional = amount - s.StreetBets[actor.ID]
		next.CurrentBet = amount
		next.AggressorIndex = s.CurrentIndex
	case SmallBlind, BigBlind:
		additional = amount
		if amount > next.CurrentBet {
			next.CurrentBet = amount
		}

		// the big blind is the initial preflop aggressor
		if action == BigBlind && s.Stage == StagePreflop {
			next.AggressorIndex = s.CurrentIndex
		}
	}

	next.Pot += additional
	next.StreetBets[actor.ID] += additional
	next.TotalBets[actor.ID] += additional

	next.StreetActions = append(next.StreetActions, ActionRecord{
		PlayerID: actor.ID,
		Action:   action,
		Amount:   additional,
		Sequence: s.ActionSequence,
	})
	next.ActionSequence++

	return next, nil
}

// PostBlind records a forced blind post, attributed to the blind seat rather
// than the player on the clock
// The small blind is the seat after the button, the big blind the seat after
// that. A big blind post makes that seat the initial preflop aggressor.
func (s State) PostBlind(action ActionType, amount int) (State, error) {
	if !action.IsBlind() {
		return State{}, fmt.Errorf("%s is not a blind", action)
	}

	if s.Stage != StagePreflop {
		return State{}, fmt.Errorf("cannot post blinds during the %s stage", s.Stage)
	}

	n := len(s.ActivePlayers)
	seat := (s.ButtonIndex + 1) % n
	if action == BigBlind {
		seat = (s.ButtonIndex + 2) % n
	}

	poster := s.ActivePlayers[seat]

	next := s.clone()
	if amount > next.CurrentBet {
		next.CurrentBet = amount
	}

	if action == BigBlind {
		next.AggressorIndex = seat
	}

	next.Pot += amount
	next.StreetBets[poster.ID] += amount
	next.TotalBets[poster.ID] += amount

	next.StreetActions = append(next.StreetActions, ActionRecord{
		PlayerID: poster.ID,
		Action:   action,
		Amount:   amount,
		Sequence: s.ActionSequence,
	})
	next.ActionSequence++

	return next, nil
}

// AdvanceTurn rotates the action to the next eligible seat
func (s State) AdvanceTurn() State {
	next := s.clone()
	next.CurrentIndex = NextPlayerIndex(s.CurrentIndex, s.ActivePlayers, s.PlayersInHand)
	return next
}

// NextStreet advances the stage and resets the per-street betting state
// The pot and per-player hand totals carry over untouched.
func (s State) NextStreet() State {
	next := s.clone()
	next.Stage = s.Stage.Next()

	startIndex := StartingPlayerIndex(next.Stage, s.ActivePlayers, s.ActivePlayers[s.ButtonIndex].ID)
	if !s.PlayersInHand[s.ActivePlayers[startIndex].ID] {
		startIndex = NextPlayerIndex(startIndex, s.ActivePlayers, s.PlayersInHand)
	}

	next.CurrentIndex = startIndex
	next.CurrentBet = 0
	next.AggressorIndex = NoAggressor
	next.StreetActions = make([]ActionRecord, 0)
	for _, p := range s.ActivePlayers {
		next.StreetBets[p.ID] = 0
	}

	return next
}

// ShouldEndHandEarly reports whether everyone but one player has folded
// When true, the remaining player's ID is returned as the winner.
func (s State) ShouldEndHandEarly() (bool, string) {
	if len(s.PlayersInHand) != 1 {
		return false, ""
	}

	for _, p := range s.ActivePlayers {
		if s.PlayersInHand[p.ID] {
			return true, p.ID
		}
	}

	// PlayersInHand is always a subset of ActivePlayers
	panic("player in hand is not seated")
}

// IsBettingRoundComplete reports whether the street's betting has closed
//
// Bet equality alone is not enough: a raise reopens the action, and every
// remaining player must have acted after the most recent raise (or the big
// blind post during preflop) before the round can close.
func (s State) IsBettingRoundComplete() bool {
	if len(s.PlayersInHand) <= 1 {
		return true
	}

	// every remaining player must match the street's high bet
	highBet := 0
	for id := range s.PlayersInHand {
		if bet := s.StreetBets[id]; bet > highBet {
			highBet = bet
		}
	}

	for id := range s.PlayersInHand {
		if s.StreetBets[id] != highBet {
			return false
		}
	}

	if !s.everyoneActedSinceAggression() {
		return false
	}

	if s.Stage == StagePreflop {
		// the blind seats get an option even when nobody raised
		n := len(s.ActivePlayers)
		smallBlindID := s.ActivePlayers[(s.ButtonIndex+1)%n].ID
		bigBlindID := s.ActivePlayers[(s.ButtonIndex+2)%n].ID

		return s.hasNonBlindAction(smallBlindID) && s.hasNonBlindAction(bigBlindID)
	}

	// postflop, everyone remaining must have acted this street
	for id := range s.PlayersInHand {
		if !s.hasAction(id) {
			return false
		}
	}

	return true
}

// everyoneActedSinceAggression verifies that each remaining player other than
// the aggressor has an action recorded after the aggressor's most recent
// qualifying action (a raise, or the big blind post during preflop)
func (s State) everyoneActedSinceAggression() bool {
	if s.AggressorIndex == NoAggressor {
		return true
	}

	aggressorID := s.ActivePlayers[s.AggressorIndex].ID

	reopenedAt := -1
	for i := len(s.StreetActions) - 1; i >= 0; i-- {
		rec := s.StreetActions[i]
		if rec.PlayerID != aggressorID {
			continue
		}

		if rec.Action == Raise || (s.Stage == StagePreflop && rec.Action == BigBlind) {
			reopenedAt = i
			break
		}
	}

	if reopenedAt < 0 {
		return true
	}

	for id := range s.PlayersInHand {
		if id == aggressorID {
			continue
		}

		acted := false
		for i := reopenedAt + 1; i < len(s.StreetActions); i++ {
			if s.StreetActions[i].PlayerID == id {
				acted = true
				break
			}
		}

		if !acted {
			return false
		}
	}

	return true
}

func (s State) hasAction(playerID string) bool {
	for _, rec := range s.StreetActions {
		if rec.PlayerID == playerID {
			return true
		}
	}

	return false
}

func (s State) hasNonBlindAction(playerID string) bool {
	for _, rec := range s.StreetActions {
		if rec.PlayerID == playerID && !rec.Action.IsBlind() {
			return true
		}
	}

	return false
}

// StartingPlayerIndex returns the seat that opens the action for a stage
// Preflop the first to act is three seats past the button (under the gun);
// postflop it is the first seat past the button. Falls back to seat 0 if the
// button player cannot be found.
func StartingPlayerIndex(stage Stage, players []Player, buttonPlayerID string) int {
	buttonIndex := indexOfPlayer(players, buttonPlayerID)
	if buttonIndex < 0 {
		return 0
	}

	n := len(players)
	if stage == StagePreflop {
		return (buttonIndex + 3) % n
	}

	return (buttonIndex + 1) % n
}

// NextPlayerIndex returns the next seat clockwise still in the hand
// If a full lap finds no eligible seat, the index is returned unchanged;
// callers should treat that as a signal to re-check ShouldEndHandEarly.
func NextPlayerIndex(currentIndex int, players []Player, playersInHand map[string]bool) int {
	n := len(players)
	for i := 1; i <= n; i++ {
		index := (currentIndex + i) % n
		if playersInHand[players[index].ID] {
			return index
		}
	}

	return currentIndex
}

func (s State) clone() State {
	next := s

	next.ActivePlayers = make([]Player, len(s.ActivePlayers))
	copy(next.ActivePlayers, s.ActivePlayers)

	next.PlayersInHand = make(map[string]bool, len(s.PlayersInHand))
	for id := range s.PlayersInHand {
		next.PlayersInHand[id] = true
	}

	next.StreetBets = make(map[string]int, len(s.StreetBets))
	for id, bet := range s.StreetBets {
		next.StreetBets[id] = bet
	}

	next.TotalBets = make(map[string]int, len(s.TotalBets))
	for id, bet := range s.TotalBets {
		next.TotalBets[id] = bet
	}

	next.StreetActions = make([]ActionRecord, len(s.StreetActions))
	copy(next.StreetActions, s.StreetActions)

	return next
}

func indexOfPlayer(players []Player, playerID string) int {
	for i, p := range players {
		if p.ID == playerID {
			return i
		}
	}

	return -1
}
