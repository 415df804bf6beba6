package hand

import "fmt"

// ActionType represents an action a player can take during a betting street
type ActionType string

// action constants
const (
	Fold       ActionType = "fold"
	Check      ActionType = "check"
	Call       ActionType = "call"
	Raise      ActionType = "raise"
	SmallBlind ActionType = "small-blind"
	BigBlind   ActionType = "big-blind"
)

var allowedActions = map[ActionType]bool{
	Fold:       true,
	Check:      true,
	Call:       true,
	Raise:      true,
	SmallBlind: true,
	BigBlind:   true,
}

// ActionTypeFromString returns an action type for the given identifier
func ActionTypeFromString(s string) (ActionType, error) {
	if _, ok := allowedActions[ActionType(s)]; ok {
		return ActionType(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

// IsValid returns true if the action is permitted
func (a ActionType) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// IsBlind returns true for the forced small- and big-blind posts
func (a ActionType) IsBlind() bool {
	return a == SmallBlind || a == BigBlind
}

func (a ActionType) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case SmallBlind:
		return "Small Blind"
	case BigBlind:
		return "Big Blind"
	}

	return string(a)
}

// LogMessage returns a message formatted for the game log
func (a ActionType) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case SmallBlind:
		return fmt.Sprintf("posted the small blind of ${%d}", amount)
	case BigBlind:
		return fmt.Sprintf("posted the big blind of ${%d}", amount)
	}

	return ""
}
