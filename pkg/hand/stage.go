package hand

import "encoding/json"

// Stage represents where a hand is in its lifecycle
type Stage int

// constants for Stage
const (
	StageSetup Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StageComplete
)

// Next returns the stage that follows
// StageComplete is terminal and returns itself
func (s Stage) Next() Stage {
	if s >= StageComplete {
		return StageComplete
	}

	return s + 1
}

// IsBetting returns true if the stage is a betting street
func (s Stage) IsBetting() bool {
	switch s {
	case StagePreflop, StageFlop, StageTurn, StageRiver:
		return true
	}

	return false
}

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StageComplete:
		return "complete"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// UnmarshalJSON decodes JSON
func (s *Stage) UnmarshalJSON(b []byte) error {
	var payload struct {
		ID int `json:"id"`
	}

	if err := json.Unmarshal(b, &payload); err != nil {
		return err
	}

	*s = Stage(payload.ID)
	return nil
}
