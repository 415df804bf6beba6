package hand

// Position is a table-position label derived from the button
type Position string

// position constants
const (
	PositionButton     Position = "BTN"
	PositionSmallBlind Position = "SB"
	PositionBigBlind   Position = "BB"
	PositionUTG        Position = "UTG"
	PositionUTG1       Position = "UTG+1"
	PositionUTG2       Position = "UTG+2"
	PositionMiddle     Position = "MP"
	PositionLojack     Position = "LJ"
	PositionHijack     Position = "HJ"
	PositionCutoff     Position = "CO"
)

// positionsBySize maps a table size to labels in clockwise order from the button
// Heads-up the blind seats wrap: the seat after the button posts the small
// blind and the big blind falls back on the button, which keeps its BTN label.
var positionsBySize = map[int][]Position{
	2:  {PositionButton, PositionSmallBlind},
	3:  {PositionButton, PositionSmallBlind, PositionBigBlind},
	4:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG},
	5:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionCutoff},
	6:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionHijack, PositionCutoff},
	7:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionUTG1, PositionHijack, PositionCutoff},
	8:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionUTG1, PositionMiddle, PositionHijack, PositionCutoff},
	9:  {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionUTG1, PositionUTG2, PositionMiddle, PositionHijack, PositionCutoff},
	10: {PositionButton, PositionSmallBlind, PositionBigBlind, PositionUTG, PositionUTG1, PositionUTG2, PositionMiddle, PositionLojack, PositionHijack, PositionCutoff},
}

// PositionAssignments returns each player's position label for the hand
// Players must be in physical seat order. Returns ErrButtonNotSeated if the
// button player is not among them. Table sizes outside 2-10 fall back to a
// minimal BTN/SB/BB/UTG heuristic.
func PositionAssignments(players []Player, buttonPlayerID string) (map[string]Position, error) {
	buttonIndex := indexOfPlayer(players, buttonPlayerID)
	if buttonIndex < 0 {
		return nil, ErrButtonNotSeated
	}

	n := len(players)
	labels, supported := positionsBySize[n]

	assignments := make(map[string]Position, n)
	for i, p := range players {
		offset := (i - buttonIndex + n) % n

		if supported {
			assignments[p.ID] = labels[offset]
			continue
		}

		switch offset {
		case 0:
			assignments[p.ID] = PositionButton
		case 1:
			assignments[p.ID] = PositionSmallBlind
		case 2:
			assignments[p.ID] = PositionBigBlind
		default:
			assignments[p.ID] = PositionUTG
		}
	}

	return assignments, nil
}
