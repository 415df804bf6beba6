package ledger

import (
	"context"
	"encoding/json"
	"time"

	"pokerledger-server/pkg/db"
	"pokerledger-server/pkg/hand"
)

const handColumns = `
hands.id,
hands.game_uuid,
hands.hand_number,
hands.button_player_id,
hands.pot,
hands.winner_id,
hands.state,
hands.created`

// HandRecord is a completed hand persisted for the game's hand history
// State is the final hand.State snapshot, stored as JSON.
type HandRecord struct {
	ID             int64      `json:"id"`
	GameUUID       string     `json:"gameUuid"`
	HandNumber     int        `json:"handNumber"`
	ButtonPlayerID string     `json:"buttonPlayerId"`
	Pot            int        `json:"pot"`
	WinnerID       string     `json:"winnerId,omitempty"`
	State          hand.State `json:"state"`
	Created        time.Time  `json:"created"`
}

// SaveHand appends a completed hand to the game's hand history
// The hand number is assigned from the count of hands already recorded.
func (g *Game) SaveHand(ctx context.Context, state hand.State, winnerID string) (*HandRecord, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO hands (game_uuid, hand_number, button_player_id, pot, winner_id, state)
VALUES ($1, (SELECT COUNT(id) + 1 FROM hands WHERE game_uuid = $1), $2, $3, $4, $5)
RETURNING id, hand_number, created`

	record := HandRecord{
		GameUUID:       g.UUID,
		ButtonPlayerID: state.ActivePlayers[state.ButtonIndex].ID,
		Pot:            state.Pot,
		WinnerID:       winnerID,
		State:          state,
	}

	row := db.Instance().QueryRowContext(ctx, query, g.UUID, record.ButtonPlayerID, state.Pot, winnerID, b)
	if err := row.Scan(&record.ID, &record.HandNumber, &record.Created); err != nil {
		return nil, err
	}

	return &record, nil
}

// GetHands returns the game's completed hands in the order they were played
func (g *Game) GetHands(ctx context.Context) ([]*HandRecord, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE game_uuid = $1
ORDER BY hands.hand_number`

	rows, err := db.Instance().QueryContext(ctx, query, g.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*HandRecord, 0)
	for rows.Next() {
		var record HandRecord
		var state []byte

		if err := rows.Scan(&record.ID, &record.GameUUID, &record.HandNumber, &record.ButtonPlayerID,
			&record.Pot, &record.WinnerID, &state, &record.Created); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(state, &record.State); err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	return records, nil
}
