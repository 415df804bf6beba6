package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	"pokerledger-server/pkg/db"
	"pokerledger-server/pkg/settle"
)

const playerColumns = `
players.id,
players.display_name,
players.payment_preference,
players.created,
players.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a user tries to create a player with a taken display name
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Player is a record in the `players` table
type Player struct {
	ID                int64                `json:"id"`
	DisplayName       string               `json:"displayName"`
	PaymentPreference settle.PaymentMethod `json:"paymentPreference"`
	Created           time.Time            `json:"created"`
	Updated           time.Time            `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.DisplayName, &player.PaymentPreference, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player
// Display names are unique; payment preference defaults to digital when empty.
func CreatePlayer(ctx context.Context, displayName string, preference settle.PaymentMethod) (*Player, error) {
	if preference == "" {
		preference = settle.Digital
	}

	const query = `
INSERT INTO players (display_name, payment_preference)
VALUES ($1, $2)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, displayName, preference)
	player, err := getPlayerByRow(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// GetPlayers returns a page of players ordered by display name
func GetPlayers(ctx context.Context, start int64, rows int) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
ORDER BY lower(display_name)
OFFSET $1 LIMIT $2`

	result, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	players := make([]*Player, 0)
	for result.Next() {
		player, err := getPlayerByRow(result)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}

// Save will persist any changes made to the player to the database
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET display_name = $1,
    payment_preference = $2,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $3`

	_, err := db.Instance().ExecContext(ctx, query, p.DisplayName, p.PaymentPreference, p.ID)
	return err
}
