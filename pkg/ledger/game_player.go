package ledger

import (
	"context"
	"time"

	"github.com/lib/pq"

	"pokerledger-server/pkg/db"
)

const gamePlayerColumns = `
games_players.id,
games_players.game_uuid,
games_players.player_id,
games_players.seat,
games_players.buy_in,
games_players.final_stack,
games_players.created,
games_players.updated`

// GamePlayer represents a row in the games_players table
// Seat is the player's physical position at the table and fixes the clockwise
// action order for every hand of the game.
type GamePlayer struct {
	Player     *Player   `json:"player"`
	ID         int64     `json:"id"`
	GameUUID   string    `json:"gameUuid"`
	PlayerID   int64     `json:"playerId"`
	Seat       int       `json:"seat"`
	BuyIn      float64   `json:"buyIn"`
	FinalStack float64   `json:"finalStack"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

func getGamePlayerByRow(row db.Scanner) (*GamePlayer, error) {
	var p Player
	var gp GamePlayer

	if err := row.Scan(&p.ID, &p.DisplayName, &p.PaymentPreference, &p.Created, &p.Updated,
		&gp.ID, &gp.GameUUID, &gp.PlayerID, &gp.Seat, &gp.BuyIn, &gp.FinalStack, &gp.Created, &gp.Updated); err != nil {
		return nil, err
	}

	gp.Player = &p
	return &gp, nil
}

// AddPlayer seats a player in the game with an initial buy-in
func (g *Game) AddPlayer(ctx context.Context, playerID int64, seat int, buyIn float64) (*GamePlayer, error) {
	const query = `
INSERT INTO games_players (game_uuid, player_id, seat, buy_in)
VALUES ($1, $2, $3, $4)
RETURNING id, created, updated`

	gp := GamePlayer{
		GameUUID: g.UUID,
		PlayerID: playerID,
		Seat:     seat,
		BuyIn:    buyIn,
	}

	row := db.Instance().QueryRowContext(ctx, query, g.UUID, playerID, seat, buyIn)
	if err := row.Scan(&gp.ID, &gp.Created, &gp.Updated); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, UserError("player or seat is already taken")
		}

		return nil, err
	}

	return &gp, nil
}

// GetPlayers returns all seated players in seat order
func (g *Game) GetPlayers(ctx context.Context) ([]*GamePlayer, error) {
	const query = `
SELECT ` + playerColumns + `, ` + gamePlayerColumns + `
FROM games_players
INNER JOIN players ON games_players.player_id = players.id
WHERE games_players.game_uuid = $1
ORDER BY games_players.seat`

	rows, err := db.Instance().QueryContext(ctx, query, g.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*GamePlayer, 0)
	for rows.Next() {
		gp, err := getGamePlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, gp)
	}

	return records, nil
}

// GetGamePlayer returns the seat record for a player in the game
func (g *Game) GetGamePlayer(ctx context.Context, playerID int64) (*GamePlayer, error) {
	const query = `
SELECT ` + playerColumns + `, ` + gamePlayerColumns + `
FROM games_players
INNER JOIN players ON games_players.player_id = players.id
WHERE games_players.game_uuid = $1
  AND games_players.player_id = $2`

	row := db.Instance().QueryRowContext(ctx, query, g.UUID, playerID)
	return getGamePlayerByRow(row)
}

// AddBuyIn records an additional buy-in for the player
func (gp *GamePlayer) AddBuyIn(ctx context.Context, amount float64) error {
	const query = `
UPDATE games_players
SET buy_in = buy_in + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING buy_in`

	return db.Instance().QueryRowContext(ctx, query, amount, gp.ID).Scan(&gp.BuyIn)
}

// SetFinalStack records the player's stack at the end of the night
func (gp *GamePlayer) SetFinalStack(ctx context.Context, amount float64) error {
	const query = `
UPDATE games_players
SET final_stack = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	_, err := db.Instance().ExecContext(ctx, query, amount, gp.ID)
	if err != nil {
		return err
	}

	gp.FinalStack = amount
	return nil
}
