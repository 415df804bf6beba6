package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerledger-server/pkg/db"
	"pokerledger-server/pkg/settle"
	"pokerledger-server/pkg/token"
)

const gameColumns = `
games.uuid,
games.name,
games.share_slug,
games.created,
games.completed`

// Game represents a single poker night
// A game has many seated players, buy-ins, final stacks, hands, and settlements
type Game struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	ShareSlug string    `json:"shareSlug"`
	Created   time.Time `json:"created"`
	Completed time.Time `json:"completed,omitempty"`
}

// ErrPlayerNotInGame happens when a player is not seated in the game
var ErrPlayerNotInGame = UserError("player is not part of the game")

func getGameByRow(row db.Scanner) (*Game, error) {
	var g Game
	var completed sql.NullTime

	if err := row.Scan(&g.UUID, &g.Name, &g.ShareSlug, &g.Created, &completed); err != nil {
		return nil, err
	}

	g.Completed = completed.Time
	return &g, nil
}

// CreateGame creates a new game with a fresh share slug
func CreateGame(ctx context.Context, name string) (*Game, error) {
	slug, err := token.GenerateShareSlug()
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO games (uuid, name, share_slug)
VALUES ($1, $2, $3)
RETURNING ` + gameColumns

	row := db.Instance().QueryRowContext(ctx, query, uuid.New().String(), name, slug)
	return getGameByRow(row)
}

// GetGameByUUID returns a game by its UUID
func GetGameByUUID(ctx context.Context, gameUUID string) (*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, gameUUID)
	return getGameByRow(row)
}

// GetGameByShareSlug returns a game by the slug embedded in its share link
func GetGameByShareSlug(ctx context.Context, slug string) (*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
WHERE share_slug = $1`

	row := db.Instance().QueryRowContext(ctx, query, slug)
	return getGameByRow(row)
}

// Complete marks the game as finished
func (g *Game) Complete(ctx context.Context) error {
	const query = `
UPDATE games
SET completed = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $1
RETURNING completed`

	var completed time.Time
	if err := db.Instance().QueryRowContext(ctx, query, g.UUID).Scan(&completed); err != nil {
		return err
	}

	g.Completed = completed
	return nil
}

// Balances returns each seated player's net result and payment preference
// Net is the final stack minus the total buy-in; the rows feed the settlement engine.
func (g *Game) Balances(ctx context.Context) ([]settle.PlayerBalance, error) {
	const query = `
SELECT players.display_name, games_players.final_stack - games_players.buy_in, players.payment_preference
FROM games_players
INNER JOIN players ON games_players.player_id = players.id
WHERE games_players.game_uuid = $1
ORDER BY games_players.seat`

	rows, err := db.Instance().QueryContext(ctx, query, g.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]settle.PlayerBalance, 0)
	for rows.Next() {
		var b settle.PlayerBalance
		if err := rows.Scan(&b.Name, &b.Amount, &b.Method); err != nil {
			return nil, err
		}

		balances = append(balances, b)
	}

	return balances, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
