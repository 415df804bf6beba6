package ledger

import (
	"context"
	"time"

	"pokerledger-server/pkg/db"
	"pokerledger-server/pkg/settle"
)

const settlementColumns = `
settlements.id,
settlements.game_uuid,
settlements.from_name,
settlements.to_name,
settlements.amount,
settlements.involves_cash,
settlements.manual,
settlements.confirmed,
settlements.created`

// SettlementRecord is a persisted payment instruction for a game
// Manual records are user-entered transfers; the rest are computed by the
// settlement engine. Confirmed flips when both parties acknowledge payment.
type SettlementRecord struct {
	ID           int64     `json:"id"`
	GameUUID     string    `json:"gameUuid"`
	FromName     string    `json:"from"`
	ToName       string    `json:"to"`
	Amount       float64   `json:"amount"`
	InvolvesCash bool      `json:"involvesCash"`
	Manual       bool      `json:"manual"`
	Confirmed    bool      `json:"confirmed"`
	Created      time.Time `json:"created"`
}

func getSettlementByRow(row db.Scanner) (*SettlementRecord, error) {
	var s SettlementRecord
	if err := row.Scan(&s.ID, &s.GameUUID, &s.FromName, &s.ToName, &s.Amount, &s.InvolvesCash, &s.Manual,
		&s.Confirmed, &s.Created); err != nil {
		return nil, err
	}

	return &s, nil
}

// SaveSettlements replaces the game's unconfirmed computed settlements with a
// freshly computed result and records the manual transfers it was given.
// Confirmed settlements are never touched.
func (g *Game) SaveSettlements(ctx context.Context, result settle.Result, manual []settle.Transfer) ([]*SettlementRecord, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const deleteQuery = `
DELETE FROM settlements
WHERE game_uuid = $1
  AND NOT confirmed`

	if _, err := tx.ExecContext(ctx, deleteQuery, g.UUID); err != nil {
		rollback(tx)
		return nil, err
	}

	const insertQuery = `
INSERT INTO settlements (game_uuid, from_name, to_name, amount, involves_cash, manual)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + settlementColumns

	records := make([]*SettlementRecord, 0, len(manual)+len(result.Settlements))

	for _, t := range manual {
		row := tx.QueryRowContext(ctx, insertQuery, g.UUID, t.From, t.To, t.Amount, false, true)
		record, err := getSettlementByRow(row)
		if err != nil {
			rollback(tx)
			return nil, err
		}

		records = append(records, record)
	}

	for _, s := range result.Settlements {
		row := tx.QueryRowContext(ctx, insertQuery, g.UUID, s.From, s.To, s.Amount, s.InvolvesCashPlayer, false)
		record, err := getSettlementByRow(row)
		if err != nil {
			rollback(tx)
			return nil, err
		}

		records = append(records, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetSettlements returns the game's settlements, oldest first
func (g *Game) GetSettlements(ctx context.Context) ([]*SettlementRecord, error) {
	const query = `
SELECT ` + settlementColumns + `
FROM settlements
WHERE game_uuid = $1
ORDER BY settlements.id`

	rows, err := db.Instance().QueryContext(ctx, query, g.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*SettlementRecord, 0)
	for rows.Next() {
		record, err := getSettlementByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// GetSettlementByID returns a settlement by its ID
func GetSettlementByID(ctx context.Context, id int64) (*SettlementRecord, error) {
	const query = `
SELECT ` + settlementColumns + `
FROM settlements
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getSettlementByRow(row)
}

// Confirm marks the settlement as paid
func (s *SettlementRecord) Confirm(ctx context.Context) error {
	const query = `
UPDATE settlements
SET confirmed = true
WHERE id = $1`

	if _, err := db.Instance().ExecContext(ctx, query, s.ID); err != nil {
		return err
	}

	s.Confirmed = true
	return nil
}
