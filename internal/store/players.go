package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const playerColumns = `id, team_id, name, number, position, is_active`

type CreatePlayerParams struct {
	TeamID   string
	Name     string
	Number   int
	Position string
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO players (id, team_id, name, number, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		id, arg.TeamID, arg.Name, arg.Number, arg.Position, now, now,
	)
	if err != nil {
		return Player{}, err
	}
	return q.GetPlayer(ctx, id)
}

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	return scanPlayer(row)
}

// ListActivePlayersByTeam returns the team's active roster ordered by jersey
// number.
func (q *Queries) ListActivePlayersByTeam(ctx context.Context, teamID string) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE team_id = ? AND is_active = 1
		ORDER BY number ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

type PlayerNumberTakenParams struct {
	TeamID          string
	Number          int
	ExcludePlayerID string
}

// PlayerNumberTaken reports whether a jersey number is already assigned within
// a team. Uniqueness is enforced here at write time, not by the schema, so a
// hard-deleted player frees its number immediately.
func (q *Queries) PlayerNumberTaken(ctx context.Context, arg PlayerNumberTakenParams) (bool, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM players
		WHERE team_id = ? AND number = ? AND id != ?`,
		arg.TeamID, arg.Number, arg.ExcludePlayerID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type UpdatePlayerParams struct {
	ID       string
	Name     *string
	Number   *int
	Position *string
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE players SET
			name = COALESCE(?, name),
			number = COALESCE(?, number),
			position = COALESCE(?, position),
			updated_at = ?
		WHERE id = ?`,
		nullString(arg.Name), nullInt64(arg.Number), nullString(arg.Position),
		time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return Player{}, err
	}
	return q.GetPlayer(ctx, arg.ID)
}

// DeletePlayer removes the player permanently. Child goal/assist/card rows go
// with it via ON DELETE CASCADE.
func (q *Queries) DeletePlayer(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanPlayer(row rowScanner) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Number, &p.Position, &p.IsActive)
	if err != nil {
		return Player{}, err
	}
	return p, nil
}

// PlayerIdentity is the player/team join used by the leaderboards.
type PlayerIdentity struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	TeamName   string
}

func (q *Queries) GetPlayerIdentity(ctx context.Context, playerID string) (PlayerIdentity, error) {
	var identity PlayerIdentity
	err := q.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, t.id, t.name
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.id = ?`, playerID,
	).Scan(&identity.PlayerID, &identity.PlayerName, &identity.TeamID, &identity.TeamName)
	if err != nil {
		return PlayerIdentity{}, err
	}
	return identity, nil
}
