package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const teamColumns = `id, name, neighborhood, description, logo, color, founded_at,
	sponsor1, sponsor2, sponsor3, sponsor4, sponsor5, sponsor6, created_at`

type CreateTeamParams struct {
	Name         string
	Neighborhood string
	Description  *string
	Logo         *string
	Color        *string
	FoundedAt    *time.Time
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, neighborhood, description, logo, color, founded_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.Name, arg.Neighborhood, nullString(arg.Description), nullString(arg.Logo),
		nullString(arg.Color), nullTime(arg.FoundedAt), now, now,
	)
	if err != nil {
		return Team{}, err
	}
	return q.GetTeam(ctx, id)
}

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	return scanTeam(row)
}

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

type UpdateTeamParams struct {
	ID           string
	Name         *string
	Neighborhood *string
	Description  *string
	Logo         *string
	Color        *string
	Sponsor1     *string
	Sponsor2     *string
	Sponsor3     *string
	Sponsor4     *string
	Sponsor5     *string
	Sponsor6     *string
}

// UpdateTeam applies only the fields present in arg; nil pointers leave the
// stored value untouched.
func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE teams SET
			name = COALESCE(?, name),
			neighborhood = COALESCE(?, neighborhood),
			description = COALESCE(?, description),
			logo = COALESCE(?, logo),
			color = COALESCE(?, color),
			sponsor1 = COALESCE(?, sponsor1),
			sponsor2 = COALESCE(?, sponsor2),
			sponsor3 = COALESCE(?, sponsor3),
			sponsor4 = COALESCE(?, sponsor4),
			sponsor5 = COALESCE(?, sponsor5),
			sponsor6 = COALESCE(?, sponsor6),
			updated_at = ?
		WHERE id = ?`,
		nullString(arg.Name), nullString(arg.Neighborhood), nullString(arg.Description),
		nullString(arg.Logo), nullString(arg.Color),
		nullString(arg.Sponsor1), nullString(arg.Sponsor2), nullString(arg.Sponsor3),
		nullString(arg.Sponsor4), nullString(arg.Sponsor5), nullString(arg.Sponsor6),
		time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return Team{}, err
	}
	return q.GetTeam(ctx, arg.ID)
}

func (q *Queries) DeleteTeam(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
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

func (q *Queries) CountTeams(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (Team, error) {
	var t Team
	var description, logo, color sql.NullString
	var sponsor1, sponsor2, sponsor3, sponsor4, sponsor5, sponsor6 sql.NullString
	var foundedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.Name, &t.Neighborhood, &description, &logo, &color, &foundedAt,
		&sponsor1, &sponsor2, &sponsor3, &sponsor4, &sponsor5, &sponsor6, &t.CreatedAt,
	)
	if err != nil {
		return Team{}, err
	}
	t.Description = stringPtr(description)
	t.Logo = stringPtr(logo)
	t.Color = stringPtr(color)
	t.FoundedAt = timePtr(foundedAt)
	t.Sponsor1 = stringPtr(sponsor1)
	t.Sponsor2 = stringPtr(sponsor2)
	t.Sponsor3 = stringPtr(sponsor3)
	t.Sponsor4 = stringPtr(sponsor4)
	t.Sponsor5 = stringPtr(sponsor5)
	t.Sponsor6 = stringPtr(sponsor6)
	return t, nil
}
