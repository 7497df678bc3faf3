package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const matchColumns = `id, home_team_id, away_team_id, date, venue, round, status,
	home_score, away_score, notes`

type CreateMatchParams struct {
	HomeTeamID string
	AwayTeamID string
	Date       time.Time
	Venue      *string
	Round      *string
	Notes      *string
}

// CreateMatch inserts a match in SCHEDULED status with no scores.
func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO matches (id, home_team_id, away_team_id, date, venue, round, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, arg.HomeTeamID, arg.AwayTeamID, arg.Date, nullString(arg.Venue),
		nullString(arg.Round), MatchStatusScheduled, nullString(arg.Notes), now, now,
	)
	if err != nil {
		return Match{}, err
	}
	return q.GetMatch(ctx, id)
}

func (q *Queries) GetMatch(ctx context.Context, id string) (Match, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	return scanMatch(row)
}

func (q *Queries) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (q *Queries) ListCompletedMatches(ctx context.Context) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE status = ?
		ORDER BY date ASC`, MatchStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMatches(rows)
}

type UpdateMatchParams struct {
	ID        string
	HomeScore *int
	AwayScore *int
	Status    *string
	Round     *string
	Venue     *string
	Date      *time.Time
	Notes     *string
}

// UpdateMatch applies only the fields present in arg. Callers that need the
// statistics kept consistent go through league.Reconciler instead of calling
// this directly.
func (q *Queries) UpdateMatch(ctx context.Context, arg UpdateMatchParams) (Match, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE matches SET
			home_score = COALESCE(?, home_score),
			away_score = COALESCE(?, away_score),
			status = COALESCE(?, status),
			round = COALESCE(?, round),
			venue = COALESCE(?, venue),
			date = COALESCE(?, date),
			notes = COALESCE(?, notes),
			updated_at = ?
		WHERE id = ?`,
		nullInt64(arg.HomeScore), nullInt64(arg.AwayScore), nullString(arg.Status),
		nullString(arg.Round), nullString(arg.Venue), nullTime(arg.Date),
		nullString(arg.Notes), time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return Match{}, err
	}
	return q.GetMatch(ctx, arg.ID)
}

func (q *Queries) DeleteMatch(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
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

func (q *Queries) CountMatches(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func collectMatches(rows *sql.Rows) ([]Match, error) {
	var matches []Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func scanMatch(row rowScanner) (Match, error) {
	var m Match
	var venue, round, notes sql.NullString
	var homeScore, awayScore sql.NullInt64
	err := row.Scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.Date, &venue, &round, &m.Status,
		&homeScore, &awayScore, &notes,
	)
	if err != nil {
		return Match{}, err
	}
	m.Venue = stringPtr(venue)
	m.Round = stringPtr(round)
	m.Notes = stringPtr(notes)
	m.HomeScore = intPtr(homeScore)
	m.AwayScore = intPtr(awayScore)
	return m, nil
}
