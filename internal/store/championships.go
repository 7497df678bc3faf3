package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type CreateChampionshipParams struct {
	Name        string
	Subtitle    *string
	Season      string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool
	Description *string
}

func (q *Queries) CreateChampionship(ctx context.Context, arg CreateChampionshipParams) (Championship, error) {
	c := Championship{
		ID:          uuid.NewString(),
		Name:        arg.Name,
		Subtitle:    arg.Subtitle,
		Season:      arg.Season,
		StartDate:   arg.StartDate,
		EndDate:     arg.EndDate,
		IsActive:    arg.IsActive,
		Description: arg.Description,
	}
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO championships (id, name, subtitle, season, start_date, end_date, is_active, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullString(c.Subtitle), c.Season, nullTime(c.StartDate),
		nullTime(c.EndDate), c.IsActive, nullString(c.Description), now, now,
	)
	if err != nil {
		return Championship{}, err
	}
	return c, nil
}

// GetActiveChampionship returns the championship currently flagged active.
func (q *Queries) GetActiveChampionship(ctx context.Context) (Championship, error) {
	var c Championship
	var subtitle, description sql.NullString
	var startDate, endDate sql.NullTime
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name, subtitle, season, start_date, end_date, is_active, description
		FROM championships WHERE is_active = 1
		ORDER BY start_date DESC LIMIT 1`,
	).Scan(&c.ID, &c.Name, &subtitle, &c.Season, &startDate, &endDate, &c.IsActive, &description)
	if err != nil {
		return Championship{}, err
	}
	c.Subtitle = stringPtr(subtitle)
	c.Description = stringPtr(description)
	c.StartDate = timePtr(startDate)
	c.EndDate = timePtr(endDate)
	return c, nil
}
