package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const newsColumns = `id, title, content, summary, image_url, author, published, published_at, featured, created_at`

type CreateNewsParams struct {
	Title    string
	Content  string
	Summary  *string
	ImageURL *string
	Author   *string
	Featured bool
}

// CreateNews inserts a published news item stamped with the current time.
func (q *Queries) CreateNews(ctx context.Context, arg CreateNewsParams) (News, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO news (id, title, content, summary, image_url, author, published, published_at, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, ?, ?)`,
		id, arg.Title, arg.Content, nullString(arg.Summary), nullString(arg.ImageURL),
		nullString(arg.Author), now, arg.Featured, now, now,
	)
	if err != nil {
		return News{}, err
	}
	return q.GetNews(ctx, id)
}

func (q *Queries) GetNews(ctx context.Context, id string) (News, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNews(row)
}

func (q *Queries) ListNews(ctx context.Context) ([]News, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+newsColumns+` FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []News
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type UpdateNewsParams struct {
	ID       string
	Title    *string
	Content  *string
	Summary  *string
	ImageURL *string
	Author   *string
	Featured *bool
}

func (q *Queries) UpdateNews(ctx context.Context, arg UpdateNewsParams) (News, error) {
	var featured sql.NullBool
	if arg.Featured != nil {
		featured = sql.NullBool{Bool: *arg.Featured, Valid: true}
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE news SET
			title = COALESCE(?, title),
			content = COALESCE(?, content),
			summary = COALESCE(?, summary),
			image_url = COALESCE(?, image_url),
			author = COALESCE(?, author),
			featured = COALESCE(?, featured),
			updated_at = ?
		WHERE id = ?`,
		nullString(arg.Title), nullString(arg.Content), nullString(arg.Summary),
		nullString(arg.ImageURL), nullString(arg.Author), featured,
		time.Now().UTC(), arg.ID,
	)
	if err != nil {
		return News{}, err
	}
	return q.GetNews(ctx, arg.ID)
}

func (q *Queries) DeleteNews(ctx context.Context, id string) error {
	return deleteByID(ctx, q.db, `DELETE FROM news WHERE id = ?`, id)
}

func scanNews(row rowScanner) (News, error) {
	var n News
	var summary, imageURL, author sql.NullString
	var publishedAt sql.NullTime
	err := row.Scan(&n.ID, &n.Title, &n.Content, &summary, &imageURL, &author,
		&n.Published, &publishedAt, &n.Featured, &n.CreatedAt)
	if err != nil {
		return News{}, err
	}
	n.Summary = stringPtr(summary)
	n.ImageURL = stringPtr(imageURL)
	n.Author = stringPtr(author)
	n.PublishedAt = timePtr(publishedAt)
	return n, nil
}
