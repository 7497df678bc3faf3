package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type CreateGoalParams struct {
	MatchID   string
	PlayerID  string
	Minute    int
	IsOwnGoal bool
	IsPenalty bool
}

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) (Goal, error) {
	goal := Goal{
		ID:        uuid.NewString(),
		MatchID:   arg.MatchID,
		PlayerID:  arg.PlayerID,
		Minute:    arg.Minute,
		IsOwnGoal: arg.IsOwnGoal,
		IsPenalty: arg.IsPenalty,
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO goals (id, match_id, player_id, minute, is_own_goal, is_penalty, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.MatchID, goal.PlayerID, goal.Minute, goal.IsOwnGoal, goal.IsPenalty,
		time.Now().UTC(),
	)
	if err != nil {
		return Goal{}, err
	}
	return goal, nil
}

func (q *Queries) GetGoal(ctx context.Context, id string) (Goal, error) {
	var g Goal
	err := q.db.QueryRowContext(ctx, `
		SELECT id, match_id, player_id, minute, is_own_goal, is_penalty
		FROM goals WHERE id = ?`, id,
	).Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.Minute, &g.IsOwnGoal, &g.IsPenalty)
	return g, err
}

func (q *Queries) DeleteGoal(ctx context.Context, id string) error {
	return deleteByID(ctx, q.db, `DELETE FROM goals WHERE id = ?`, id)
}

func (q *Queries) ListGoalsByMatch(ctx context.Context, matchID string) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, match_id, player_id, minute, is_own_goal, is_penalty
		FROM goals WHERE match_id = ? ORDER BY minute ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.Minute, &g.IsOwnGoal, &g.IsPenalty); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (q *Queries) CountGoals(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&count)
	return count, err
}

type CreateAssistParams struct {
	MatchID  string
	PlayerID string
	Minute   int
}

func (q *Queries) CreateAssist(ctx context.Context, arg CreateAssistParams) (Assist, error) {
	assist := Assist{
		ID:       uuid.NewString(),
		MatchID:  arg.MatchID,
		PlayerID: arg.PlayerID,
		Minute:   arg.Minute,
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO assists (id, match_id, player_id, minute, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		assist.ID, assist.MatchID, assist.PlayerID, assist.Minute, time.Now().UTC(),
	)
	if err != nil {
		return Assist{}, err
	}
	return assist, nil
}

func (q *Queries) GetAssist(ctx context.Context, id string) (Assist, error) {
	var a Assist
	err := q.db.QueryRowContext(ctx, `
		SELECT id, match_id, player_id, minute FROM assists WHERE id = ?`, id,
	).Scan(&a.ID, &a.MatchID, &a.PlayerID, &a.Minute)
	return a, err
}

func (q *Queries) DeleteAssist(ctx context.Context, id string) error {
	return deleteByID(ctx, q.db, `DELETE FROM assists WHERE id = ?`, id)
}

type CreateCardParams struct {
	MatchID  string
	PlayerID string
	Minute   int
	Type     string
}

func (q *Queries) CreateCard(ctx context.Context, arg CreateCardParams) (Card, error) {
	card := Card{
		ID:       uuid.NewString(),
		MatchID:  arg.MatchID,
		PlayerID: arg.PlayerID,
		Minute:   arg.Minute,
		Type:     arg.Type,
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO cards (id, match_id, player_id, minute, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		card.ID, card.MatchID, card.PlayerID, card.Minute, card.Type, time.Now().UTC(),
	)
	if err != nil {
		return Card{}, err
	}
	return card, nil
}

func (q *Queries) GetCard(ctx context.Context, id string) (Card, error) {
	var c Card
	err := q.db.QueryRowContext(ctx, `
		SELECT id, match_id, player_id, minute, type FROM cards WHERE id = ?`, id,
	).Scan(&c.ID, &c.MatchID, &c.PlayerID, &c.Minute, &c.Type)
	return c, err
}

func (q *Queries) DeleteCard(ctx context.Context, id string) error {
	return deleteByID(ctx, q.db, `DELETE FROM cards WHERE id = ?`, id)
}

func (q *Queries) ListCardsByMatch(ctx context.Context, matchID string) ([]Card, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, match_id, player_id, minute, type
		FROM cards WHERE match_id = ? ORDER BY minute ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.MatchID, &c.PlayerID, &c.Minute, &c.Type); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// PlayerEventCount is one leaderboard row: a player and how many of an event
// they have recorded.
type PlayerEventCount struct {
	PlayerID string
	Count    int
}

// CountGoalsByPlayer groups all goal rows by player, most goals first.
func (q *Queries) CountGoalsByPlayer(ctx context.Context, limit int) ([]PlayerEventCount, error) {
	return q.countEventsByPlayer(ctx, `
		SELECT player_id, COUNT(*) AS n FROM goals
		GROUP BY player_id ORDER BY n DESC LIMIT ?`, limit)
}

// CountAssistsByPlayer groups all assist rows by player, most assists first.
func (q *Queries) CountAssistsByPlayer(ctx context.Context, limit int) ([]PlayerEventCount, error) {
	return q.countEventsByPlayer(ctx, `
		SELECT player_id, COUNT(*) AS n FROM assists
		GROUP BY player_id ORDER BY n DESC LIMIT ?`, limit)
}

func (q *Queries) countEventsByPlayer(ctx context.Context, query string, limit int) ([]PlayerEventCount, error) {
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PlayerEventCount
	for rows.Next() {
		var c PlayerEventCount
		if err := rows.Scan(&c.PlayerID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// TeamCard is a card joined to the booked player's team, restricted to
// completed matches.
type TeamCard struct {
	TeamID   string
	TeamName string
	Type     string
}

func (q *Queries) ListCompletedMatchCards(ctx context.Context) ([]TeamCard, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.name, c.type
		FROM cards c
		JOIN players p ON p.id = c.player_id
		JOIN teams t ON t.id = p.team_id
		JOIN matches m ON m.id = c.match_id
		WHERE m.status = ?`, MatchStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []TeamCard
	for rows.Next() {
		var c TeamCard
		if err := rows.Scan(&c.TeamID, &c.TeamName, &c.Type); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func deleteByID(ctx context.Context, db DBTX, query, id string) error {
	result, err := db.ExecContext(ctx, query, id)
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
