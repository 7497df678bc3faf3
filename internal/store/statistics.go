package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type TeamSeasonParams struct {
	TeamID string
	Season string
}

func (q *Queries) GetTeamStatistic(ctx context.Context, arg TeamSeasonParams) (TeamStatistic, error) {
	var s TeamStatistic
	err := q.db.QueryRowContext(ctx, `
		SELECT id, team_id, season, matches_played, wins, draws, losses, goals_for, goals_against, points
		FROM team_statistics WHERE team_id = ? AND season = ?`,
		arg.TeamID, arg.Season,
	).Scan(&s.ID, &s.TeamID, &s.Season, &s.MatchesPlayed, &s.Wins, &s.Draws, &s.Losses,
		&s.GoalsFor, &s.GoalsAgainst, &s.Points)
	return s, err
}

// CreateTeamStatistic inserts a zeroed aggregate row for a team/season. Teams
// get one at creation time; only the reconciler and the repair job touch the
// counters afterwards.
func (q *Queries) CreateTeamStatistic(ctx context.Context, arg TeamSeasonParams) (TeamStatistic, error) {
	s := TeamStatistic{
		ID:     uuid.NewString(),
		TeamID: arg.TeamID,
		Season: arg.Season,
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO team_statistics (id, team_id, season, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.ID, s.TeamID, s.Season, time.Now().UTC(),
	)
	if err != nil {
		return TeamStatistic{}, err
	}
	return s, nil
}

type TeamStatisticDelta struct {
	TeamID        string
	Season        string
	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	Points        int
}

// ApplyTeamStatisticDelta adds the (possibly negative) delta to an existing
// aggregate row and reports whether a row was updated. The reconciler creates
// the row with the delta as initial values when none exists.
func (q *Queries) ApplyTeamStatisticDelta(ctx context.Context, arg TeamStatisticDelta) (bool, error) {
	result, err := q.db.ExecContext(ctx, `
		UPDATE team_statistics SET
			matches_played = matches_played + ?,
			wins = wins + ?,
			draws = draws + ?,
			losses = losses + ?,
			goals_for = goals_for + ?,
			goals_against = goals_against + ?,
			points = points + ?,
			updated_at = ?
		WHERE team_id = ? AND season = ?`,
		arg.MatchesPlayed, arg.Wins, arg.Draws, arg.Losses,
		arg.GoalsFor, arg.GoalsAgainst, arg.Points,
		time.Now().UTC(), arg.TeamID, arg.Season,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// InsertTeamStatistic inserts an aggregate row with the given initial counters.
func (q *Queries) InsertTeamStatistic(ctx context.Context, arg TeamStatisticDelta) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO team_statistics
			(id, team_id, season, matches_played, wins, draws, losses, goals_for, goals_against, points, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), arg.TeamID, arg.Season,
		arg.MatchesPlayed, arg.Wins, arg.Draws, arg.Losses,
		arg.GoalsFor, arg.GoalsAgainst, arg.Points, time.Now().UTC(),
	)
	return err
}

// SetTeamStatistic overwrites the aggregate row with absolute values,
// inserting it if missing. Used by the repair recompute.
func (q *Queries) SetTeamStatistic(ctx context.Context, arg TeamStatisticDelta) error {
	result, err := q.db.ExecContext(ctx, `
		UPDATE team_statistics SET
			matches_played = ?, wins = ?, draws = ?, losses = ?,
			goals_for = ?, goals_against = ?, points = ?, updated_at = ?
		WHERE team_id = ? AND season = ?`,
		arg.MatchesPlayed, arg.Wins, arg.Draws, arg.Losses,
		arg.GoalsFor, arg.GoalsAgainst, arg.Points,
		time.Now().UTC(), arg.TeamID, arg.Season,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return q.InsertTeamStatistic(ctx, arg)
	}
	return nil
}

// TeamStatisticRow joins the aggregate with team identity for the standings.
type TeamStatisticRow struct {
	TeamStatistic
	Team Team
}

func (q *Queries) ListTeamStatisticsBySeason(ctx context.Context, season string) ([]TeamStatisticRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT s.id, s.team_id, s.season, s.matches_played, s.wins, s.draws, s.losses,
			s.goals_for, s.goals_against, s.points,
			`+prefixedTeamColumns("t")+`
		FROM team_statistics s
		JOIN teams t ON t.id = s.team_id
		WHERE s.season = ?`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamStatisticRow
	for rows.Next() {
		var r TeamStatisticRow
		if err := scanTeamStatisticRow(rows, &r); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (q *Queries) GetPlayerStatistic(ctx context.Context, playerID, season string) (PlayerStatistic, error) {
	var s PlayerStatistic
	err := q.db.QueryRowContext(ctx, `
		SELECT id, player_id, season, goals, assists, yellow_cards, red_cards, matches_played
		FROM player_statistics WHERE player_id = ? AND season = ?`,
		playerID, season,
	).Scan(&s.ID, &s.PlayerID, &s.Season, &s.Goals, &s.Assists, &s.YellowCards,
		&s.RedCards, &s.MatchesPlayed)
	return s, err
}

func (q *Queries) CreatePlayerStatistic(ctx context.Context, playerID, season string) (PlayerStatistic, error) {
	s := PlayerStatistic{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Season:   season,
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO player_statistics (id, player_id, season, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.ID, s.PlayerID, s.Season, time.Now().UTC(),
	)
	if err != nil {
		return PlayerStatistic{}, err
	}
	return s, nil
}

type PlayerStatisticDelta struct {
	PlayerID    string
	Season      string
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

// ApplyPlayerStatisticDelta adds a signed delta to the player's season
// counters, creating the row if the player predates the season bootstrap.
func (q *Queries) ApplyPlayerStatisticDelta(ctx context.Context, arg PlayerStatisticDelta) error {
	result, err := q.db.ExecContext(ctx, `
		UPDATE player_statistics SET
			goals = goals + ?,
			assists = assists + ?,
			yellow_cards = yellow_cards + ?,
			red_cards = red_cards + ?,
			updated_at = ?
		WHERE player_id = ? AND season = ?`,
		arg.Goals, arg.Assists, arg.YellowCards, arg.RedCards,
		time.Now().UTC(), arg.PlayerID, arg.Season,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err := q.db.ExecContext(ctx, `
			INSERT INTO player_statistics
				(id, player_id, season, goals, assists, yellow_cards, red_cards, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), arg.PlayerID, arg.Season,
			max(arg.Goals, 0), max(arg.Assists, 0), max(arg.YellowCards, 0), max(arg.RedCards, 0),
			time.Now().UTC(),
		)
		return err
	}
	return nil
}

func prefixedTeamColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.neighborhood, ` + alias + `.description,
		` + alias + `.logo, ` + alias + `.color, ` + alias + `.founded_at,
		` + alias + `.sponsor1, ` + alias + `.sponsor2, ` + alias + `.sponsor3,
		` + alias + `.sponsor4, ` + alias + `.sponsor5, ` + alias + `.sponsor6, ` + alias + `.created_at`
}

func scanTeamStatisticRow(row rowScanner, r *TeamStatisticRow) error {
	var description, logo, color sql.NullString
	var sponsor1, sponsor2, sponsor3, sponsor4, sponsor5, sponsor6 sql.NullString
	var foundedAt sql.NullTime
	err := row.Scan(
		&r.TeamStatistic.ID, &r.TeamStatistic.TeamID, &r.Season,
		&r.MatchesPlayed, &r.Wins, &r.Draws, &r.Losses,
		&r.GoalsFor, &r.GoalsAgainst, &r.Points,
		&r.Team.ID, &r.Team.Name, &r.Team.Neighborhood, &description, &logo, &color, &foundedAt,
		&sponsor1, &sponsor2, &sponsor3, &sponsor4, &sponsor5, &sponsor6, &r.Team.CreatedAt,
	)
	if err != nil {
		return err
	}
	r.Team.Description = stringPtr(description)
	r.Team.Logo = stringPtr(logo)
	r.Team.Color = stringPtr(color)
	r.Team.FoundedAt = timePtr(foundedAt)
	r.Team.Sponsor1 = stringPtr(sponsor1)
	r.Team.Sponsor2 = stringPtr(sponsor2)
	r.Team.Sponsor3 = stringPtr(sponsor3)
	r.Team.Sponsor4 = stringPtr(sponsor4)
	r.Team.Sponsor5 = stringPtr(sponsor5)
	r.Team.Sponsor6 = stringPtr(sponsor6)
	return nil
}
