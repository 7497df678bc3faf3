package league

import (
	"context"
	"errors"
	"sort"

	"github.com/dvera/barrioliga/internal/store"
)

// StandingRow is one ranked line of the season table.
type StandingRow struct {
	Position       int        `json:"position"`
	Team           store.Team `json:"team"`
	MatchesPlayed  int        `json:"matchesPlayed"`
	Wins           int        `json:"wins"`
	Draws          int        `json:"draws"`
	Losses         int        `json:"losses"`
	GoalsFor       int        `json:"goalsFor"`
	GoalsAgainst   int        `json:"goalsAgainst"`
	GoalDifference int        `json:"goalDifference"`
	Points         int        `json:"points"`
}

// CalculateStandings ranks every team's stored season aggregate: points, then
// goal difference, then goals for, all descending. Positions are 1-based and
// always distinct; full ties keep a stable order. The table is recomputed on
// every call.
func CalculateStandings(ctx context.Context, q *store.Queries, season string) ([]StandingRow, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}
	if season == "" {
		return nil, errors.New("season is required")
	}

	rows, err := q.ListTeamStatisticsBySeason(ctx, season)
	if err != nil {
		return nil, err
	}

	standings := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		standings = append(standings, StandingRow{
			Team:           row.Team,
			MatchesPlayed:  row.MatchesPlayed,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalsFor - row.GoalsAgainst,
			Points:         row.Points,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].GoalDifference != standings[j].GoalDifference {
			return standings[i].GoalDifference > standings[j].GoalDifference
		}
		return standings[i].GoalsFor > standings[j].GoalsFor
	})

	for i := range standings {
		standings[i].Position = i + 1
	}

	return standings, nil
}
