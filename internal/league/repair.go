package league

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
)

// RepairSeason recomputes every team's season aggregate from scratch out of
// the completed, non-playoff matches and overwrites the stored rows. It is
// idempotent and is the recovery path for aggregates that drifted (for
// example after a match was deleted, which intentionally does not reverse
// statistics).
func RepairSeason(ctx context.Context, database *db.DB, season string) error {
	if season == "" {
		return fmt.Errorf("season is required")
	}

	return database.RunInTx(ctx, func(tx *db.DB) error {
		teams, err := tx.Queries.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}

		matches, err := tx.Queries.ListCompletedMatches(ctx)
		if err != nil {
			return fmt.Errorf("list completed matches: %w", err)
		}

		computed := make(map[string]store.TeamStatisticDelta, len(teams))
		for _, team := range teams {
			computed[team.ID] = store.TeamStatisticDelta{TeamID: team.ID, Season: season}
		}

		for _, match := range matches {
			if store.IsPlayoffRound(match.Round) {
				continue
			}
			home := scoreOrZero(match.HomeScore)
			away := scoreOrZero(match.AwayScore)
			accumulate(computed, match.HomeTeamID, home, away)
			accumulate(computed, match.AwayTeamID, away, home)
		}

		for _, delta := range computed {
			if err := tx.Queries.SetTeamStatistic(ctx, delta); err != nil {
				return fmt.Errorf("set statistics for team %s: %w", delta.TeamID, err)
			}
		}

		log.Ctx(ctx).Info().
			Str("season", season).
			Int("teams", len(computed)).
			Int("completed_matches", len(matches)).
			Msg("Season aggregates recomputed")

		return nil
	})
}

func accumulate(computed map[string]store.TeamStatisticDelta, teamID string, goalsFor, goalsAgainst int) {
	entry, ok := computed[teamID]
	if !ok {
		return
	}

	contribution := matchContribution(goalsFor, goalsAgainst)
	entry.MatchesPlayed += contribution.MatchesPlayed
	entry.Wins += contribution.Wins
	entry.Draws += contribution.Draws
	entry.Losses += contribution.Losses
	entry.GoalsFor += contribution.GoalsFor
	entry.GoalsAgainst += contribution.GoalsAgainst
	entry.Points += contribution.Points

	computed[teamID] = entry
}
