// Package league holds the season bookkeeping: the match-edit reconciler that
// keeps team aggregates consistent, the standings and statistics projections,
// and the repair recompute.
package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
)

var ErrMatchNotFound = errors.New("match not found")

// Reconciler applies a match update and the matching team-statistic deltas in
// a single transaction, so a match edit can never land without its aggregate
// effect (or vice versa).
type Reconciler struct {
	db     *db.DB
	season string
}

func NewReconciler(database *db.DB, season string) *Reconciler {
	return &Reconciler{db: database, season: season}
}

// ApplyMatchUpdate updates the match and reconciles both teams' season
// aggregates against the transition between the prior and new completion
// state. Playoff matches (Semifinal/Final, before or after the edit) never
// touch the season table.
func (r *Reconciler) ApplyMatchUpdate(ctx context.Context, arg store.UpdateMatchParams) (store.Match, error) {
	var updated store.Match

	err := r.db.RunInTx(ctx, func(tx *db.DB) error {
		prior, err := tx.Queries.GetMatch(ctx, arg.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("load match %s: %w", arg.ID, err)
		}

		updated, err = tx.Queries.UpdateMatch(ctx, arg)
		if err != nil {
			return fmt.Errorf("update match %s: %w", arg.ID, err)
		}

		if store.IsPlayoffRound(prior.Round) || store.IsPlayoffRound(updated.Round) {
			return nil
		}

		wasCompleted := prior.Status == store.MatchStatusCompleted
		nowCompleted := updated.Status == store.MatchStatusCompleted

		switch {
		case wasCompleted && !nowCompleted:
			// Revert: subtract the contribution computed from the prior scores.
			return r.applyMatchResult(ctx, tx.Queries, prior, -1)

		case !wasCompleted && nowCompleted:
			return r.applyMatchResult(ctx, tx.Queries, updated, +1)

		case wasCompleted && nowCompleted && scoresChanged(prior, updated):
			// Replace: subtract the prior contribution, then add the new one.
			if err := r.applyMatchResult(ctx, tx.Queries, prior, -1); err != nil {
				return err
			}
			return r.applyMatchResult(ctx, tx.Queries, updated, +1)
		}

		return nil
	})
	if err != nil {
		return store.Match{}, err
	}

	log.Ctx(ctx).Info().
		Str("match_id", updated.ID).
		Str("status", updated.Status).
		Msg("Match updated")

	return updated, nil
}

// applyMatchResult applies the signed per-match contribution of m to both
// teams' aggregates for the reconciler's season.
func (r *Reconciler) applyMatchResult(ctx context.Context, q *store.Queries, m store.Match, sign int) error {
	home := scoreOrZero(m.HomeScore)
	away := scoreOrZero(m.AwayScore)

	if err := r.applyTeamDelta(ctx, q, m.HomeTeamID, sign, home, away); err != nil {
		return fmt.Errorf("home team %s: %w", m.HomeTeamID, err)
	}
	if err := r.applyTeamDelta(ctx, q, m.AwayTeamID, sign, away, home); err != nil {
		return fmt.Errorf("away team %s: %w", m.AwayTeamID, err)
	}
	return nil
}

func (r *Reconciler) applyTeamDelta(ctx context.Context, q *store.Queries, teamID string, sign, goalsFor, goalsAgainst int) error {
	contribution := matchContribution(goalsFor, goalsAgainst)

	updated, err := q.ApplyTeamStatisticDelta(ctx, store.TeamStatisticDelta{
		TeamID:        teamID,
		Season:        r.season,
		MatchesPlayed: sign * contribution.MatchesPlayed,
		Wins:          sign * contribution.Wins,
		Draws:         sign * contribution.Draws,
		Losses:        sign * contribution.Losses,
		GoalsFor:      sign * contribution.GoalsFor,
		GoalsAgainst:  sign * contribution.GoalsAgainst,
		Points:        sign * contribution.Points,
	})
	if err != nil {
		return err
	}
	if !updated {
		// No aggregate row yet: seed it with the positive contribution.
		contribution.TeamID = teamID
		contribution.Season = r.season
		return q.InsertTeamStatistic(ctx, contribution)
	}
	return nil
}

// matchContribution is one side's share of a completed match: one match
// played, exactly one of win/draw/loss, the goals each way, and 3/1/0 points.
func matchContribution(goalsFor, goalsAgainst int) store.TeamStatisticDelta {
	delta := store.TeamStatisticDelta{
		MatchesPlayed: 1,
		GoalsFor:      goalsFor,
		GoalsAgainst:  goalsAgainst,
	}
	switch {
	case goalsFor > goalsAgainst:
		delta.Wins = 1
		delta.Points = 3
	case goalsFor == goalsAgainst:
		delta.Draws = 1
		delta.Points = 1
	default:
		delta.Losses = 1
	}
	return delta
}

func scoresChanged(prior, updated store.Match) bool {
	return scoreOrZero(prior.HomeScore) != scoreOrZero(updated.HomeScore) ||
		scoreOrZero(prior.AwayScore) != scoreOrZero(updated.AwayScore)
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
