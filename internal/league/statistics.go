package league

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dvera/barrioliga/internal/store"
)

const (
	leaderboardSize = 10

	// Card penalty weights for the fair-play ranking.
	yellowCardPoints = 1
	redCardPoints    = 3

	// Per-match averages are compared with a tolerance so floating-point
	// noise cannot split a genuine tie.
	tieEpsilon = 0.001
)

type ScorerEntry struct {
	Position      int    `json:"position"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	Goals         int    `json:"goals"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

type AssistEntry struct {
	Position      int    `json:"position"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	Assists       int    `json:"assists"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

// OffenseAward names the team(s) with the most goals scored.
type OffenseAward struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AverageAward names the team(s) leading a per-match-played average, with the
// leader's raw total alongside.
type AverageAward struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Total int     `json:"total"`
}

type Summary struct {
	Teams    int    `json:"teams"`
	Matches  int    `json:"matches"`
	Goals    int    `json:"goals"`
	AvgGoals string `json:"avgGoals"`
}

type Extras struct {
	BestOffense *OffenseAward `json:"bestOffense"`
	BestDefense *AverageAward `json:"bestDefense"`
	FairPlay    *AverageAward `json:"fairPlay"`
}

// Report is the composite payload of the public statistics view.
type Report struct {
	TopScorers []ScorerEntry `json:"topScorers"`
	TopAssists []AssistEntry `json:"topAssists"`
	Summary    Summary       `json:"summary"`
	Extras     Extras        `json:"extras"`
}

// teamTotals is a team's share of every completed match, playoffs included.
// Unlike the cached season aggregate, these are recomputed from match rows on
// every request.
type teamTotals struct {
	name         string
	played       int
	goalsFor     int
	goalsAgainst int
	cardPoints   int
}

// BuildReport assembles the statistics view from raw goal/assist/card/match
// rows. It deliberately does not read team_statistics: the leaderboards need
// per-player identity the aggregate does not carry, and the team awards span
// all completed matches including playoffs.
func BuildReport(ctx context.Context, q *store.Queries) (*Report, error) {
	report := &Report{
		TopScorers: []ScorerEntry{},
		TopAssists: []AssistEntry{},
	}

	totals, err := completedTeamTotals(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := buildLeaderboards(ctx, q, totals, report); err != nil {
		return nil, err
	}

	if err := buildSummary(ctx, q, report); err != nil {
		return nil, err
	}

	report.Extras.BestOffense = bestOffense(totals)
	report.Extras.BestDefense = bestDefense(totals)

	fairPlay, err := fairPlayAward(ctx, q, totals)
	if err != nil {
		return nil, err
	}
	report.Extras.FairPlay = fairPlay

	return report, nil
}

func completedTeamTotals(ctx context.Context, q *store.Queries) (map[string]*teamTotals, error) {
	teams, err := q.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	totals := make(map[string]*teamTotals, len(teams))
	for _, team := range teams {
		totals[team.ID] = &teamTotals{name: team.Name}
	}

	completed, err := q.ListCompletedMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}

	for _, match := range completed {
		home := scoreOrZero(match.HomeScore)
		away := scoreOrZero(match.AwayScore)

		if entry, ok := totals[match.HomeTeamID]; ok {
			entry.played++
			entry.goalsFor += home
			entry.goalsAgainst += away
		}
		if entry, ok := totals[match.AwayTeamID]; ok {
			entry.played++
			entry.goalsFor += away
			entry.goalsAgainst += home
		}
	}

	return totals, nil
}

func buildLeaderboards(ctx context.Context, q *store.Queries, totals map[string]*teamTotals, report *Report) error {
	scorers, err := q.CountGoalsByPlayer(ctx, leaderboardSize)
	if err != nil {
		return fmt.Errorf("group goals: %w", err)
	}
	for i, row := range scorers {
		identity, err := q.GetPlayerIdentity(ctx, row.PlayerID)
		if err != nil {
			return fmt.Errorf("scorer identity %s: %w", row.PlayerID, err)
		}
		report.TopScorers = append(report.TopScorers, ScorerEntry{
			Position:      i + 1,
			Name:          identity.PlayerName,
			Team:          identity.TeamName,
			Goals:         row.Count,
			MatchesPlayed: teamPlayed(totals, identity.TeamID),
		})
	}

	assists, err := q.CountAssistsByPlayer(ctx, leaderboardSize)
	if err != nil {
		return fmt.Errorf("group assists: %w", err)
	}
	for i, row := range assists {
		identity, err := q.GetPlayerIdentity(ctx, row.PlayerID)
		if err != nil {
			return fmt.Errorf("assist identity %s: %w", row.PlayerID, err)
		}
		report.TopAssists = append(report.TopAssists, AssistEntry{
			Position:      i + 1,
			Name:          identity.PlayerName,
			Team:          identity.TeamName,
			Assists:       row.Count,
			MatchesPlayed: teamPlayed(totals, identity.TeamID),
		})
	}

	return nil
}

func buildSummary(ctx context.Context, q *store.Queries, report *Report) error {
	teams, err := q.CountTeams(ctx)
	if err != nil {
		return fmt.Errorf("count teams: %w", err)
	}
	matches, err := q.CountMatches(ctx)
	if err != nil {
		return fmt.Errorf("count matches: %w", err)
	}
	goals, err := q.CountGoals(ctx)
	if err != nil {
		return fmt.Errorf("count goals: %w", err)
	}

	// The average divides by all matches regardless of status; the original
	// app did the same, so the figure is preserved as-is.
	avg := "0.00"
	if matches > 0 {
		avg = fmt.Sprintf("%.2f", float64(goals)/float64(matches))
	}

	report.Summary = Summary{
		Teams:    teams,
		Matches:  matches,
		Goals:    goals,
		AvgGoals: avg,
	}
	return nil
}

// bestOffense picks the team(s) with the most goals scored among teams with
// at least one completed match. Exact ties share the award.
func bestOffense(totals map[string]*teamTotals) *OffenseAward {
	best := -1
	var names []string
	for _, entry := range sortedTotals(totals) {
		if entry.played == 0 {
			continue
		}
		switch {
		case entry.goalsFor > best:
			best = entry.goalsFor
			names = []string{entry.name}
		case entry.goalsFor == best:
			names = append(names, entry.name)
		}
	}
	if best < 0 {
		return nil
	}
	return &OffenseAward{Name: strings.Join(names, " / "), Value: best}
}

// bestDefense picks the lowest goals-against-per-match average; near-equal
// averages (within tieEpsilon) count as a shared award.
func bestDefense(totals map[string]*teamTotals) *AverageAward {
	return minimumAverageAward(totals, func(entry *teamTotals) (float64, int) {
		return float64(entry.goalsAgainst) / float64(entry.played), entry.goalsAgainst
	})
}

func fairPlayAward(ctx context.Context, q *store.Queries, totals map[string]*teamTotals) (*AverageAward, error) {
	cards, err := q.ListCompletedMatchCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	for _, card := range cards {
		entry, ok := totals[card.TeamID]
		if !ok {
			continue
		}
		if card.Type == store.CardRed {
			entry.cardPoints += redCardPoints
		} else {
			entry.cardPoints += yellowCardPoints
		}
	}

	return minimumAverageAward(totals, func(entry *teamTotals) (float64, int) {
		return float64(entry.cardPoints) / float64(entry.played), entry.cardPoints
	}), nil
}

// minimumAverageAward ranks teams with at least one completed match by the
// given per-match figure, ascending, treating averages within tieEpsilon as
// equal. Total reports the leading team's raw figure.
func minimumAverageAward(totals map[string]*teamTotals, figure func(*teamTotals) (float64, int)) *AverageAward {
	best := math.Inf(1)
	bestTotal := 0
	var names []string

	for _, entry := range sortedTotals(totals) {
		if entry.played == 0 {
			continue
		}
		avg, total := figure(entry)
		switch {
		case avg < best-tieEpsilon:
			best = avg
			bestTotal = total
			names = []string{entry.name}
		case math.Abs(avg-best) < tieEpsilon:
			names = append(names, entry.name)
		}
	}

	if len(names) == 0 {
		return nil
	}
	return &AverageAward{
		Name:  strings.Join(names, " / "),
		Value: math.Round(best*100) / 100,
		Total: bestTotal,
	}
}

func sortedTotals(totals map[string]*teamTotals) []*teamTotals {
	entries := make([]*teamTotals, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries
}

func teamPlayed(totals map[string]*teamTotals, teamID string) int {
	if entry, ok := totals[teamID]; ok {
		return entry.played
	}
	return 0
}
