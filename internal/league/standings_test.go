package league

import (
	"context"
	"testing"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
	"github.com/dvera/barrioliga/internal/testutil"
)

func seedAggregate(t *testing.T, database *db.DB, name string, wins, draws, losses, gf, ga int) store.Team {
	t.Helper()
	ctx := context.Background()

	team, err := database.Queries.CreateTeam(ctx, store.CreateTeamParams{
		Name:         name,
		Neighborhood: "Centro",
	})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}

	err = database.Queries.InsertTeamStatistic(ctx, store.TeamStatisticDelta{
		TeamID:        team.ID,
		Season:        testSeason,
		MatchesPlayed: wins + draws + losses,
		Wins:          wins,
		Draws:         draws,
		Losses:        losses,
		GoalsFor:      gf,
		GoalsAgainst:  ga,
		Points:        wins*3 + draws,
	})
	if err != nil {
		t.Fatalf("insert statistic for %s: %v", name, err)
	}
	return team
}

func TestCalculateStandings_Ordering(t *testing.T) {
	database := testutil.NewTestDB(t)

	// Two teams on 9 points split by goal difference, a third trailing on 6.
	seedAggregate(t, database, "Deportivo Sur", 3, 0, 1, 10, 3)  // 9 pts, +7
	seedAggregate(t, database, "Real Mercado", 3, 0, 1, 8, 4)    // 9 pts, +4
	seedAggregate(t, database, "Unidos del Río", 2, 0, 2, 12, 6) // 6 pts, +6

	standings, err := CalculateStandings(context.Background(), database.Queries, testSeason)
	if err != nil {
		t.Fatalf("calculate standings: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(standings))
	}

	wantOrder := []string{"Deportivo Sur", "Real Mercado", "Unidos del Río"}
	for i, want := range wantOrder {
		if standings[i].Team.Name != want {
			t.Errorf("position %d = %s, want %s", i+1, standings[i].Team.Name, want)
		}
		if standings[i].Position != i+1 {
			t.Errorf("row %d position = %d, want %d", i, standings[i].Position, i+1)
		}
	}

	if standings[0].GoalDifference != 7 {
		t.Errorf("leader goal difference = %d, want 7", standings[0].GoalDifference)
	}
}

func TestCalculateStandings_GoalsForBreaksGoalDifferenceTie(t *testing.T) {
	database := testutil.NewTestDB(t)

	seedAggregate(t, database, "Bajo Puente", 2, 1, 1, 9, 5) // 7 pts, +4, GF 9
	seedAggregate(t, database, "Alto Verde", 2, 1, 1, 7, 3)  // 7 pts, +4, GF 7

	standings, err := CalculateStandings(context.Background(), database.Queries, testSeason)
	if err != nil {
		t.Fatalf("calculate standings: %v", err)
	}

	if standings[0].Team.Name != "Bajo Puente" {
		t.Errorf("leader = %s, want Bajo Puente", standings[0].Team.Name)
	}
}

func TestCalculateStandings_RequiresSeason(t *testing.T) {
	database := testutil.NewTestDB(t)

	if _, err := CalculateStandings(context.Background(), database.Queries, ""); err == nil {
		t.Fatal("expected error for empty season")
	}
}
