package league

import (
	"context"
	"testing"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
	"github.com/dvera/barrioliga/internal/testutil"
)

func seedPlayer(t *testing.T, database *db.DB, team store.Team, name string, number int) store.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), store.CreatePlayerParams{
		TeamID:   team.ID,
		Name:     name,
		Number:   number,
		Position: "Delantero",
	})
	if err != nil {
		t.Fatalf("create player %s: %v", name, err)
	}
	return player
}

func completeMatch(t *testing.T, database *db.DB, reconciler *Reconciler, home, away store.Team, homeScore, awayScore int, round *string) store.Match {
	t.Helper()

	match := seedMatch(t, database, home, away, round)
	updated, err := reconciler.ApplyMatchUpdate(context.Background(), store.UpdateMatchParams{
		ID:        match.ID,
		HomeScore: intp(homeScore),
		AwayScore: intp(awayScore),
		Status:    strp(store.MatchStatusCompleted),
	})
	if err != nil {
		t.Fatalf("complete match: %v", err)
	}
	return updated
}

func TestBuildReport_LeaderboardsAndAwards(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	tigres := seedTeam(t, database, "Los Tigres")
	banda := seedTeam(t, database, "La Banda")
	seedTeam(t, database, "Sin Partidos") // never plays, must not win awards

	scorer := seedPlayer(t, database, tigres, "Marcos Díaz", 9)
	playmaker := seedPlayer(t, database, banda, "Iván Soto", 10)

	reconciler := NewReconciler(database, testSeason)
	regular := completeMatch(t, database, reconciler, tigres, banda, 3, 1, nil)
	// The final counts toward report totals even though the season table
	// ignores playoff rounds.
	final := completeMatch(t, database, reconciler, tigres, banda, 1, 1, strp(store.RoundFinal))

	for i := 0; i < 3; i++ {
		if _, err := database.Queries.CreateGoal(ctx, store.CreateGoalParams{
			MatchID:  regular.ID,
			PlayerID: scorer.ID,
			Minute:   10 + i,
		}); err != nil {
			t.Fatalf("create goal: %v", err)
		}
	}
	if _, err := database.Queries.CreateGoal(ctx, store.CreateGoalParams{
		MatchID:  regular.ID,
		PlayerID: playmaker.ID,
		Minute:   80,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := database.Queries.CreateAssist(ctx, store.CreateAssistParams{
			MatchID:  regular.ID,
			PlayerID: playmaker.ID,
			Minute:   10 + i,
		}); err != nil {
			t.Fatalf("create assist: %v", err)
		}
	}
	for _, booking := range []struct {
		playerID string
		matchID  string
	}{
		{scorer.ID, regular.ID},
		{playmaker.ID, final.ID},
	} {
		if _, err := database.Queries.CreateCard(ctx, store.CreateCardParams{
			MatchID:  booking.matchID,
			PlayerID: booking.playerID,
			Minute:   44,
			Type:     store.CardYellow,
		}); err != nil {
			t.Fatalf("create card: %v", err)
		}
	}

	// One scheduled match: it dilutes avgGoals but contributes nothing else.
	seedMatch(t, database, tigres, banda, nil)

	report, err := BuildReport(ctx, database.Queries)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if len(report.TopScorers) != 2 {
		t.Fatalf("expected 2 scorers, got %d", len(report.TopScorers))
	}
	top := report.TopScorers[0]
	if top.Name != "Marcos Díaz" || top.Goals != 3 || top.Position != 1 {
		t.Errorf("top scorer = %+v", top)
	}
	if top.Team != "Los Tigres" || top.MatchesPlayed != 2 {
		t.Errorf("top scorer team context = %q, %d matches", top.Team, top.MatchesPlayed)
	}

	if len(report.TopAssists) != 1 {
		t.Fatalf("expected 1 assist leader, got %d", len(report.TopAssists))
	}
	if report.TopAssists[0].Name != "Iván Soto" || report.TopAssists[0].Assists != 2 {
		t.Errorf("assist leader = %+v", report.TopAssists[0])
	}

	if report.Summary.Teams != 3 || report.Summary.Matches != 3 || report.Summary.Goals != 4 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if report.Summary.AvgGoals != "1.33" {
		t.Errorf("avgGoals = %s, want 1.33", report.Summary.AvgGoals)
	}

	if report.Extras.BestOffense == nil || report.Extras.BestOffense.Name != "Los Tigres" || report.Extras.BestOffense.Value != 4 {
		t.Errorf("best offense = %+v", report.Extras.BestOffense)
	}
	if report.Extras.BestDefense == nil || report.Extras.BestDefense.Name != "Los Tigres" {
		t.Errorf("best defense = %+v", report.Extras.BestDefense)
	}

	// One yellow card each over two matches: identical averages share the
	// fair-play award, alphabetically.
	fairPlay := report.Extras.FairPlay
	if fairPlay == nil {
		t.Fatal("expected fair play award")
	}
	if fairPlay.Name != "La Banda / Los Tigres" {
		t.Errorf("fair play name = %q", fairPlay.Name)
	}
	if fairPlay.Value != 0.5 || fairPlay.Total != 1 {
		t.Errorf("fair play value = %v, total = %d", fairPlay.Value, fairPlay.Total)
	}
}

func TestBuildReport_TiedOffenseSharesAward(t *testing.T) {
	database := testutil.NewTestDB(t)

	norte := seedTeam(t, database, "Barrio Norte")
	oeste := seedTeam(t, database, "Barrio Oeste")

	reconciler := NewReconciler(database, testSeason)
	completeMatch(t, database, reconciler, norte, oeste, 2, 2, nil)

	report, err := BuildReport(context.Background(), database.Queries)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if report.Extras.BestOffense == nil {
		t.Fatal("expected best offense award")
	}
	if report.Extras.BestOffense.Name != "Barrio Norte / Barrio Oeste" {
		t.Errorf("best offense name = %q", report.Extras.BestOffense.Name)
	}
	if report.Extras.BestOffense.Value != 2 {
		t.Errorf("best offense value = %d, want 2", report.Extras.BestOffense.Value)
	}
}

func TestBuildReport_EmptyDatabase(t *testing.T) {
	database := testutil.NewTestDB(t)

	report, err := BuildReport(context.Background(), database.Queries)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if len(report.TopScorers) != 0 || len(report.TopAssists) != 0 {
		t.Errorf("expected empty leaderboards, got %+v", report)
	}
	if report.Summary.AvgGoals != "0.00" {
		t.Errorf("avgGoals = %s, want 0.00", report.Summary.AvgGoals)
	}
	if report.Extras.BestOffense != nil || report.Extras.BestDefense != nil || report.Extras.FairPlay != nil {
		t.Errorf("expected no awards, got %+v", report.Extras)
	}
}
