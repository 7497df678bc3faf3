package league

import (
	"context"
	"testing"

	"github.com/dvera/barrioliga/internal/store"
	"github.com/dvera/barrioliga/internal/testutil"
)

func TestRepairSeason_ConvergesAfterDrift(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	home := seedTeam(t, database, "Los Halcones")
	away := seedTeam(t, database, "Atlético Norte")

	reconciler := NewReconciler(database, testSeason)
	completeMatch(t, database, reconciler, home, away, 2, 1, nil)
	dropped := completeMatch(t, database, reconciler, home, away, 0, 3, nil)

	// Deleting a completed match leaves its contribution behind on purpose;
	// the repair recompute is the correction path.
	if err := database.Queries.DeleteMatch(ctx, dropped.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	assertStat(t, teamStat(t, database, home.ID), 2, 1, 0, 1, 2, 4, 3)

	if err := RepairSeason(ctx, database, testSeason); err != nil {
		t.Fatalf("repair: %v", err)
	}

	assertStat(t, teamStat(t, database, home.ID), 1, 1, 0, 0, 2, 1, 3)
	assertStat(t, teamStat(t, database, away.ID), 1, 0, 0, 1, 1, 2, 0)
}

func TestRepairSeason_IgnoresPlayoffMatches(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	home := seedTeam(t, database, "Los Halcones")
	away := seedTeam(t, database, "Atlético Norte")

	reconciler := NewReconciler(database, testSeason)
	completeMatch(t, database, reconciler, home, away, 1, 0, nil)
	completeMatch(t, database, reconciler, home, away, 5, 0, strp(store.RoundSemifinal))

	if err := RepairSeason(ctx, database, testSeason); err != nil {
		t.Fatalf("repair: %v", err)
	}

	assertStat(t, teamStat(t, database, home.ID), 1, 1, 0, 0, 1, 0, 3)
	assertStat(t, teamStat(t, database, away.ID), 1, 0, 0, 1, 0, 1, 0)
}

func TestRepairSeason_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	home := seedTeam(t, database, "Los Halcones")
	away := seedTeam(t, database, "Atlético Norte")

	reconciler := NewReconciler(database, testSeason)
	completeMatch(t, database, reconciler, home, away, 2, 2, nil)

	for i := 0; i < 2; i++ {
		if err := RepairSeason(ctx, database, testSeason); err != nil {
			t.Fatalf("repair run %d: %v", i+1, err)
		}
	}

	assertStat(t, teamStat(t, database, home.ID), 1, 0, 1, 0, 2, 2, 1)
	assertStat(t, teamStat(t, database, away.ID), 1, 0, 1, 0, 2, 2, 1)
}

func TestRepairSeason_RequiresSeason(t *testing.T) {
	database := testutil.NewTestDB(t)

	if err := RepairSeason(context.Background(), database, ""); err == nil {
		t.Fatal("expected error for empty season")
	}
}
