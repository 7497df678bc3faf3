package standings

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvera/barrioliga/internal/league"
	"github.com/dvera/barrioliga/internal/store"
	"github.com/dvera/barrioliga/internal/testutil"
)

const testSeason = "2026"

func TestHandleStandings(t *testing.T) {
	d := testutil.NewTestDB(t)
	ctx := context.Background()

	names := []string{"Primero FC", "Segundo FC"}
	points := []int{6, 3}
	for i, name := range names {
		team, err := d.Queries.CreateTeam(ctx, store.CreateTeamParams{Name: name, Neighborhood: "Centro"})
		if err != nil {
			t.Fatalf("create team: %v", err)
		}
		if err := d.Queries.InsertTeamStatistic(ctx, store.TeamStatisticDelta{
			TeamID:        team.ID,
			Season:        testSeason,
			MatchesPlayed: 2,
			Wins:          points[i] / 3,
			Points:        points[i],
		}); err != nil {
			t.Fatalf("insert statistic: %v", err)
		}
	}

	InitHandlers(d, testSeason)
	t.Cleanup(func() {
		database = nil
		season = ""
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil)
	recorder := httptest.NewRecorder()
	HandleStandings(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}

	var rows []league.StandingRow
	if err := json.Unmarshal(recorder.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Team.Name != "Primero FC" || rows[0].Position != 1 {
		t.Errorf("leader = %+v", rows[0])
	}
	if rows[1].Position != 2 {
		t.Errorf("second position = %d", rows[1].Position)
	}
}

func TestHandleStandings_EmptySeason(t *testing.T) {
	d := testutil.NewTestDB(t)

	InitHandlers(d, testSeason)
	t.Cleanup(func() {
		database = nil
		season = ""
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standings", nil)
	recorder := httptest.NewRecorder()
	HandleStandings(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if body := recorder.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("body = %q, want empty array", body)
	}
}
