package players

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
	"github.com/dvera/barrioliga/internal/testutil"
)

const testSeason = "2026"

func setupPlayersTest(t *testing.T) (*db.DB, store.Team) {
	t.Helper()

	d := testutil.NewTestDB(t)
	team, err := d.Queries.CreateTeam(context.Background(), store.CreateTeamParams{
		Name:         "Los Pumas",
		Neighborhood: "San Martín",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	InitHandlers(d, testSeason)
	t.Cleanup(func() {
		database = nil
		season = ""
	})

	return d, team
}

func postPlayer(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	HandlePlayers(recorder, req)
	return recorder
}

func TestHandleCreatePlayer(t *testing.T) {
	d, team := setupPlayersTest(t)

	recorder := postPlayer(t, `{"name":"Emilio Rojas","number":7,"position":"Delantero","teamId":"`+team.ID+`"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body.String())
	}

	var player store.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if player.Number != 7 || player.TeamID != team.ID {
		t.Errorf("player = %+v", player)
	}

	// Creation bootstraps a zeroed season counter row.
	stat, err := d.Queries.GetPlayerStatistic(context.Background(), player.ID, testSeason)
	if err != nil {
		t.Fatalf("get player statistic: %v", err)
	}
	if stat.Goals != 0 || stat.Assists != 0 {
		t.Errorf("expected zeroed statistic, got %+v", stat)
	}
}

func TestHandleCreatePlayer_DuplicateNumber(t *testing.T) {
	_, team := setupPlayersTest(t)

	if recorder := postPlayer(t, `{"name":"Emilio Rojas","number":7,"position":"Delantero","teamId":"`+team.ID+`"}`); recorder.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", recorder.Code)
	}

	recorder := postPlayer(t, `{"name":"Raúl Vega","number":7,"position":"Defensa","teamId":"`+team.ID+`"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "El número 7 ya está asignado en este equipo") {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestHandleCreatePlayer_NumberAsString(t *testing.T) {
	_, team := setupPlayersTest(t)

	// Jersey numbers historically arrive as strings from the admin form.
	recorder := postPlayer(t, `{"name":"Emilio Rojas","number":"11","position":"Portero","teamId":"`+team.ID+`"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body.String())
	}

	var player store.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if player.Number != 11 {
		t.Errorf("number = %d, want 11", player.Number)
	}
}

func TestHandleCreatePlayer_MissingFields(t *testing.T) {
	setupPlayersTest(t)

	recorder := postPlayer(t, `{"name":"Sin Equipo"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestHandleDeletePlayer_FreesNumber(t *testing.T) {
	_, team := setupPlayersTest(t)

	recorder := postPlayer(t, `{"name":"Emilio Rojas","number":7,"position":"Delantero","teamId":"`+team.ID+`"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d", recorder.Code)
	}
	var player store.Player
	if err := json.Unmarshal(recorder.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/players?id="+player.ID, nil)
	deleteRecorder := httptest.NewRecorder()
	HandlePlayers(deleteRecorder, req)
	if deleteRecorder.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", deleteRecorder.Code, deleteRecorder.Body.String())
	}

	// The jersey number is reusable immediately after the hard delete.
	if recorder := postPlayer(t, `{"name":"Raúl Vega","number":7,"position":"Defensa","teamId":"`+team.ID+`"}`); recorder.Code != http.StatusCreated {
		t.Fatalf("re-create status = %d: %s", recorder.Code, recorder.Body.String())
	}
}
