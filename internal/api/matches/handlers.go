// internal/api/matches/handlers.go
package matches

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/league"
	"github.com/dvera/barrioliga/internal/store"
)

var (
	database   *db.DB
	season     string
	reconciler *league.Reconciler
)

func InitHandlers(d *db.DB, activeSeason string) {
	database = d
	season = activeSeason
	reconciler = league.NewReconciler(d, activeSeason)
}

// MatchView is a match with its teams and in-match events, the shape the
// fixtures page consumes.
type MatchView struct {
	store.Match
	HomeTeam store.Team   `json:"homeTeam"`
	AwayTeam store.Team   `json:"awayTeam"`
	Goals    []store.Goal `json:"goals"`
	Cards    []store.Card `json:"cards"`
}

func HandleMatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleList(w, r)
	case http.MethodPost:
		handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMatchByID dispatches /matches/{id} and the event subresources
// /matches/{id}/goals, /matches/{id}/cards and /matches/{id}/assists.
func HandleMatchByID(w http.ResponseWriter, r *http.Request) {
	id, sub := pathParts(r)
	if id == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID de partido inválido", nil)
		return
	}

	if sub != "" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		switch sub {
		case "goals":
			handleCreateGoal(w, r, id)
		case "cards":
			handleCreateCard(w, r, id)
		case "assists":
			handleCreateAssist(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		handleGet(w, r, id)
	case http.MethodPatch:
		handleUpdate(w, r, id)
	case http.MethodDelete:
		handleDelete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleList(w http.ResponseWriter, r *http.Request) {
	matches, err := database.Queries.ListMatches(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener los partidos", err)
		return
	}

	views := make([]MatchView, 0, len(matches))
	for _, match := range matches {
		view, err := buildMatchView(r, match)
		if err != nil {
			apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener los partidos", err)
			return
		}
		views = append(views, view)
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, views)
}

func handleGet(w http.ResponseWriter, r *http.Request, id string) {
	match, err := database.Queries.GetMatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Partido no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener el partido", err)
		return
	}

	view, err := buildMatchView(r, match)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener el partido", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

type createMatchRequest struct {
	HomeTeamID string  `json:"homeTeamId"`
	AwayTeamID string  `json:"awayTeamId"`
	Date       string  `json:"date"`
	Venue      *string `json:"venue"`
	Round      *string `json:"round"`
	Notes      *string `json:"notes"`
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.HomeTeamID == "" || req.AwayTeamID == "" || req.Date == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Equipos y fecha son requeridos", nil)
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Un equipo no puede jugar contra sí mismo", nil)
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Fecha inválida", nil)
		return
	}

	match, err := database.Queries.CreateMatch(r.Context(), store.CreateMatchParams{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		Date:       date,
		Venue:      req.Venue,
		Round:      req.Round,
		Notes:      req.Notes,
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear el partido", err)
		return
	}

	log.Ctx(r.Context()).Info().
		Str("match_id", match.ID).
		Str("home_team_id", match.HomeTeamID).
		Str("away_team_id", match.AwayTeamID).
		Msg("Match created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, match)
}

type updateMatchRequest struct {
	HomeScore *apiutil.LenientInt `json:"homeScore"`
	AwayScore *apiutil.LenientInt `json:"awayScore"`
	Status    *string             `json:"status"`
	Round     *string             `json:"round"`
	Venue     *string             `json:"venue"`
	Date      *string             `json:"date"`
	Notes     *string             `json:"notes"`
}

// handleUpdate goes through the reconciler so the edit and the team aggregate
// deltas land in the same transaction.
func handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateMatchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			apiutil.WriteError(w, r, http.StatusBadRequest, "Fecha inválida", nil)
			return
		}
		date = &parsed
	}

	match, err := reconciler.ApplyMatchUpdate(r.Context(), store.UpdateMatchParams{
		ID:        id,
		HomeScore: req.HomeScore.IntPtr(),
		AwayScore: req.AwayScore.IntPtr(),
		Status:    req.Status,
		Round:     req.Round,
		Venue:     req.Venue,
		Date:      date,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, league.ErrMatchNotFound) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Partido no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el partido", err)
		return
	}

	view, err := buildMatchView(r, match)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el partido", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

// handleDelete removes the match and its events. Team aggregates are not
// rewound here; the repair recompute is the correction path after deleting a
// completed match.
func handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := database.Queries.DeleteMatch(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Partido no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al eliminar el partido", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("match_id", id).Msg("Match deleted")
	apiutil.WriteSuccess(w)
}

type createGoalRequest struct {
	PlayerID  string              `json:"playerId"`
	Minute    *apiutil.LenientInt `json:"minute"`
	IsOwnGoal bool                `json:"isOwnGoal"`
	IsPenalty bool                `json:"isPenalty"`
}

func handleCreateGoal(w http.ResponseWriter, r *http.Request, matchID string) {
	var req createGoalRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.PlayerID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "playerId es requerido", nil)
		return
	}

	var goal store.Goal
	err := database.RunInTx(r.Context(), func(tx *db.DB) error {
		created, err := tx.Queries.CreateGoal(r.Context(), store.CreateGoalParams{
			MatchID:   matchID,
			PlayerID:  req.PlayerID,
			Minute:    req.Minute.Int(),
			IsOwnGoal: req.IsOwnGoal,
			IsPenalty: req.IsPenalty,
		})
		if err != nil {
			return err
		}
		goal = created

		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), store.PlayerStatisticDelta{
			PlayerID: req.PlayerID,
			Season:   season,
			Goals:    1,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al registrar el gol", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusCreated, goal)
}

type createCardRequest struct {
	PlayerID string              `json:"playerId"`
	Minute   *apiutil.LenientInt `json:"minute"`
	Type     string              `json:"type"`
}

func handleCreateCard(w http.ResponseWriter, r *http.Request, matchID string) {
	var req createCardRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.PlayerID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "playerId es requerido", nil)
		return
	}
	if req.Type != store.CardYellow && req.Type != store.CardRed {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Tipo de tarjeta inválido", nil)
		return
	}

	var card store.Card
	err := database.RunInTx(r.Context(), func(tx *db.DB) error {
		created, err := tx.Queries.CreateCard(r.Context(), store.CreateCardParams{
			MatchID:  matchID,
			PlayerID: req.PlayerID,
			Minute:   req.Minute.Int(),
			Type:     req.Type,
		})
		if err != nil {
			return err
		}
		card = created

		delta := store.PlayerStatisticDelta{PlayerID: req.PlayerID, Season: season}
		if req.Type == store.CardRed {
			delta.RedCards = 1
		} else {
			delta.YellowCards = 1
		}
		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), delta)
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al registrar la tarjeta", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusCreated, card)
}

type createAssistRequest struct {
	PlayerID string              `json:"playerId"`
	Minute   *apiutil.LenientInt `json:"minute"`
}

func handleCreateAssist(w http.ResponseWriter, r *http.Request, matchID string) {
	var req createAssistRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.PlayerID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "playerId es requerido", nil)
		return
	}

	var assist store.Assist
	err := database.RunInTx(r.Context(), func(tx *db.DB) error {
		created, err := tx.Queries.CreateAssist(r.Context(), store.CreateAssistParams{
			MatchID:  matchID,
			PlayerID: req.PlayerID,
			Minute:   req.Minute.Int(),
		})
		if err != nil {
			return err
		}
		assist = created

		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), store.PlayerStatisticDelta{
			PlayerID: req.PlayerID,
			Season:   season,
			Assists:  1,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al registrar la asistencia", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusCreated, assist)
}

func buildMatchView(r *http.Request, match store.Match) (MatchView, error) {
	home, err := database.Queries.GetTeam(r.Context(), match.HomeTeamID)
	if err != nil {
		return MatchView{}, err
	}
	away, err := database.Queries.GetTeam(r.Context(), match.AwayTeamID)
	if err != nil {
		return MatchView{}, err
	}

	goals, err := database.Queries.ListGoalsByMatch(r.Context(), match.ID)
	if err != nil {
		return MatchView{}, err
	}
	cards, err := database.Queries.ListCardsByMatch(r.Context(), match.ID)
	if err != nil {
		return MatchView{}, err
	}

	view := MatchView{Match: match, HomeTeam: home, AwayTeam: away, Goals: goals, Cards: cards}
	if view.Goals == nil {
		view.Goals = []store.Goal{}
	}
	if view.Cards == nil {
		view.Cards = []store.Card{}
	}
	return view, nil
}

// pathParts splits /api/v1/matches/{id}[/{sub}] into id and subresource.
func pathParts(r *http.Request) (id, sub string) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/matches"), "/")
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		sub = parts[1]
	}
	return id, sub
}
