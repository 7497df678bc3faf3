// internal/api/teams/handlers.go
package teams

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
)

var (
	database *db.DB
	season   string
)

func InitHandlers(d *db.DB, activeSeason string) {
	database = d
	season = activeSeason
}

// TeamView is a team with its active roster and season aggregate, the shape
// the public team pages consume.
type TeamView struct {
	store.Team
	Players    []store.Player        `json:"players"`
	Statistics []store.TeamStatistic `json:"statistics"`
}

func HandleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleList(w, r)
	case http.MethodPost:
		handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func HandleTeamByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID de equipo inválido", nil)
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
	teams, err := database.Queries.ListTeams(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener los equipos", err)
		return
	}

	views := make([]TeamView, 0, len(teams))
	for _, team := range teams {
		view, err := buildTeamView(r, team)
		if err != nil {
			apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener los equipos", err)
			return
		}
		views = append(views, view)
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, views)
}

func handleGet(w http.ResponseWriter, r *http.Request, id string) {
	team, err := database.Queries.GetTeam(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Equipo no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener el equipo", err)
		return
	}

	view, err := buildTeamView(r, team)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener el equipo", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, view)
}

type createTeamRequest struct {
	Name         string  `json:"name"`
	Neighborhood string  `json:"neighborhood"`
	Description  *string `json:"description"`
	Logo         *string `json:"logo"`
	Color        *string `json:"color"`
	FoundedAt    *string `json:"foundedAt"`
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.Name == "" || req.Neighborhood == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Nombre y barrio son requeridos", nil)
		return
	}

	var foundedAt *time.Time
	if req.FoundedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.FoundedAt); err == nil {
			foundedAt = &parsed
		}
	}

	var team store.Team
	err := database.RunInTx(r.Context(), func(tx *db.DB) error {
		created, err := tx.Queries.CreateTeam(r.Context(), store.CreateTeamParams{
			Name:         req.Name,
			Neighborhood: req.Neighborhood,
			Description:  req.Description,
			Logo:         req.Logo,
			Color:        req.Color,
			FoundedAt:    foundedAt,
		})
		if err != nil {
			return err
		}
		team = created

		// Every team starts the season with a zeroed aggregate row.
		_, err = tx.Queries.CreateTeamStatistic(r.Context(), store.TeamSeasonParams{
			TeamID: team.ID,
			Season: season,
		})
		return err
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear el equipo", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("team_id", team.ID).Str("name", team.Name).Msg("Team created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, team)
}

type updateTeamRequest struct {
	Name         *string `json:"name"`
	Neighborhood *string `json:"neighborhood"`
	Description  *string `json:"description"`
	Logo         *string `json:"logo"`
	Color        *string `json:"color"`
	Sponsor1     *string `json:"sponsor1"`
	Sponsor2     *string `json:"sponsor2"`
	Sponsor3     *string `json:"sponsor3"`
	Sponsor4     *string `json:"sponsor4"`
	Sponsor5     *string `json:"sponsor5"`
	Sponsor6     *string `json:"sponsor6"`
}

func handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTeamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}

	team, err := database.Queries.UpdateTeam(r.Context(), store.UpdateTeamParams{
		ID:           id,
		Name:         req.Name,
		Neighborhood: req.Neighborhood,
		Description:  req.Description,
		Logo:         req.Logo,
		Color:        req.Color,
		Sponsor1:     req.Sponsor1,
		Sponsor2:     req.Sponsor2,
		Sponsor3:     req.Sponsor3,
		Sponsor4:     req.Sponsor4,
		Sponsor5:     req.Sponsor5,
		Sponsor6:     req.Sponsor6,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Equipo no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el equipo", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, team)
}

func handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := database.Queries.DeleteTeam(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Equipo no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al eliminar el equipo", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("team_id", id).Msg("Team deleted")
	apiutil.WriteSuccess(w)
}

func buildTeamView(r *http.Request, team store.Team) (TeamView, error) {
	players, err := database.Queries.ListActivePlayersByTeam(r.Context(), team.ID)
	if err != nil {
		return TeamView{}, err
	}

	view := TeamView{
		Team:       team,
		Players:    players,
		Statistics: []store.TeamStatistic{},
	}
	if view.Players == nil {
		view.Players = []store.Player{}
	}

	stats, err := database.Queries.GetTeamStatistic(r.Context(), store.TeamSeasonParams{
		TeamID: team.ID,
		Season: season,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return TeamView{}, err
		}
	} else {
		view.Statistics = append(view.Statistics, stats)
	}

	return view, nil
}

func pathID(r *http.Request) string {
	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
