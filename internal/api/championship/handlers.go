// internal/api/championship/handlers.go
package championship

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
)

var database *db.DB

func InitHandlers(d *db.DB) {
	database = d
}

func HandleChampionship(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleGetActive(w, r)
	case http.MethodPost:
		handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleGetActive(w http.ResponseWriter, r *http.Request) {
	championship, err := database.Queries.GetActiveChampionship(r.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "No hay campeonato activo", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener el campeonato", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, championship)
}

type createChampionshipRequest struct {
	Name        string  `json:"name"`
	Subtitle    *string `json:"subtitle"`
	Season      string  `json:"season"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	IsActive    bool    `json:"isActive"`
	Description *string `json:"description"`
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createChampionshipRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.Name == "" || req.Season == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Nombre y temporada son requeridos", nil)
		return
	}

	championship, err := database.Queries.CreateChampionship(r.Context(), store.CreateChampionshipParams{
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Season:      req.Season,
		StartDate:   parseDate(req.StartDate),
		EndDate:     parseDate(req.EndDate),
		IsActive:    req.IsActive,
		Description: req.Description,
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear el campeonato", err)
		return
	}

	log.Ctx(r.Context()).Info().
		Str("championship_id", championship.ID).
		Str("season", championship.Season).
		Msg("Championship created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, championship)
}

func parseDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	return &parsed
}
