// internal/api/players/handlers.go
package players

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

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

func HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleList(w, r)
	case http.MethodPost:
		handleCreate(w, r)
	case http.MethodPatch:
		handleUpdate(w, r)
	case http.MethodDelete:
		handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleList(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "teamId es requerido", nil)
		return
	}

	players, err := database.Queries.ListActivePlayersByTeam(r.Context(), teamID)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener los jugadores", err)
		return
	}
	if players == nil {
		players = []store.Player{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, players)
}

type createPlayerRequest struct {
	Name     string             `json:"name"`
	Number   *apiutil.LenientInt `json:"number"`
	Position string             `json:"position"`
	TeamID   string             `json:"teamId"`
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.Name == "" || req.Number == nil || req.Position == "" || req.TeamID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Todos los campos son requeridos", nil)
		return
	}

	number := req.Number.Int()
	taken, err := database.Queries.PlayerNumberTaken(r.Context(), store.PlayerNumberTakenParams{
		TeamID: req.TeamID,
		Number: number,
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear el jugador", err)
		return
	}
	if taken {
		message := fmt.Sprintf("El número %d ya está asignado en este equipo", number)
		apiutil.WriteError(w, r, http.StatusBadRequest, message, nil)
		return
	}

	var player store.Player
	err = database.RunInTx(r.Context(), func(tx *db.DB) error {
		created, err := tx.Queries.CreatePlayer(r.Context(), store.CreatePlayerParams{
			TeamID:   req.TeamID,
			Name:     req.Name,
			Number:   number,
			Position: req.Position,
		})
		if err != nil {
			return err
		}
		player = created

		_, err = tx.Queries.CreatePlayerStatistic(r.Context(), player.ID, season)
		return err
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear el jugador", err)
		return
	}

	log.Ctx(r.Context()).Info().
		Str("player_id", player.ID).
		Str("team_id", player.TeamID).
		Int("number", player.Number).
		Msg("Player created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, player)
}

type updatePlayerRequest struct {
	ID       string             `json:"id"`
	Name     *string            `json:"name"`
	Number   *apiutil.LenientInt `json:"number"`
	Position *string            `json:"position"`
}

func handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updatePlayerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.ID == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID es requerido", nil)
		return
	}

	current, err := database.Queries.GetPlayer(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Jugador no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el jugador", err)
		return
	}

	// Re-check jersey uniqueness only when the number actually changes.
	if req.Number != nil && req.Number.Int() != current.Number {
		taken, err := database.Queries.PlayerNumberTaken(r.Context(), store.PlayerNumberTakenParams{
			TeamID:          current.TeamID,
			Number:          req.Number.Int(),
			ExcludePlayerID: current.ID,
		})
		if err != nil {
			apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el jugador", err)
			return
		}
		if taken {
			message := fmt.Sprintf("El número %d ya está asignado en este equipo", req.Number.Int())
			apiutil.WriteError(w, r, http.StatusBadRequest, message, nil)
			return
		}
	}

	player, err := database.Queries.UpdatePlayer(r.Context(), store.UpdatePlayerParams{
		ID:       req.ID,
		Name:     req.Name,
		Number:   req.Number.IntPtr(),
		Position: req.Position,
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar el jugador", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, player)
}

// handleDelete removes the player permanently; the jersey number becomes
// available again immediately.
func handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID es requerido", nil)
		return
	}

	if err := database.Queries.DeletePlayer(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Jugador no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al eliminar el jugador", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("player_id", id).Msg("Player deleted")
	apiutil.WriteSuccess(w)
}
