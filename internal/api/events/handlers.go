// internal/api/events/handlers.go
package events

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

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

// HandleDeleteEvent removes a goal, card or assist and rewinds the booked
// player's season counters in the same transaction.
// Routed as DELETE /api/v1/events/{type}/{id}.
func HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventType, id := pathParts(r)
	if id == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID es requerido", nil)
		return
	}

	var err error
	switch eventType {
	case "goal":
		err = deleteGoal(r, id)
	case "card":
		err = deleteCard(r, id)
	case "assist":
		err = deleteAssist(r, id)
	default:
		apiutil.WriteError(w, r, http.StatusBadRequest, "Tipo inválido", nil)
		return
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Evento no encontrado", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al eliminar el evento", err)
		return
	}

	log.Ctx(r.Context()).Info().
		Str("event_type", eventType).
		Str("event_id", id).
		Msg("Event deleted")
	apiutil.WriteSuccess(w)
}

func deleteGoal(r *http.Request, id string) error {
	return database.RunInTx(r.Context(), func(tx *db.DB) error {
		goal, err := tx.Queries.GetGoal(r.Context(), id)
		if err != nil {
			return err
		}
		if err := tx.Queries.DeleteGoal(r.Context(), id); err != nil {
			return err
		}
		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), store.PlayerStatisticDelta{
			PlayerID: goal.PlayerID,
			Season:   season,
			Goals:    -1,
		})
	})
}

func deleteCard(r *http.Request, id string) error {
	return database.RunInTx(r.Context(), func(tx *db.DB) error {
		card, err := tx.Queries.GetCard(r.Context(), id)
		if err != nil {
			return err
		}
		if err := tx.Queries.DeleteCard(r.Context(), id); err != nil {
			return err
		}

		delta := store.PlayerStatisticDelta{PlayerID: card.PlayerID, Season: season}
		if card.Type == store.CardRed {
			delta.RedCards = -1
		} else {
			delta.YellowCards = -1
		}
		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), delta)
	})
}

func deleteAssist(r *http.Request, id string) error {
	return database.RunInTx(r.Context(), func(tx *db.DB) error {
		assist, err := tx.Queries.GetAssist(r.Context(), id)
		if err != nil {
			return err
		}
		if err := tx.Queries.DeleteAssist(r.Context(), id); err != nil {
			return err
		}
		return tx.Queries.ApplyPlayerStatisticDelta(r.Context(), store.PlayerStatisticDelta{
			PlayerID: assist.PlayerID,
			Season:   season,
			Assists:  -1,
		})
	})
}

// pathParts splits /api/v1/events/{type}/{id} into the event type and id.
func pathParts(r *http.Request) (eventType, id string) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/events"), "/")
	parts := strings.SplitN(trimmed, "/", 2)
	eventType = parts[0]
	if len(parts) == 2 {
		id = parts[1]
	}
	return eventType, id
}
