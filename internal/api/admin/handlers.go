// internal/api/admin/handlers.go
package admin

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/league"
)

var (
	database *db.DB
	season   string
)

func InitHandlers(d *db.DB, activeSeason string) {
	database = d
	season = activeSeason
}

// HandleRepair recomputes the season aggregates from the match rows on demand.
func HandleRepair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := league.RepairSeason(r.Context(), database, season); err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al recalcular las estadísticas", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("season", season).Msg("Manual statistics repair completed")
	apiutil.WriteSuccess(w)
}
