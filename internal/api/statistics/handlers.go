// internal/api/statistics/handlers.go
package statistics

import (
	"net/http"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/league"
)

var database *db.DB

func InitHandlers(d *db.DB) {
	database = d
}

// HandleStatistics serves the leaderboards, season summary and team awards.
func HandleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := league.BuildReport(r.Context(), database.Queries)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener las estadísticas", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, report)
}
