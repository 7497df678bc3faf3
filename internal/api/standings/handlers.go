// internal/api/standings/handlers.go
package standings

import (
	"net/http"

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

// HandleStandings serves the season table, sorted and with positions assigned.
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := league.CalculateStandings(r.Context(), database.Queries, season)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener la tabla", err)
		return
	}
	if rows == nil {
		rows = []league.StandingRow{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, rows)
}
