package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/league"
)

const repairJobTimeout = 2 * time.Minute

// RegisterRepairJob schedules the periodic season-aggregate recompute. The
// reconciler keeps the aggregates consistent on every edit; this job is the
// safety net that converges them after out-of-band changes such as match
// deletions.
func RegisterRepairJob(database *db.DB, season, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("repair job requires database")
	}
	if cronExpr == "" {
		cronExpr = "0 4 * * *"
	}

	jobName := "statistics_repair"
	jobLogger := log.With().
		Str("component", "statistics_repair_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), repairJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if err := league.RepairSeason(ctx, database, season); err != nil {
			jobLogger.Error().Err(err).Msg("Statistics repair failed")
			return
		}
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add statistics repair job: %w", err)
	}

	jobLogger.Info().Msg("Statistics repair job registered")
	return nil
}
