// internal/scheduler/completion.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/store"
)

const completionJobTimeout = time.Minute

// RegisterCompletionJob schedules the sweep that marks confirmed reservations
// whose end time has passed as completed. Completion is the one lifecycle
// transition driven by time rather than by a caller.
func (s *Service) RegisterCompletionJob(database *appdb.DB, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("completion job requires database")
	}

	jobName := "reservation_completion"
	jobLogger := log.With().
		Str("component", "reservation_completion_job").
		Str("job_name", jobName).
		Logger()

	_, err := s.AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), completionJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		completed, err := store.New(database).CompletePastReservations(ctx, time.Now().UTC())
		if err != nil {
			jobLogger.Error().Err(err).Msg("Completion sweep failed")
			return
		}
		if completed > 0 {
			jobLogger.Info().Int64("completed", completed).Msg("Reservations marked completed")
		}
	})
	return err
}
