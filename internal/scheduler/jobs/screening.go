package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/marketdesk/internal/screen"
	"github.com/wonny/marketdesk/pkg/logger"
)

// ScreeningJob runs the daily screening pipeline on a cron schedule
type ScreeningJob struct {
	pipeline *screen.Pipeline
	schedule string
	logger   *logger.Logger
}

// NewScreeningJob creates a scheduled screening job
func NewScreeningJob(pipeline *screen.Pipeline, schedule string, log *logger.Logger) *ScreeningJob {
	return &ScreeningJob{
		pipeline: pipeline,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreeningJob) Name() string {
	return "daily-screening"
}

// Schedule returns the cron expression (seconds field included)
func (j *ScreeningJob) Schedule() string {
	return j.schedule
}

// Run executes the screening pipeline
func (j *ScreeningJob) Run(ctx context.Context) error {
	result, err := j.pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("screening pipeline: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"screened": result.Screened,
		"skipped":  result.Skipped,
		"elapsed":  result.Elapsed.String(),
	}).Info("Scheduled screening finished")

	return nil
}
