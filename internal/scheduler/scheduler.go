package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Exporter runs a spreadsheet export for a date range.
type Exporter interface {
	Export(ctx context.Context, identity string, r models.DateRange) (models.ExportResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	cfg      config.ReportingConfig
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
	job      cron.Job
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, exporter Exporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		cfg:      cfg,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
	s.job = cron.NewChain(cron.Recover(cronLogger{logger.Sugar()})).Then(cron.FuncJob(s.runMonthlyExport))
	return s, nil
}

// Start registers the export job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.loc.String()))

	if _, err := s.cron.AddJob(s.cfg.CronSchedule, s.job); err != nil {
		return fmt.Errorf("schedule analytics export: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runMonthlyExport() {
	r := PreviousMonth(s.now().In(s.loc))
	s.logger.Info("running scheduled analytics export",
		zap.Time("start", r.Start), zap.Time("end", r.End))

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.exporter.Export(ctx, "", r)
	if err != nil {
		s.logger.Error("scheduled analytics export failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled analytics export completed", zap.String("export_id", result.ID))
}

// PreviousMonth returns the full calendar month before the one containing t, in t's
// location.
func PreviousMonth(t time.Time) models.DateRange {
	thisMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return models.DateRange{
		Start: thisMonth.AddDate(0, -1, 0),
		End:   thisMonth.Add(-time.Nanosecond),
	}
}

// cronLogger routes cron's own logging (including recovered job panics) to zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
