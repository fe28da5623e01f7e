package scheduler

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/config"
	"github.com/visijn/haccp/internal/service/records"
	"github.com/visijn/haccp/internal/service/report"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	recordsSvc *records.Service
	reports    *report.Generator
	cfg        config.Config
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the report timezone.
func NewScheduler(cfg config.Config, recordsSvc *records.Service, reports *report.Generator, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(cron.WithLocation(cfg.Location()))

	return &Scheduler{
		cron:       c,
		recordsSvc: recordsSvc,
		reports:    reports,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the nightly archive job and starts the scheduler. An empty
// schedule disables it.
func (s *Scheduler) Start() {
	if s.cfg.Reporting.ArchiveCron == "" {
		s.logger.Info("report archiving disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.ArchiveCron))

	_, err := s.cron.AddFunc(s.cfg.Reporting.ArchiveCron, s.archiveDailyReport)
	if err != nil {
		s.logger.Error("failed to schedule report archiving", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// archiveDailyReport renders today's report and files it into the document
// safe, so the day keeps a record even when nobody exported one by hand.
func (s *Scheduler) archiveDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().In(s.cfg.Location())
	s.logger.Info("archiving daily report", zap.String("date", day.Format("2006-01-02")))

	pdf, err := s.reports.Daily(s.recordsSvc.Snapshot(), day)
	if err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
		return
	}

	s.recordsSvc.AddDocument(ctx, records.DocumentInput{
		Category: "other",
		Title:    fmt.Sprintf("Rapport journalier %s", day.Format("2006-01-02")),
		FileData: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf),
	})
}
