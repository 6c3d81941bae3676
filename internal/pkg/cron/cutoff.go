package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/config"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/cutoff"
)

// CutoffJobs drives the escalation scheduler: a periodic escalation sweep
// and a reminder sweep, both keyed off the configured monthly cutoff day.
type CutoffJobs struct {
	cutoffService cutoff.Service
	cfg           config.CutoffConfig
}

func NewCutoffJobs(cutoffService cutoff.Service, cfg config.CutoffConfig) *CutoffJobs {
	return &CutoffJobs{
		cutoffService: cutoffService,
		cfg:           cfg,
	}
}

func (j *CutoffJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_escalate_exceptions", 1*time.Hour, j.AutoEscalateExceptions)
	scheduler.AddJob("cutoff_reminders", 1*time.Hour, j.SendCutoffReminders)
}

// AutoEscalateExceptions escalates every unresolved time exception once the
// payroll cutoff is inside the escalation window. Outside the window the
// sweep is a no-op; inside it, escalation is idempotent because already
// escalated exceptions are no longer picked up.
func (j *CutoffJobs) AutoEscalateExceptions(ctx context.Context) error {
	now := time.Now()
	cutoffDate := j.cutoffService.NextCutoffDate(now)

	result, err := j.cutoffService.AutoEscalate(ctx, cutoffDate, j.cfg.EscalationDaysBefore, j.cfg.NotifyManagers)
	if err != nil {
		return err
	}

	if !result.InWindow {
		slog.Debug("Cron: escalation sweep skipped", "reason", result.Message)
		return nil
	}

	slog.Info("Cron: escalation sweep completed",
		"cutoff_date", cutoffDate.Format("2006-01-02"),
		"escalated", len(result.Escalated),
		"failed", len(result.Failed),
	)
	return nil
}

// SendCutoffReminders notifies each assignee with pending exceptions when
// the cutoff is close enough.
func (j *CutoffJobs) SendCutoffReminders(ctx context.Context) error {
	now := time.Now()
	cutoffDate := j.cutoffService.NextCutoffDate(now)

	result, err := j.cutoffService.SendCutoffReminders(ctx, cutoffDate, j.cfg.ReminderDaysBefore)
	if err != nil {
		return err
	}

	if result.RemindersSent > 0 {
		slog.Info("Cron: cutoff reminders sent",
			"cutoff_date", cutoffDate.Format("2006-01-02"),
			"reminders", result.RemindersSent,
		)
	}
	return nil
}
