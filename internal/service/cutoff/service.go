package cutoff

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/cutoff"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"github.com/google/uuid"
)

type CutoffServiceImpl struct {
	cutoffDay     int
	exceptionRepo timeexception.Repository
	employeeRepo  employee.Repository
	auditSink     audit.Sink
	notifier      notification.Service
}

func NewCutoffService(
	cutoffDay int,
	exceptionRepo timeexception.Repository,
	employeeRepo employee.Repository,
	auditSink audit.Sink,
	notifier notification.Service,
) cutoff.Service {
	return &CutoffServiceImpl{
		cutoffDay:     cutoffDay,
		exceptionRepo: exceptionRepo,
		employeeRepo:  employeeRepo,
		auditSink:     auditSink,
		notifier:      notifier,
	}
}

// NextCutoffDate implements cutoff.Service. The configured day is clamped to
// the target month's length, so a day-31 cutoff lands on Feb 28/29.
func (s *CutoffServiceImpl) NextCutoffDate(now time.Time) time.Time {
	year, month, day := now.Date()
	cutoffDay := clampDay(s.cutoffDay, year, month)
	if day > cutoffDay {
		firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location())
		year, month, _ = firstOfNext.Date()
		cutoffDay = clampDay(s.cutoffDay, year, month)
	}
	return time.Date(year, month, cutoffDay, 0, 0, 0, 0, now.Location())
}

// DaysUntilCutoff implements cutoff.Service.
func (s *CutoffServiceImpl) DaysUntilCutoff(now, cutoffDate time.Time) int {
	days := int(math.Ceil(cutoffDate.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// Categorize implements cutoff.Service. Cutoff distance and exception age
// are independent signals; the worse band wins.
func (s *CutoffServiceImpl) Categorize(ex timeexception.TimeException, now, cutoffDate time.Time) cutoff.Urgency {
	daysUntil := s.DaysUntilCutoff(now, cutoffDate)
	ageDays := int(ex.Age(now).Hours() / 24)

	switch {
	case daysUntil <= 2 || ageDays >= 5:
		return cutoff.UrgencyCritical
	case daysUntil <= 5 || ageDays >= 3:
		return cutoff.UrgencyHigh
	default:
		return cutoff.UrgencyMedium
	}
}

// AutoEscalate implements cutoff.Service. Escalation is best-effort: each
// exception is escalated independently and one failure never blocks the
// rest.
func (s *CutoffServiceImpl) AutoEscalate(ctx context.Context, cutoffDate time.Time, escalationDaysBefore int, notifyManagers bool) (cutoff.EscalationResult, error) {
	now := time.Now().UTC()
	daysUntil := s.DaysUntilCutoff(now, cutoffDate)

	if daysUntil > escalationDaysBefore {
		return cutoff.EscalationResult{
			InWindow: false,
			Message:  fmt.Sprintf("not within escalation window: cutoff is %d days away, window opens at %d", daysUntil, escalationDaysBefore),
		}, nil
	}

	pending, err := s.exceptionRepo.ListByStatusIn(ctx, timeexception.UnresolvedStatuses())
	if err != nil {
		return cutoff.EscalationResult{}, fmt.Errorf("failed to list unresolved exceptions: %w", err)
	}

	annotation := fmt.Sprintf(" | auto-escalated at %s ahead of payroll cutoff %s",
		now.Format(time.RFC3339), cutoffDate.Format("2006-01-02"))

	result := cutoff.EscalationResult{
		InWindow:  true,
		Escalated: []string{},
		Failed:    []cutoff.EscalationFailure{},
	}

	for _, ex := range pending {
		ok, err := s.exceptionRepo.Escalate(ctx, ex.ID, annotation)
		if err != nil {
			result.Failed = append(result.Failed, cutoff.EscalationFailure{
				ExceptionID: ex.ID,
				Reason:      err.Error(),
			})
			continue
		}
		if !ok {
			result.Failed = append(result.Failed, cutoff.EscalationFailure{
				ExceptionID: ex.ID,
				Reason:      "exception was resolved or escalated concurrently",
			})
			continue
		}

		result.Escalated = append(result.Escalated, ex.ID)
		s.recordAudit(ctx, ex.ID, map[string]any{
			"status":      timeexception.StatusEscalated,
			"cutoff_date": cutoffDate.Format("2006-01-02"),
		})
	}

	result.Message = fmt.Sprintf("escalated %d of %d unresolved exceptions", len(result.Escalated), len(pending))

	if notifyManagers && len(result.Escalated) > 0 {
		s.notifyManagersOfEscalation(ctx, len(result.Escalated), daysUntil, cutoffDate)
	}

	return result, nil
}

// ReadinessStatus implements cutoff.Service.
func (s *CutoffServiceImpl) ReadinessStatus(ctx context.Context, cutoffDate time.Time) (cutoff.ReadinessStatusResponse, error) {
	counts, err := s.exceptionRepo.CountByStatus(ctx)
	if err != nil {
		return cutoff.ReadinessStatusResponse{}, fmt.Errorf("failed to count exceptions by status: %w", err)
	}

	now := time.Now().UTC()
	daysUntil := s.DaysUntilCutoff(now, cutoffDate)
	pending := counts[timeexception.StatusOpen] + counts[timeexception.StatusPending]
	escalated := counts[timeexception.StatusEscalated]

	var status cutoff.RunReadiness
	switch {
	case pending == 0 && escalated == 0:
		status = cutoff.ReadinessReady
	case pending > 0 && daysUntil <= 1:
		status = cutoff.ReadinessCritical
	case pending > 0:
		status = cutoff.ReadinessBlocked
	default:
		status = cutoff.ReadinessWarning
	}

	return cutoff.ReadinessStatusResponse{
		Status:          status,
		PendingCount:    pending,
		EscalatedCount:  escalated,
		CutoffDate:      cutoffDate.Format("2006-01-02"),
		DaysUntilCutoff: daysUntil,
	}, nil
}

// SendCutoffReminders implements cutoff.Service. One reminder per assignee,
// summarizing their pending count and the days remaining.
func (s *CutoffServiceImpl) SendCutoffReminders(ctx context.Context, cutoffDate time.Time, reminderDaysBefore int) (cutoff.ReminderResult, error) {
	now := time.Now().UTC()
	daysUntil := s.DaysUntilCutoff(now, cutoffDate)

	if daysUntil > reminderDaysBefore {
		return cutoff.ReminderResult{
			InWindow: false,
			Message:  fmt.Sprintf("not within reminder window: cutoff is %d days away, window opens at %d", daysUntil, reminderDaysBefore),
		}, nil
	}

	pending, err := s.exceptionRepo.ListByStatusIn(ctx, timeexception.UnresolvedStatuses())
	if err != nil {
		return cutoff.ReminderResult{}, fmt.Errorf("failed to list unresolved exceptions: %w", err)
	}

	byAssignee := make(map[string]int)
	for _, ex := range pending {
		byAssignee[ex.AssignedTo]++
	}

	assignees := make([]string, 0, len(byAssignee))
	for assignee := range byAssignee {
		assignees = append(assignees, assignee)
	}
	sort.Strings(assignees)

	for _, assignee := range assignees {
		s.notifier.Send(ctx, assignee, notification.TypeCutoffReminder,
			fmt.Sprintf("You have %d pending time exceptions awaiting resolution; payroll cutoff %s is %d days away",
				byAssignee[assignee], cutoffDate.Format("2006-01-02"), daysUntil))
	}

	return cutoff.ReminderResult{
		InWindow:      true,
		Message:       fmt.Sprintf("sent %d cutoff reminders", len(assignees)),
		RemindersSent: len(assignees),
	}, nil
}

func (s *CutoffServiceImpl) notifyManagersOfEscalation(ctx context.Context, escalatedCount, daysUntil int, cutoffDate time.Time) {
	managers, err := s.employeeRepo.ListManagers(ctx)
	if err != nil {
		slog.Error("failed to list managers for escalation alert", "error", err)
		return
	}

	message := fmt.Sprintf("%d time exceptions were auto-escalated ahead of payroll cutoff %s (%d days away)",
		escalatedCount, cutoffDate.Format("2006-01-02"), daysUntil)
	for _, m := range managers {
		s.notifier.Send(ctx, m.ID, notification.TypeExceptionsEscalated, message)
	}
}

func (s *CutoffServiceImpl) recordAudit(ctx context.Context, exceptionID string, changeSet map[string]any) {
	entry := audit.Entry{
		ID:        uuid.NewString(),
		Entity:    "time_exception",
		EntityID:  exceptionID,
		ChangeSet: changeSet,
		ActorID:   "system",
		At:        time.Now().UTC(),
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		slog.Error("failed to record escalation audit entry", "exception_id", exceptionID, "error", err)
	}
}

func clampDay(day, year int, month time.Month) int {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		return lastDay
	}
	return day
}
