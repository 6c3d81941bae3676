package cutoff

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/cutoff"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExceptionRepo struct {
	mu         sync.Mutex
	exceptions map[string]timeexception.TimeException
	failIDs    map[string]bool
}

func newFakeExceptionRepo(exceptions ...timeexception.TimeException) *fakeExceptionRepo {
	r := &fakeExceptionRepo{
		exceptions: make(map[string]timeexception.TimeException),
		failIDs:    make(map[string]bool),
	}
	for _, ex := range exceptions {
		r.exceptions[ex.ID] = ex
	}
	return r
}

func (r *fakeExceptionRepo) GetByID(_ context.Context, id string) (timeexception.TimeException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exceptions[id]
	if !ok {
		return timeexception.TimeException{}, timeexception.ErrExceptionNotFound
	}
	return ex, nil
}

func (r *fakeExceptionRepo) ListCreatedInRange(_ context.Context, _, _ time.Time, _ *string) ([]timeexception.TimeException, error) {
	return nil, nil
}

func (r *fakeExceptionRepo) ListByStatusIn(_ context.Context, statuses []timeexception.Status) ([]timeexception.TimeException, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timeexception.TimeException
	for _, ex := range r.exceptions {
		for _, s := range statuses {
			if ex.Status == s {
				out = append(out, ex)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) ListOrphanOvertime(_ context.Context) ([]timeexception.TimeException, error) {
	return nil, nil
}

func (r *fakeExceptionRepo) ListReferencingRecords(_ context.Context, _ []string) ([]timeexception.TimeException, error) {
	return nil, nil
}

func (r *fakeExceptionRepo) Escalate(_ context.Context, id string, annotation string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[id] {
		return false, nil
	}
	ex, ok := r.exceptions[id]
	if !ok || !ex.Status.IsUnresolved() {
		return false, nil
	}
	ex.Status = timeexception.StatusEscalated
	ex.Reason += annotation
	r.exceptions[id] = ex
	return true, nil
}

func (r *fakeExceptionRepo) CountByStatus(_ context.Context) (map[timeexception.Status]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[timeexception.Status]int)
	for _, ex := range r.exceptions {
		counts[ex.Status]++
	}
	return counts, nil
}

type fakeEmployeeRepo struct {
	managers []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListManagers(_ context.Context) ([]employee.Employee, error) {
	return r.managers, nil
}

type memAuditSink struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *memAuditSink) Record(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memAuditSink) ListByRange(_ context.Context, _, _ time.Time) ([]audit.Entry, error) {
	return s.entries, nil
}

type sentNotification struct {
	RecipientID string
	Type        notification.Type
	Message     string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) Send(_ context.Context, recipientID string, typ notification.Type, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{RecipientID: recipientID, Type: typ, Message: message})
}

func newTestService(cutoffDay int, repo *fakeExceptionRepo) (cutoff.Service, *memAuditSink, *fakeNotifier) {
	employees := &fakeEmployeeRepo{managers: []employee.Employee{
		{ID: "mgr-1", FullName: "Citra Dewi", IsManager: true, Status: employee.StatusActive},
	}}
	sink := &memAuditSink{}
	notifier := &fakeNotifier{}
	svc := NewCutoffService(cutoffDay, repo, employees, sink, notifier)
	return svc, sink, notifier
}

func TestNextCutoffDate(t *testing.T) {
	svc, _, _ := newTestService(25, newFakeExceptionRepo())

	now := time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.July, 25, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))

	now = time.Date(2025, time.July, 26, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))

	// On the cutoff day itself the cutoff has not passed yet.
	now = time.Date(2025, time.July, 25, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.July, 25, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))
}

func TestNextCutoffDateClampedToMonthLength(t *testing.T) {
	svc, _, _ := newTestService(31, newFakeExceptionRepo())

	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))

	now = time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))

	now = time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), svc.NextCutoffDate(now))
}

func TestDaysUntilCutoffCeiling(t *testing.T) {
	svc, _, _ := newTestService(25, newFakeExceptionRepo())

	cutoffDate := time.Date(2025, time.July, 25, 0, 0, 0, 0, time.UTC)

	now := time.Date(2025, time.July, 24, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, svc.DaysUntilCutoff(now, cutoffDate))

	now = time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, svc.DaysUntilCutoff(now, cutoffDate))

	// Past cutoffs never go negative.
	now = time.Date(2025, time.July, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, svc.DaysUntilCutoff(now, cutoffDate))
}

func TestCategorize(t *testing.T) {
	svc, _, _ := newTestService(25, newFakeExceptionRepo())
	now := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		cutoffDate time.Time
		createdAt  time.Time
		want       cutoff.Urgency
	}{
		{"near cutoff", now.AddDate(0, 0, 1), now.AddDate(0, 0, -1), cutoff.UrgencyCritical},
		{"old exception wins critical despite distant cutoff", now.AddDate(0, 0, 10), now.AddDate(0, 0, -6), cutoff.UrgencyCritical},
		{"cutoff within five days", now.AddDate(0, 0, 4), now.AddDate(0, 0, -1), cutoff.UrgencyHigh},
		{"aging exception", now.AddDate(0, 0, 10), now.AddDate(0, 0, -3), cutoff.UrgencyHigh},
		{"fresh and far from cutoff", now.AddDate(0, 0, 10), now.AddDate(0, 0, -1), cutoff.UrgencyMedium},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ex := timeexception.TimeException{ID: "ex", Status: timeexception.StatusOpen, CreatedAt: c.createdAt}
			assert.Equal(t, c.want, svc.Categorize(ex, now, c.cutoffDate))
		})
	}
}

func TestAutoEscalateOutsideWindowIsNoOp(t *testing.T) {
	repo := newFakeExceptionRepo(timeexception.TimeException{
		ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1", Reason: "missed punch on 2025-07-03",
	})
	svc, sink, _ := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 10)
	result, err := svc.AutoEscalate(context.Background(), cutoffDate, 3, true)
	require.NoError(t, err)

	assert.False(t, result.InWindow)
	assert.Contains(t, result.Message, "not within escalation window")
	assert.Empty(t, result.Escalated)
	assert.Empty(t, sink.entries)

	ex, err := repo.GetByID(context.Background(), "ex-1")
	require.NoError(t, err)
	assert.Equal(t, timeexception.StatusOpen, ex.Status)
}

func TestAutoEscalateEscalatesAllUnresolved(t *testing.T) {
	repo := newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1", Reason: "missed punch on 2025-07-03"},
		timeexception.TimeException{ID: "ex-2", Status: timeexception.StatusPending, AssignedTo: "staff-2", Reason: "overtime needs review"},
		timeexception.TimeException{ID: "ex-3", Status: timeexception.StatusResolved, AssignedTo: "staff-1", Reason: "late arrival"},
	)
	svc, sink, notifier := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 2)
	result, err := svc.AutoEscalate(context.Background(), cutoffDate, 3, true)
	require.NoError(t, err)

	assert.True(t, result.InWindow)
	assert.ElementsMatch(t, []string{"ex-1", "ex-2"}, result.Escalated)
	assert.Empty(t, result.Failed)

	// The annotation is appended, never overwrites the original reason.
	ex, err := repo.GetByID(context.Background(), "ex-1")
	require.NoError(t, err)
	assert.Equal(t, timeexception.StatusEscalated, ex.Status)
	assert.True(t, strings.HasPrefix(ex.Reason, "missed punch on 2025-07-03"))
	assert.Contains(t, ex.Reason, "auto-escalated at")

	// Resolved exceptions are left alone.
	ex3, err := repo.GetByID(context.Background(), "ex-3")
	require.NoError(t, err)
	assert.Equal(t, timeexception.StatusResolved, ex3.Status)

	assert.Len(t, sink.entries, 2)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "mgr-1", notifier.sent[0].RecipientID)
	assert.Equal(t, notification.TypeExceptionsEscalated, notifier.sent[0].Type)
}

func TestAutoEscalateCollectsPartialFailures(t *testing.T) {
	repo := newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1", Reason: "a"},
		timeexception.TimeException{ID: "ex-2", Status: timeexception.StatusOpen, AssignedTo: "staff-1", Reason: "b"},
	)
	repo.failIDs["ex-2"] = true
	svc, _, _ := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 2)
	result, err := svc.AutoEscalate(context.Background(), cutoffDate, 3, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"ex-1"}, result.Escalated)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ex-2", result.Failed[0].ExceptionID)
}

func TestAutoEscalateIsIdempotent(t *testing.T) {
	repo := newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1", Reason: "a"},
	)
	svc, _, _ := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 2)
	first, err := svc.AutoEscalate(context.Background(), cutoffDate, 3, false)
	require.NoError(t, err)
	require.Len(t, first.Escalated, 1)

	second, err := svc.AutoEscalate(context.Background(), cutoffDate, 3, false)
	require.NoError(t, err)
	assert.Empty(t, second.Escalated)
	assert.Empty(t, second.Failed)
}

func TestReadinessStatus(t *testing.T) {
	ctx := context.Background()
	cutoffDate := time.Now().UTC().AddDate(0, 0, 7)

	svc, _, _ := newTestService(25, newFakeExceptionRepo())
	status, err := svc.ReadinessStatus(ctx, cutoffDate)
	require.NoError(t, err)
	assert.Equal(t, cutoff.ReadinessReady, status.Status)

	svc, _, _ = newTestService(25, newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen},
	))
	status, err = svc.ReadinessStatus(ctx, cutoffDate)
	require.NoError(t, err)
	assert.Equal(t, cutoff.ReadinessBlocked, status.Status)
	assert.Equal(t, 1, status.PendingCount)

	svc, _, _ = newTestService(25, newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen},
	))
	status, err = svc.ReadinessStatus(ctx, time.Now().UTC().Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, cutoff.ReadinessCritical, status.Status)

	svc, _, _ = newTestService(25, newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusEscalated},
	))
	status, err = svc.ReadinessStatus(ctx, cutoffDate)
	require.NoError(t, err)
	assert.Equal(t, cutoff.ReadinessWarning, status.Status)
	assert.Equal(t, 1, status.EscalatedCount)
}

func TestSendCutoffRemindersGroupsByAssignee(t *testing.T) {
	repo := newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1"},
		timeexception.TimeException{ID: "ex-2", Status: timeexception.StatusPending, AssignedTo: "staff-1"},
		timeexception.TimeException{ID: "ex-3", Status: timeexception.StatusOpen, AssignedTo: "staff-2"},
	)
	svc, _, notifier := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 4)
	result, err := svc.SendCutoffReminders(context.Background(), cutoffDate, 5)
	require.NoError(t, err)

	assert.True(t, result.InWindow)
	assert.Equal(t, 2, result.RemindersSent)
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "staff-1", notifier.sent[0].RecipientID)
	assert.Equal(t, "staff-2", notifier.sent[1].RecipientID)
	assert.Contains(t, notifier.sent[0].Message, "2 pending time exceptions")
}

func TestSendCutoffRemindersOutsideWindow(t *testing.T) {
	repo := newFakeExceptionRepo(
		timeexception.TimeException{ID: "ex-1", Status: timeexception.StatusOpen, AssignedTo: "staff-1"},
	)
	svc, _, notifier := newTestService(25, repo)

	cutoffDate := time.Now().UTC().AddDate(0, 0, 10)
	result, err := svc.SendCutoffReminders(context.Background(), cutoffDate, 5)
	require.NoError(t, err)

	assert.False(t, result.InWindow)
	assert.Zero(t, result.RemindersSent)
	assert.Empty(t, notifier.sent)
}
