package readiness

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/correction"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/readiness"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (r *fakeAttendanceRepo) ListByDateRange(_ context.Context, from, to time.Time, employeeID *string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		if employeeID != nil && rec.EmployeeID != *employeeID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeExceptionRepo struct {
	exceptions []timeexception.TimeException
}

func (r *fakeExceptionRepo) GetByID(_ context.Context, id string) (timeexception.TimeException, error) {
	for _, ex := range r.exceptions {
		if ex.ID == id {
			return ex, nil
		}
	}
	return timeexception.TimeException{}, timeexception.ErrExceptionNotFound
}

func (r *fakeExceptionRepo) ListCreatedInRange(_ context.Context, from, to time.Time, employeeID *string) ([]timeexception.TimeException, error) {
	var out []timeexception.TimeException
	for _, ex := range r.exceptions {
		if ex.CreatedAt.Before(from) || ex.CreatedAt.After(to) {
			continue
		}
		if employeeID != nil && ex.EmployeeID != *employeeID {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (r *fakeExceptionRepo) ListByStatusIn(_ context.Context, statuses []timeexception.Status) ([]timeexception.TimeException, error) {
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
	var out []timeexception.TimeException
	for _, ex := range r.exceptions {
		if ex.Type == timeexception.TypeOvertimeRequest && ex.AttendanceRecordID == nil {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) ListReferencingRecords(_ context.Context, recordIDs []string) ([]timeexception.TimeException, error) {
	ids := make(map[string]bool, len(recordIDs))
	for _, id := range recordIDs {
		ids[id] = true
	}
	var out []timeexception.TimeException
	for _, ex := range r.exceptions {
		if ex.AttendanceRecordID != nil && ids[*ex.AttendanceRecordID] && ex.Status.IsUnresolved() {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) Escalate(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
}

func (r *fakeExceptionRepo) CountByStatus(_ context.Context) (map[timeexception.Status]int, error) {
	counts := make(map[timeexception.Status]int)
	for _, ex := range r.exceptions {
		counts[ex.Status]++
	}
	return counts, nil
}

type fakeCorrectionRepo struct {
	corrections []correction.Correction
}

func (r *fakeCorrectionRepo) ListUnresolvedInRange(_ context.Context, from, to time.Time) ([]correction.Correction, error) {
	var out []correction.Correction
	for _, c := range r.corrections {
		if c.Status != correction.StatusSubmitted && c.Status != correction.StatusInReview {
			continue
		}
		if c.RequestedAt.Before(from) || c.RequestedAt.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func testRange() readiness.Range {
	return readiness.Range{From: day(1), To: day(31)}
}

func TestValidateEmptyPeriodIsValid(t *testing.T) {
	svc := NewReadinessService(&fakeAttendanceRepo{}, &fakeExceptionRepo{}, &fakeCorrectionRepo{})

	report, err := svc.Validate(context.Background(), testRange())
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.True(t, report.CanProceedWithSync)
	assert.Empty(t, report.Issues)
	assert.Zero(t, report.TotalRecords)
}

func TestValidateUnresolvedExceptionBlocksSync(t *testing.T) {
	exceptions := &fakeExceptionRepo{exceptions: []timeexception.TimeException{
		{ID: "ex-1", EmployeeID: "emp-1", Type: timeexception.TypeMissedPunch, Status: timeexception.StatusOpen, CreatedAt: day(10)},
		{ID: "ex-2", EmployeeID: "emp-1", Type: timeexception.TypeLate, Status: timeexception.StatusResolved, CreatedAt: day(11)},
	}}
	svc := NewReadinessService(&fakeAttendanceRepo{}, exceptions, &fakeCorrectionRepo{})

	report, err := svc.Validate(context.Background(), testRange())
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	assert.False(t, report.CanProceedWithSync)
	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, readiness.IssueUnresolvedExceptions, issue.Type)
	assert.Equal(t, readiness.SeverityError, issue.Severity)
	assert.Equal(t, []string{"ex-1"}, issue.AffectedIDs)
	assert.NotEmpty(t, issue.Remediation)
}

func TestValidateWarningsDoNotBlockSync(t *testing.T) {
	records := &fakeAttendanceRepo{records: []attendance.Record{
		{ID: "rec-1", EmployeeID: "emp-1", Date: day(2), HasMissedPunch: true, TotalWorkMinutes: intPtr(480)},
		{ID: "rec-2", EmployeeID: "emp-1", Date: day(3), TotalWorkMinutes: intPtr(0)},
	}}
	svc := NewReadinessService(records, &fakeExceptionRepo{}, &fakeCorrectionRepo{})

	report, err := svc.Validate(context.Background(), testRange())
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.True(t, report.CanProceedWithSync)
	require.Len(t, report.Issues, 2)
	for _, issue := range report.Issues {
		assert.Equal(t, readiness.SeverityWarning, issue.Severity)
	}
	assert.Equal(t, 2, report.TotalRecords)
}

func TestValidateUnresolvedCorrectionsBlockSync(t *testing.T) {
	corrections := &fakeCorrectionRepo{corrections: []correction.Correction{
		{ID: "corr-1", EmployeeID: "emp-1", AttendanceRecordID: "rec-1", Status: correction.StatusSubmitted, RequestedAt: day(5)},
		{ID: "corr-2", EmployeeID: "emp-2", AttendanceRecordID: "rec-2", Status: correction.StatusApproved, RequestedAt: day(6)},
	}}
	svc := NewReadinessService(&fakeAttendanceRepo{}, &fakeExceptionRepo{}, corrections)

	report, err := svc.Validate(context.Background(), testRange())
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, readiness.IssueUnresolvedCorrections, report.Issues[0].Type)
	assert.Equal(t, []string{"corr-1"}, report.Issues[0].AffectedIDs)
}

func TestValidateScopedToEmployee(t *testing.T) {
	exceptions := &fakeExceptionRepo{exceptions: []timeexception.TimeException{
		{ID: "ex-1", EmployeeID: "emp-1", Status: timeexception.StatusOpen, CreatedAt: day(10)},
		{ID: "ex-2", EmployeeID: "emp-2", Status: timeexception.StatusOpen, CreatedAt: day(10)},
	}}
	svc := NewReadinessService(&fakeAttendanceRepo{}, exceptions, &fakeCorrectionRepo{})

	rng := testRange()
	rng.EmployeeID = strPtr("emp-1")
	report, err := svc.Validate(context.Background(), rng)
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, []string{"ex-1"}, report.Issues[0].AffectedIDs)
}

func TestCheckConsistencyOrphanOvertimeIgnoresRange(t *testing.T) {
	exceptions := &fakeExceptionRepo{exceptions: []timeexception.TimeException{
		{ID: "ex-old", Type: timeexception.TypeOvertimeRequest, Status: timeexception.StatusOpen, CreatedAt: day(1).AddDate(-1, 0, 0)},
	}}
	svc := NewReadinessService(&fakeAttendanceRepo{}, exceptions, &fakeCorrectionRepo{})

	report, err := svc.CheckConsistency(context.Background(), testRange())
	require.NoError(t, err)

	assert.False(t, report.IsConsistent)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, readiness.FindingOrphanOvertimeExceptions, finding.Type)
	assert.Equal(t, []string{"ex-old"}, finding.AffectedIDs)
}

func TestCheckConsistencyFinalizedWithPendingExceptions(t *testing.T) {
	records := &fakeAttendanceRepo{records: []attendance.Record{
		{ID: "rec-1", EmployeeID: "emp-1", Date: day(2), FinalizedForPayroll: true, TotalWorkMinutes: intPtr(480), Punches: []time.Time{day(2)}},
		{ID: "rec-2", EmployeeID: "emp-1", Date: day(3), FinalizedForPayroll: true, TotalWorkMinutes: intPtr(480), Punches: []time.Time{day(3)}},
	}}
	exceptions := &fakeExceptionRepo{exceptions: []timeexception.TimeException{
		{ID: "ex-1", Type: timeexception.TypeShortTime, Status: timeexception.StatusPending, AttendanceRecordID: strPtr("rec-1"), CreatedAt: day(2)},
	}}
	svc := NewReadinessService(records, exceptions, &fakeCorrectionRepo{})

	report, err := svc.CheckConsistency(context.Background(), testRange())
	require.NoError(t, err)

	assert.False(t, report.IsConsistent)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, readiness.FindingFinalizedWithPendingExceptions, finding.Type)
	assert.Equal(t, []string{"rec-1"}, finding.AffectedIDs)
}

func TestCheckConsistencyWarningsOnly(t *testing.T) {
	records := &fakeAttendanceRepo{records: []attendance.Record{
		// Work minutes without a single punch.
		{ID: "rec-1", EmployeeID: "emp-1", Date: day(2), TotalWorkMinutes: intPtr(300)},
		// Two records for the same employee and day.
		{ID: "rec-2", EmployeeID: "emp-2", Date: day(3), TotalWorkMinutes: intPtr(480), Punches: []time.Time{day(3)}},
		{ID: "rec-3", EmployeeID: "emp-2", Date: day(3), TotalWorkMinutes: intPtr(480), Punches: []time.Time{day(3)}},
	}}
	svc := NewReadinessService(records, &fakeExceptionRepo{}, &fakeCorrectionRepo{})

	report, err := svc.CheckConsistency(context.Background(), testRange())
	require.NoError(t, err)

	assert.True(t, report.IsConsistent)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, readiness.FindingNoClockInButHasWorkMinutes, report.Findings[0].Type)
	assert.Equal(t, readiness.FindingDuplicateAttendanceRecords, report.Findings[1].Type)
	assert.Equal(t, []string{"rec-2", "rec-3"}, report.Findings[1].AffectedIDs)
}
