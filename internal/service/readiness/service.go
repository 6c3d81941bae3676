package readiness

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/correction"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/readiness"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/timeexception"
	"golang.org/x/sync/errgroup"
)

// issueRemediation maps each readiness issue category to the action that
// clears it.
var issueRemediation = map[readiness.IssueType]string{
	readiness.IssueMissedPunches:         "review the flagged records and backfill the missing punches, or accept them explicitly",
	readiness.IssueZeroWorkMinutes:       "verify the flagged records; absent days should carry a leave or absence status, not an empty record",
	readiness.IssueUnresolvedExceptions:  "resolve or reject the open time exceptions before syncing this period to payroll",
	readiness.IssueUnresolvedCorrections: "complete the review of the pending attendance-correction requests before syncing",
}

// findingRemediation maps each consistency detector to its fixed suggestion.
var findingRemediation = map[readiness.FindingType]string{
	readiness.FindingNoClockInButHasWorkMinutes:     "re-derive work minutes from punches, or clear the minutes on records with no clock-in",
	readiness.FindingOrphanOvertimeExceptions:       "link each overtime request to the attendance record it extends, or reject it",
	readiness.FindingFinalizedWithPendingExceptions: "resolve the pending exceptions before keeping records finalized, or un-finalize the records",
	readiness.FindingDuplicateAttendanceRecords:     "merge or delete the duplicate records so each employee has one record per day",
}

type ReadinessServiceImpl struct {
	attendanceRepo attendance.Repository
	exceptionRepo  timeexception.Repository
	correctionRepo correction.Repository
}

func NewReadinessService(
	attendanceRepo attendance.Repository,
	exceptionRepo timeexception.Repository,
	correctionRepo correction.Repository,
) readiness.Service {
	return &ReadinessServiceImpl{
		attendanceRepo: attendanceRepo,
		exceptionRepo:  exceptionRepo,
		correctionRepo: correctionRepo,
	}
}

// Validate implements readiness.Service. It is the sole gate a caller should
// consult before any bulk finalize-for-payroll operation; it reads, never
// writes.
func (s *ReadinessServiceImpl) Validate(ctx context.Context, r readiness.Range) (readiness.Report, error) {
	var (
		records     []attendance.Record
		exceptions  []timeexception.TimeException
		corrections []correction.Correction
	)

	// The three loads are independent and read-only.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gctx, r.From, r.To, r.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load attendance records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		exceptions, err = s.exceptionRepo.ListCreatedInRange(gctx, r.From, r.To, r.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load time exceptions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		corrections, err = s.correctionRepo.ListUnresolvedInRange(gctx, r.From, r.To)
		if err != nil {
			return fmt.Errorf("failed to load correction requests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return readiness.Report{}, err
	}

	var issues []readiness.Issue

	var missedPunchIDs []string
	var zeroMinuteIDs []string
	for _, rec := range records {
		if rec.HasMissedPunch {
			missedPunchIDs = append(missedPunchIDs, rec.ID)
		}
		if rec.WorkMinutes() == 0 {
			zeroMinuteIDs = append(zeroMinuteIDs, rec.ID)
		}
	}
	issues = appendIssue(issues, readiness.IssueMissedPunches, readiness.SeverityWarning, missedPunchIDs)
	issues = appendIssue(issues, readiness.IssueZeroWorkMinutes, readiness.SeverityWarning, zeroMinuteIDs)

	var unresolvedIDs []string
	for _, ex := range exceptions {
		if ex.Status.IsUnresolved() {
			unresolvedIDs = append(unresolvedIDs, ex.ID)
		}
	}
	issues = appendIssue(issues, readiness.IssueUnresolvedExceptions, readiness.SeverityError, unresolvedIDs)

	var correctionIDs []string
	for _, c := range corrections {
		correctionIDs = append(correctionIDs, c.ID)
	}
	issues = appendIssue(issues, readiness.IssueUnresolvedCorrections, readiness.SeverityError, correctionIDs)

	isValid := countErrors(issues) == 0

	return readiness.Report{
		From:               r.From,
		To:                 r.To,
		TotalRecords:       len(records),
		Issues:             issues,
		IsValid:            isValid,
		CanProceedWithSync: isValid,
	}, nil
}

// CheckConsistency implements readiness.Service. Unlike Validate it is an
// audit tool, not a sync gate; orphan overtime is checked across all dates,
// not just the requested range.
func (s *ReadinessServiceImpl) CheckConsistency(ctx context.Context, r readiness.Range) (readiness.ConsistencyReport, error) {
	var (
		records        []attendance.Record
		orphanOvertime []timeexception.TimeException
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gctx, r.From, r.To, r.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load attendance records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orphanOvertime, err = s.exceptionRepo.ListOrphanOvertime(gctx)
		if err != nil {
			return fmt.Errorf("failed to load orphan overtime exceptions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return readiness.ConsistencyReport{}, err
	}

	var findings []readiness.Finding

	var noClockInIDs []string
	for _, rec := range records {
		if !rec.HasClockIn() && rec.WorkMinutes() > 0 {
			noClockInIDs = append(noClockInIDs, rec.ID)
		}
	}
	findings = appendFinding(findings, readiness.FindingNoClockInButHasWorkMinutes, readiness.SeverityWarning, noClockInIDs)

	var orphanIDs []string
	for _, ex := range orphanOvertime {
		orphanIDs = append(orphanIDs, ex.ID)
	}
	findings = appendFinding(findings, readiness.FindingOrphanOvertimeExceptions, readiness.SeverityError, orphanIDs)

	finalizedIDs, err := s.finalizedWithPending(ctx, records)
	if err != nil {
		return readiness.ConsistencyReport{}, err
	}
	findings = appendFinding(findings, readiness.FindingFinalizedWithPendingExceptions, readiness.SeverityError, finalizedIDs)

	findings = appendFinding(findings, readiness.FindingDuplicateAttendanceRecords, readiness.SeverityWarning, duplicateRecordIDs(records))

	isConsistent := true
	for _, f := range findings {
		if f.Severity == readiness.SeverityError {
			isConsistent = false
			break
		}
	}

	return readiness.ConsistencyReport{
		From:         r.From,
		To:           r.To,
		Findings:     findings,
		IsConsistent: isConsistent,
	}, nil
}

// finalizedWithPending returns the finalized records that are still
// referenced by an unresolved exception. Flagged only; the validator never
// repairs data.
func (s *ReadinessServiceImpl) finalizedWithPending(ctx context.Context, records []attendance.Record) ([]string, error) {
	var finalizedIDs []string
	for _, rec := range records {
		if rec.FinalizedForPayroll {
			finalizedIDs = append(finalizedIDs, rec.ID)
		}
	}
	if len(finalizedIDs) == 0 {
		return nil, nil
	}

	referencing, err := s.exceptionRepo.ListReferencingRecords(ctx, finalizedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load exceptions referencing finalized records: %w", err)
	}

	seen := make(map[string]bool)
	var flagged []string
	for _, ex := range referencing {
		if ex.AttendanceRecordID == nil || !ex.Status.IsUnresolved() {
			continue
		}
		if !seen[*ex.AttendanceRecordID] {
			seen[*ex.AttendanceRecordID] = true
			flagged = append(flagged, *ex.AttendanceRecordID)
		}
	}
	sort.Strings(flagged)
	return flagged, nil
}

func duplicateRecordIDs(records []attendance.Record) []string {
	byKey := make(map[string][]string)
	for _, rec := range records {
		key := rec.EmployeeID + "|" + rec.Date.Format("2006-01-02")
		byKey[key] = append(byKey[key], rec.ID)
	}

	var duplicates []string
	for _, ids := range byKey {
		if len(ids) > 1 {
			duplicates = append(duplicates, ids...)
		}
	}
	sort.Strings(duplicates)
	return duplicates
}

func appendIssue(issues []readiness.Issue, t readiness.IssueType, sev readiness.Severity, ids []string) []readiness.Issue {
	if len(ids) == 0 {
		return issues
	}
	return append(issues, readiness.Issue{
		Type:        t,
		Severity:    sev,
		Count:       len(ids),
		AffectedIDs: ids,
		Remediation: issueRemediation[t],
	})
}

func appendFinding(findings []readiness.Finding, t readiness.FindingType, sev readiness.Severity, ids []string) []readiness.Finding {
	if len(ids) == 0 {
		return findings
	}
	return append(findings, readiness.Finding{
		Type:        t,
		Severity:    sev,
		Count:       len(ids),
		AffectedIDs: ids,
		Remediation: findingRemediation[t],
	})
}

func countErrors(issues []readiness.Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == readiness.SeverityError {
			n++
		}
	}
	return n
}
