package claim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/claim"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-exception-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaimRepo struct {
	mu     sync.Mutex
	claims map[string]claim.Claim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[string]claim.Claim)}
}

func (r *fakeClaimRepo) Create(_ context.Context, c claim.Claim) (claim.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.claims[c.ID] = c
	return c, nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id string) (claim.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok {
		return claim.Claim{}, claim.ErrClaimNotFound
	}
	return c, nil
}

func (r *fakeClaimRepo) Transition(_ context.Context, c claim.Claim, from claim.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.claims[c.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	c.UpdatedAt = time.Now().UTC()
	r.claims[c.ID] = c
	return true, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ListManagers(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
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

func (s *memAuditSink) ListByRange(_ context.Context, from, to time.Time) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []audit.Entry
	for _, e := range s.entries {
		if !e.At.Before(from) && !e.At.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
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

func newTestService() (claim.Service, *fakeClaimRepo, *memAuditSink, *fakeNotifier) {
	repo := newFakeClaimRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Ayu Lestari", Status: employee.StatusActive},
		"emp-2": {ID: "emp-2", FullName: "Budi Santoso", Status: employee.StatusInactive},
	}}
	sink := &memAuditSink{}
	notifier := &fakeNotifier{}
	svc := NewClaimService(repo, employees, sink, notifier)
	return svc, repo, sink, notifier
}

func TestCreateClaim(t *testing.T) {
	svc, _, sink, _ := newTestService()

	created, err := svc.Create(context.Background(), claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "REIMBURSEMENT",
		Amount:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	assert.Equal(t, string(claim.StatusPending), created.Status)
	assert.Equal(t, "500", created.Amount)
	assert.Nil(t, created.ApprovedAmount)
	require.Len(t, sink.entries, 1)
	assert.Equal(t, "claim", sink.entries[0].Entity)
}

func TestCreateClaimValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "GADGETS",
		Amount:     decimal.Zero,
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "claim_type")
	assert.Contains(t, details, "amount")
}

func TestCreateClaimInactiveEmployee(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), claim.CreateClaimRequest{
		EmployeeID: "emp-2",
		ClaimType:  "MEDICAL",
		Amount:     decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApproveThenConfirm(t *testing.T) {
	svc, _, _, notifier := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "TRANSPORT",
		Amount:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	approved, err := svc.ApproveBySpecialist(ctx, claim.ApproveBySpecialistRequest{
		ClaimID:        created.ID,
		ApprovedAmount: decimal.NewFromInt(400),
		ActorID:        "staff-1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(claim.StatusApprovedBySpecialist), approved.Status)
	require.NotNil(t, approved.ApprovedAmount)
	assert.Equal(t, "400", *approved.ApprovedAmount)

	confirmed, err := svc.ConfirmApproval(ctx, claim.ConfirmApprovalRequest{
		ClaimID: created.ID,
		ActorID: "staff-2",
	})
	require.NoError(t, err)
	assert.Equal(t, string(claim.StatusConfirmed), confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, notification.TypeClaimApproved, notifier.sent[0].Type)
	assert.Equal(t, notification.TypeClaimConfirmed, notifier.sent[1].Type)
	assert.Equal(t, "emp-1", notifier.sent[0].RecipientID)
}

func TestRejectAfterApproveIsIllegal(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "OTHER",
		Amount:     decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = svc.ApproveBySpecialist(ctx, claim.ApproveBySpecialistRequest{
		ClaimID:        created.ID,
		ApprovedAmount: decimal.NewFromInt(50),
		ActorID:        "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.RejectBySpecialist(ctx, claim.RejectBySpecialistRequest{
		ClaimID: created.ID,
		Reason:  "duplicate submission",
		ActorID: "staff-1",
	})

	var stateErr *apperror.InvalidStateTransition
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, string(claim.StatusApprovedBySpecialist), stateErr.CurrentState)
}

func TestConfirmRequiresSpecialistApproval(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "MEDICAL",
		Amount:     decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	_, err = svc.ConfirmApproval(ctx, claim.ConfirmApprovalRequest{
		ClaimID: created.ID,
		ActorID: "staff-2",
	})

	var stateErr *apperror.InvalidStateTransition
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, string(claim.StatusPending), stateErr.CurrentState)
}

func TestGetUnknownClaim(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, claim.ErrClaimNotFound)
}

func TestConcurrentDecisionsOnlyOneWins(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, claim.CreateClaimRequest{
		EmployeeID: "emp-1",
		ClaimType:  "REIMBURSEMENT",
		Amount:     decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ApproveBySpecialist(ctx, claim.ApproveBySpecialistRequest{
				ClaimID:        created.ID,
				ApprovedAmount: decimal.NewFromInt(200),
				ActorID:        "staff-1",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var stateErr *apperror.InvalidStateTransition
		assert.ErrorAs(t, err, &stateErr)
	}
	assert.Equal(t, 1, succeeded)
}
