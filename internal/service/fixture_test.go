package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/database/testhelper"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"
	"github.com/Siva2k2k/ES-TM-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	svc       *approvalService
	approvals repository.ApprovalRepository
}

func newFixture(t *testing.T, mode model.ConsistencyMode) *fixture {
	t.Helper()
	return newFixtureWithApprovals(t, mode, nil)
}

// newFixtureWithApprovals lets a test wrap the approval repository, e.g. to inject failures.
func newFixtureWithApprovals(t *testing.T, mode model.ConsistencyMode, wrap func(repository.ApprovalRepository) repository.ApprovalRepository) *fixture {
	t.Helper()
	db := testhelper.NewDB(t)

	approvals := repository.NewApprovalRepository(db)
	if wrap != nil {
		approvals = wrap(approvals)
	}

	svc := NewApprovalService(
		repository.NewTimesheetRepository(db),
		approvals,
		repository.NewAuditRepository(db),
		repository.NewProjectRepository(db),
		repository.NewTransactionManager(db),
		mode,
		zerolog.Nop(),
	).(*approvalService)
	svc.now = func() time.Time { return fixedNow }

	return &fixture{db: db, svc: svc, approvals: approvals}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) project(t *testing.T, name string) *model.Project {
	t.Helper()
	p := &model.Project{Name: name}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) timesheet(t *testing.T, weekStart time.Time, status string) *model.Timesheet {
	t.Helper()
	ts := &model.Timesheet{
		UserID:        uuid.New(),
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 6),
		TotalHours:    decimal.NewFromInt(40),
		Status:        status,
	}
	require.NoError(t, f.db.Create(ts).Error)
	return ts
}

type approvalOpt func(*model.TimesheetProjectApproval)

func withLead() approvalOpt {
	return func(a *model.TimesheetProjectApproval) {
		lead := uuid.New()
		a.LeadID = &lead
	}
}

func managerApproved() approvalOpt {
	return func(a *model.TimesheetProjectApproval) {
		a.ManagerStatus = model.DecisionApproved
		at := fixedNow.Add(-time.Hour)
		a.ManagerApprovedAt = &at
	}
}

func leadApproved() approvalOpt {
	return func(a *model.TimesheetProjectApproval) {
		a.LeadStatus = model.DecisionApproved
		at := fixedNow.Add(-time.Hour)
		a.LeadApprovedAt = &at
	}
}

func (f *fixture) approval(t *testing.T, timesheetID, projectID uuid.UUID, opts ...approvalOpt) *model.TimesheetProjectApproval {
	t.Helper()
	a := &model.TimesheetProjectApproval{
		TimesheetID:   timesheetID,
		ProjectID:     projectID,
		LeadStatus:    model.DecisionPending,
		ManagerStatus: model.DecisionPending,
	}
	for _, opt := range opts {
		opt(a)
	}
	require.NoError(t, f.db.Create(a).Error)
	return a
}

func (f *fixture) reloadTimesheet(t *testing.T, id uuid.UUID) model.Timesheet {
	t.Helper()
	var ts model.Timesheet
	require.NoError(t, f.db.First(&ts, "id = ?", id).Error)
	return ts
}

func (f *fixture) reloadApproval(t *testing.T, timesheetID, projectID uuid.UUID) model.TimesheetProjectApproval {
	t.Helper()
	var a model.TimesheetProjectApproval
	require.NoError(t, f.db.First(&a, "timesheet_id = ? AND project_id = ?", timesheetID, projectID).Error)
	return a
}

func (f *fixture) history(t *testing.T, timesheetID uuid.UUID) []model.ApprovalHistory {
	t.Helper()
	var entries []model.ApprovalHistory
	require.NoError(t, f.db.Where("timesheet_id = ?", timesheetID).Order("created_at, id").Find(&entries).Error)
	return entries
}

func (f *fixture) historyCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.ApprovalHistory{}).Count(&n).Error)
	return n
}

var errInjected = errors.New("injected save failure")

// failingApprovals fails the Nth Save call.
type failingApprovals struct {
	repository.ApprovalRepository
	failOn int
	saves  int
}

func (r *failingApprovals) Save(ctx context.Context, approval *model.TimesheetProjectApproval) error {
	r.saves++
	if r.saves == r.failOn {
		return errInjected
	}
	return r.ApprovalRepository.Save(ctx, approval)
}
