package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/database/testhelper"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedTimesheet(t *testing.T, db *gorm.DB, weekStart time.Time, status model.TimesheetStatus) *model.Timesheet {
	t.Helper()
	ts := &model.Timesheet{
		UserID:        uuid.New(),
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 6),
		TotalHours:    decimal.NewFromInt(40),
		Status:        string(status),
	}
	require.NoError(t, db.Create(ts).Error)
	return ts
}

func seedApproval(t *testing.T, db *gorm.DB, timesheetID, projectID uuid.UUID, manager string) *model.TimesheetProjectApproval {
	t.Helper()
	a := &model.TimesheetProjectApproval{
		TimesheetID:   timesheetID,
		ProjectID:     projectID,
		LeadStatus:    model.DecisionPending,
		ManagerStatus: manager,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestTimesheetRepository_FindInWeekSkipsDeleted(t *testing.T) {
	db := testhelper.NewDB(t)
	repo := NewTimesheetRepository(db)
	ctx := context.Background()

	inWeek := seedTimesheet(t, db, day(2025, 3, 3), model.StatusSubmitted)
	deleted := seedTimesheet(t, db, day(2025, 3, 3), model.StatusSubmitted)
	seedTimesheet(t, db, day(2025, 3, 10), model.StatusSubmitted)
	require.NoError(t, db.Delete(&model.Timesheet{}, "id = ?", deleted.ID).Error)

	got, err := repo.FindInWeek(ctx, day(2025, 3, 3), day(2025, 3, 9))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inWeek.ID, got[0].ID)
}

func TestTimesheetRepository_UpdateFieldsMissingRow(t *testing.T) {
	db := testhelper.NewDB(t)
	repo := NewTimesheetRepository(db)

	err := repo.UpdateFields(context.Background(), uuid.New(), model.BillingFields())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTimesheetRepository_UpdateFieldsVerification(t *testing.T) {
	db := testhelper.NewDB(t)
	repo := NewTimesheetRepository(db)
	ctx := context.Background()

	ts := seedTimesheet(t, db, day(2025, 3, 3), model.StatusManagerApproved)
	verifier := uuid.New()
	require.NoError(t, repo.UpdateFields(ctx, ts.ID, model.VerificationFields(verifier, time.Now().UTC())))

	got, err := repo.FindByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusFrozen), got.Status)
	assert.True(t, got.IsFrozen)
	assert.True(t, got.IsVerified)
	require.NotNil(t, got.VerifiedByID)
	assert.Equal(t, verifier, *got.VerifiedByID)
	assert.True(t, got.TotalHours.Equal(decimal.NewFromInt(40)))
}

func TestApprovalRepository_ResetExcept(t *testing.T) {
	db := testhelper.NewDB(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()

	ts := seedTimesheet(t, db, day(2025, 3, 3), model.StatusManagerApproved)
	kept := seedApproval(t, db, ts.ID, uuid.New(), model.DecisionRejected)
	kept.ManagerRejectionReason = "missing detail"
	require.NoError(t, repo.Save(ctx, kept))
	sibling := seedApproval(t, db, ts.ID, uuid.New(), model.DecisionApproved)
	sibling.ManagerRejectionReason = "stale"
	require.NoError(t, repo.Save(ctx, sibling))
	other := seedApproval(t, db, uuid.New(), sibling.ProjectID, model.DecisionApproved)

	require.NoError(t, repo.ResetExcept(ctx, ts.ID, kept.ProjectID))

	gotKept, err := repo.FindOne(ctx, ts.ID, kept.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionRejected, gotKept.ManagerStatus)
	assert.Equal(t, "missing detail", gotKept.ManagerRejectionReason)

	gotSibling, err := repo.FindOne(ctx, ts.ID, sibling.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionPending, gotSibling.ManagerStatus)
	assert.Equal(t, model.DecisionPending, gotSibling.LeadStatus)
	assert.Empty(t, gotSibling.ManagerRejectionReason)
	assert.Nil(t, gotSibling.ManagerApprovedAt)

	gotOther, err := repo.FindOne(ctx, other.TimesheetID, other.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionApproved, gotOther.ManagerStatus)
}

func TestApprovalRepository_FindByTimesheetsAndProject(t *testing.T) {
	db := testhelper.NewDB(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()

	project := uuid.New()
	ts1 := seedTimesheet(t, db, day(2025, 3, 3), model.StatusSubmitted)
	ts2 := seedTimesheet(t, db, day(2025, 3, 3), model.StatusSubmitted)
	seedApproval(t, db, ts1.ID, project, model.DecisionPending)
	seedApproval(t, db, ts2.ID, uuid.New(), model.DecisionPending)

	got, err := repo.FindByTimesheetsAndProject(ctx, []uuid.UUID{ts1.ID, ts2.ID}, project)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ts1.ID, got[0].TimesheetID)

	empty, err := repo.FindByTimesheetsAndProject(ctx, nil, project)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := testhelper.NewDB(t)
	txm := NewTransactionManager(db)
	audit := NewAuditRepository(db)
	ctx := context.Background()
	timesheetID := uuid.New()

	boom := errors.New("boom")
	err := txm.RunInTx(ctx, func(txCtx context.Context) error {
		assert.True(t, InTx(txCtx))
		require.NoError(t, audit.Create(txCtx, &model.ApprovalHistory{
			TimesheetID:  timesheetID,
			ProjectID:    uuid.New(),
			UserID:       uuid.New(),
			ApproverID:   uuid.New(),
			ApproverRole: string(model.RoleManager),
			Action:       model.ActionApproved,
			StatusBefore: string(model.StatusSubmitted),
			StatusAfter:  string(model.StatusManagerApproved),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, total, err := audit.ListByTimesheet(ctx, timesheetID, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}
