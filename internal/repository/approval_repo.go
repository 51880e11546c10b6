package repository

import (
	"context"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalRepository interface {
	FindOne(ctx context.Context, timesheetID, projectID uuid.UUID) (*model.TimesheetProjectApproval, error)
	FindByTimesheet(ctx context.Context, timesheetID uuid.UUID) ([]model.TimesheetProjectApproval, error)
	FindByTimesheetsAndProject(ctx context.Context, timesheetIDs []uuid.UUID, projectID uuid.UUID) ([]model.TimesheetProjectApproval, error)
	Save(ctx context.Context, approval *model.TimesheetProjectApproval) error
	ResetExcept(ctx context.Context, timesheetID, keepProjectID uuid.UUID) error
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) FindOne(ctx context.Context, timesheetID, projectID uuid.UUID) (*model.TimesheetProjectApproval, error) {
	var approval model.TimesheetProjectApproval
	if err := GetDB(ctx, r.db).
		First(&approval, "timesheet_id = ? AND project_id = ?", timesheetID, projectID).Error; err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) FindByTimesheet(ctx context.Context, timesheetID uuid.UUID) ([]model.TimesheetProjectApproval, error) {
	var approvals []model.TimesheetProjectApproval
	if err := GetDB(ctx, r.db).Where("timesheet_id = ?", timesheetID).Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}

func (r *approvalRepository) FindByTimesheetsAndProject(ctx context.Context, timesheetIDs []uuid.UUID, projectID uuid.UUID) ([]model.TimesheetProjectApproval, error) {
	var approvals []model.TimesheetProjectApproval
	if len(timesheetIDs) == 0 {
		return approvals, nil
	}
	if err := GetDB(ctx, r.db).
		Where("timesheet_id IN ? AND project_id = ?", timesheetIDs, projectID).
		Order("created_at, id").
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}

func (r *approvalRepository) Save(ctx context.Context, approval *model.TimesheetProjectApproval) error {
	return GetDB(ctx, r.db).Save(approval).Error
}

// ResetExcept puts every record of the timesheet except keepProjectID back to pending.
func (r *approvalRepository) ResetExcept(ctx context.Context, timesheetID, keepProjectID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.TimesheetProjectApproval{}).
		Where("timesheet_id = ? AND project_id <> ?", timesheetID, keepProjectID).
		Updates(model.ResetApprovalFields()).Error
}
