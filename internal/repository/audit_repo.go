package repository

import (
	"context"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository is append-only: there is no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.ApprovalHistory) error
	ListByTimesheet(ctx context.Context, timesheetID uuid.UUID, page, limit int) ([]model.ApprovalHistory, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.ApprovalHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) ListByTimesheet(ctx context.Context, timesheetID uuid.UUID, page, limit int) ([]model.ApprovalHistory, int64, error) {
	var entries []model.ApprovalHistory
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ApprovalHistory{}).Where("timesheet_id = ?", timesheetID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Approver").
		Where("timesheet_id = ?", timesheetID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
