package repository

import (
	"context"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimesheetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Timesheet, error)
	FindInWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]model.Timesheet, error)
	Save(ctx context.Context, timesheet *model.Timesheet) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type timesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) TimesheetRepository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	var ts model.Timesheet
	if err := GetDB(ctx, r.db).First(&ts, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ts, nil
}

// FindInWeek returns non-deleted timesheets whose week starts within [weekStart, weekEnd].
func (r *timesheetRepository) FindInWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]model.Timesheet, error) {
	var timesheets []model.Timesheet
	if err := GetDB(ctx, r.db).
		Where("week_start_date >= ? AND week_start_date <= ?", weekStart, weekEnd).
		Order("week_start_date, id").
		Find(&timesheets).Error; err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (r *timesheetRepository) Save(ctx context.Context, timesheet *model.Timesheet) error {
	return GetDB(ctx, r.db).Save(timesheet).Error
}

// UpdateFields patches one timesheet and fails with gorm.ErrRecordNotFound
// when no live row matched.
func (r *timesheetRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&model.Timesheet{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
