package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionApproved = "approved"
	ActionRejected = "rejected"

	NoteBulkApproval  = "Bulk project-week approval"
	NoteBulkRejection = "Bulk project-week rejection"
)

// ApprovalHistory is an append-only record of one approval decision on one
// timesheet. Rows are never updated or deleted.
type ApprovalHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TimesheetID  uuid.UUID `gorm:"type:uuid;not null;index" json:"timesheet_id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // timesheet owner
	ApproverID   uuid.UUID `gorm:"type:uuid;not null" json:"approver_id"`
	Approver     *User     `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	ApproverRole string    `gorm:"type:varchar(30);not null" json:"approver_role"`
	Action       string    `gorm:"type:varchar(20);not null;index" json:"action"`
	StatusBefore string    `gorm:"type:varchar(30);not null" json:"status_before"`
	StatusAfter  string    `gorm:"type:varchar(30);not null" json:"status_after"`
	Reason       string    `gorm:"type:text" json:"reason,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (h *ApprovalHistory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&h.ID)
	return nil
}
