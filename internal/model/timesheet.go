package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Timesheet is one user's week of recorded time. Its Status is driven by the
// approval records while pre-freeze and by batch verify/bill afterwards.
type Timesheet struct {
	ID                        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User                      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WeekStartDate             time.Time       `gorm:"not null;index" json:"week_start_date"`
	WeekEndDate               time.Time       `gorm:"not null" json:"week_end_date"`
	TotalHours                decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_hours"`
	Status                    string          `gorm:"type:varchar(30);not null;default:'draft';index" json:"status"`
	ApprovedByManagerID       *uuid.UUID      `gorm:"type:uuid" json:"approved_by_manager_id"`
	ApprovedByManagerAt       *time.Time      `json:"approved_by_manager_at"`
	ManagerRejectionReason    string          `gorm:"type:text" json:"manager_rejection_reason,omitempty"`
	ManagerRejectedAt         *time.Time      `json:"manager_rejected_at"`
	ApprovedByManagementID    *uuid.UUID      `gorm:"type:uuid" json:"approved_by_management_id"`
	ApprovedByManagementAt    *time.Time      `json:"approved_by_management_at"`
	ManagementRejectionReason string          `gorm:"type:text" json:"management_rejection_reason,omitempty"`
	ManagementRejectedAt      *time.Time      `json:"management_rejected_at"`
	VerifiedByID              *uuid.UUID      `gorm:"type:uuid" json:"verified_by_id"`
	VerifiedAt                *time.Time      `json:"verified_at"`
	IsVerified                bool            `gorm:"not null;default:false" json:"is_verified"`
	IsFrozen                  bool            `gorm:"not null;default:false" json:"is_frozen"`
	SubmittedAt               *time.Time      `json:"submitted_at"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
	DeletedAt                 gorm.DeletedAt  `gorm:"index" json:"-"` // soft delete, never set by the approval engine
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

// WithManagerApproval returns a copy moved to manager_approved by approverID.
func (t Timesheet) WithManagerApproval(approverID uuid.UUID, at time.Time) Timesheet {
	next := t
	next.Status = string(StatusManagerApproved)
	next.ApprovedByManagerID = &approverID
	next.ApprovedByManagerAt = &at
	return next
}

// WithManagerRejection returns a copy moved to manager_rejected with reason.
func (t Timesheet) WithManagerRejection(reason string, at time.Time) Timesheet {
	next := t
	next.Status = string(StatusManagerRejected)
	next.ManagerRejectionReason = reason
	next.ManagerRejectedAt = &at
	return next
}

// VerificationFields is the column patch written by bulk verification.
func VerificationFields(verifierID uuid.UUID, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":         string(StatusFrozen),
		"is_frozen":      true,
		"is_verified":    true,
		"verified_by_id": verifierID,
		"verified_at":    at,
	}
}

// BillingFields is the column patch written by bulk billing. Only the status changes.
func BillingFields() map[string]interface{} {
	return map[string]interface{}{
		"status": string(StatusBilled),
	}
}

// ensureID assigns a fresh uuid when id is still zero.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
