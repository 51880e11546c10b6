package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalDecision enum constants for a single sign-off axis
const (
	DecisionPending  = "pending"
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// TimesheetProjectApproval tracks lead and manager sign-off for one
// timesheet on one project. A timesheet is approved only when every one of
// its records is fully approved.
type TimesheetProjectApproval struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TimesheetID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_timesheet_project" json:"timesheet_id"`
	ProjectID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_timesheet_project;index" json:"project_id"`
	LeadID                 *uuid.UUID `gorm:"type:uuid" json:"lead_id"` // lead sign-off is required only when set
	LeadStatus             string     `gorm:"type:varchar(20);not null;default:'pending'" json:"lead_status"`
	LeadApprovedAt         *time.Time `json:"lead_approved_at"`
	LeadRejectionReason    string     `gorm:"type:text" json:"lead_rejection_reason,omitempty"`
	ManagerStatus          string     `gorm:"type:varchar(20);not null;default:'pending'" json:"manager_status"`
	ManagerApprovedAt      *time.Time `json:"manager_approved_at"`
	ManagerRejectionReason string     `gorm:"type:text" json:"manager_rejection_reason,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (a *TimesheetProjectApproval) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// FullyApproved reports whether the manager approved and, if a lead is
// assigned, the lead approved too.
func (a TimesheetProjectApproval) FullyApproved() bool {
	if a.LeadID != nil && a.LeadStatus != DecisionApproved {
		return false
	}
	return a.ManagerStatus == DecisionApproved
}

// WithApproval returns a copy of the record approved on the given axis.
// Any previous rejection reason on that axis is cleared.
func (a TimesheetProjectApproval) WithApproval(axis ApprovalAxis, at time.Time) TimesheetProjectApproval {
	next := a
	switch axis {
	case LeadAxis:
		next.LeadStatus = DecisionApproved
		next.LeadApprovedAt = &at
		next.LeadRejectionReason = ""
	case ManagerAxis:
		next.ManagerStatus = DecisionApproved
		next.ManagerApprovedAt = &at
		next.ManagerRejectionReason = ""
	}
	return next
}

// WithRejection returns a copy of the record rejected on the given axis.
func (a TimesheetProjectApproval) WithRejection(axis ApprovalAxis, reason string) TimesheetProjectApproval {
	next := a
	switch axis {
	case LeadAxis:
		next.LeadStatus = DecisionRejected
		next.LeadRejectionReason = reason
	case ManagerAxis:
		next.ManagerStatus = DecisionRejected
		next.ManagerRejectionReason = reason
	}
	return next
}

// ResetApprovalFields is the column patch applied to sibling records when a
// timesheet is rejected through another project.
func ResetApprovalFields() map[string]interface{} {
	return map[string]interface{}{
		"lead_status":              DecisionPending,
		"lead_approved_at":         nil,
		"lead_rejection_reason":    "",
		"manager_status":           DecisionPending,
		"manager_approved_at":      nil,
		"manager_rejection_reason": "",
	}
}
