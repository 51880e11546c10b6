package service

import (
	"context"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/repository"
)

type ApprovalHistoryResponse struct {
	ID           string `json:"id"`
	TimesheetID  string `json:"timesheet_id"`
	ProjectID    string `json:"project_id"`
	UserID       string `json:"user_id"`
	ApproverID   string `json:"approver_id"`
	ApproverName string `json:"approver_name"`
	ApproverRole string `json:"approver_role"`
	Action       string `json:"action"`
	StatusBefore string `json:"status_before"`
	StatusAfter  string `json:"status_after"`
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type AuditService interface {
	GetApprovalHistory(ctx context.Context, timesheetID string, page, limit int) ([]ApprovalHistoryResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetApprovalHistory returns one timesheet's decisions, newest first, with approvers pre-loaded
func (s *auditService) GetApprovalHistory(ctx context.Context, timesheetID string, page, limit int) ([]ApprovalHistoryResponse, int64, error) {
	id, err := parseID("timesheet_id", timesheetID)
	if err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.auditRepo.ListByTimesheet(ctx, id, page, limit)
	if err != nil {
		return nil, 0, storageErr("load approval history", err)
	}

	res := make([]ApprovalHistoryResponse, 0, len(entries))
	for _, e := range entries {
		approverName := "System"
		if e.Approver != nil {
			approverName = e.Approver.FullName
		}

		res = append(res, ApprovalHistoryResponse{
			ID:           e.ID.String(),
			TimesheetID:  e.TimesheetID.String(),
			ProjectID:    e.ProjectID.String(),
			UserID:       e.UserID.String(),
			ApproverID:   e.ApproverID.String(),
			ApproverName: approverName,
			ApproverRole: e.ApproverRole,
			Action:       e.Action,
			StatusBefore: e.StatusBefore,
			StatusAfter:  e.StatusAfter,
			Reason:       e.Reason,
			Notes:        e.Notes,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}

	return res, total, nil
}
