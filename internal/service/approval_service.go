package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/metrics"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"
	"github.com/Siva2k2k/ES-TM-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// --- DTOs ---

type ApprovalResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AllApproved bool   `json:"all_approved"`
	NewStatus   string `json:"new_status"`
}

type ProjectWeekInfo struct {
	ProjectName string `json:"project_name"`
	WeekLabel   string `json:"week_label"`
}

type ProjectWeekResponse struct {
	Success            bool            `json:"success"`
	Message            string          `json:"message"`
	AffectedUsers      int             `json:"affected_users"`
	AffectedTimesheets int             `json:"affected_timesheets"`
	ProjectWeek        ProjectWeekInfo `json:"project_week"`
}

// ProjectWeekRequest selects every timesheet whose week starts in [WeekStart, WeekEnd].
type ProjectWeekRequest struct {
	ProjectID    string
	WeekStart    string // YYYY-MM-DD
	WeekEnd      string // YYYY-MM-DD, inclusive
	ApproverID   string
	ApproverRole model.ApproverRole
}

type BatchFailure struct {
	TimesheetID string `json:"timesheet_id"`
	Code        string `json:"code"`
	Reason      string `json:"reason"`
}

type BatchResult struct {
	ProcessedCount int            `json:"processed_count"`
	FailedCount    int            `json:"failed_count"`
	Failures       []BatchFailure `json:"failures"`
}

// --- Interface ---

type ApprovalService interface {
	ApproveTimesheetForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole) (ApprovalResponse, error)
	RejectTimesheetForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole, reason string) (ApprovalResponse, error)
	ApproveProjectWeek(ctx context.Context, req ProjectWeekRequest) (ProjectWeekResponse, error)
	RejectProjectWeek(ctx context.Context, req ProjectWeekRequest, reason string) (ProjectWeekResponse, error)
	BulkVerifyTimesheets(ctx context.Context, timesheetIDs []string, verifierID string) (BatchResult, error)
	BulkBillTimesheets(ctx context.Context, timesheetIDs []string, billerID string) (BatchResult, error)
}

type approvalService struct {
	timesheetRepo repository.TimesheetRepository
	approvalRepo  repository.ApprovalRepository
	auditRepo     repository.AuditRepository
	projectRepo   repository.ProjectRepository
	txManager     repository.TransactionManager
	mode          model.ConsistencyMode
	log           zerolog.Logger
	now           func() time.Time
}

func NewApprovalService(
	timesheetRepo repository.TimesheetRepository,
	approvalRepo repository.ApprovalRepository,
	auditRepo repository.AuditRepository,
	projectRepo repository.ProjectRepository,
	txManager repository.TransactionManager,
	mode model.ConsistencyMode,
	log zerolog.Logger,
) ApprovalService {
	return &approvalService{
		timesheetRepo: timesheetRepo,
		approvalRepo:  approvalRepo,
		auditRepo:     auditRepo,
		projectRepo:   projectRepo,
		txManager:     txManager,
		mode:          mode,
		log:           log.With().Str("component", "approval_service").Logger(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// --- Implementation ---

func (s *approvalService) ApproveTimesheetForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole) (ApprovalResponse, error) {
	resp, err := s.approveForProject(ctx, timesheetID, projectID, approverID, role)
	metrics.ObserveAction("approve_project", string(role), err)
	if err != nil {
		s.log.Error().Err(err).
			Str("timesheet_id", timesheetID).
			Str("project_id", projectID).
			Msg("approve timesheet for project failed")
		return ApprovalResponse{}, err
	}
	return resp, nil
}

func (s *approvalService) approveForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole) (ApprovalResponse, error) {
	axis, err := model.RequiredApprovalAxis(role)
	if err != nil {
		return ApprovalResponse{}, validationErr("%v", err)
	}
	tsID, pID, actorID, err := parseDecisionIDs(timesheetID, projectID, approverID)
	if err != nil {
		return ApprovalResponse{}, err
	}

	var resp ApprovalResponse
	err = s.run(ctx, func(ctx context.Context) error {
		timesheet, err := s.loadTimesheet(ctx, tsID)
		if err != nil {
			return err
		}
		record, err := s.loadApproval(ctx, tsID, pID)
		if err != nil {
			return err
		}

		after, allApproved, err := s.applyApproval(ctx, *timesheet, *record, axis, actorID)
		if err != nil {
			return err
		}

		if err := s.writeHistory(ctx, historyEntry{
			timesheet:    after,
			projectID:    pID,
			approverID:   actorID,
			role:         role,
			action:       model.ActionApproved,
			statusBefore: timesheet.Status,
		}); err != nil {
			return err
		}

		message := "Project approved, waiting for other managers"
		if allApproved {
			message = "Timesheet approved and status updated"
		}
		resp = ApprovalResponse{
			Success:     true,
			Message:     message,
			AllApproved: allApproved,
			NewStatus:   after.Status,
		}
		return nil
	})
	if err != nil {
		return ApprovalResponse{}, err
	}
	return resp, nil
}

func (s *approvalService) RejectTimesheetForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole, reason string) (ApprovalResponse, error) {
	resp, err := s.rejectForProject(ctx, timesheetID, projectID, approverID, role, reason)
	metrics.ObserveAction("reject_project", string(role), err)
	if err != nil {
		s.log.Error().Err(err).
			Str("timesheet_id", timesheetID).
			Str("project_id", projectID).
			Msg("reject timesheet for project failed")
		return ApprovalResponse{}, err
	}
	return resp, nil
}

func (s *approvalService) rejectForProject(ctx context.Context, timesheetID, projectID, approverID string, role model.ApproverRole, reason string) (ApprovalResponse, error) {
	axis, err := model.RequiredApprovalAxis(role)
	if err != nil {
		return ApprovalResponse{}, validationErr("%v", err)
	}
	if reason == "" {
		return ApprovalResponse{}, validationErr("rejection reason is required")
	}
	tsID, pID, actorID, err := parseDecisionIDs(timesheetID, projectID, approverID)
	if err != nil {
		return ApprovalResponse{}, err
	}

	var resp ApprovalResponse
	err = s.run(ctx, func(ctx context.Context) error {
		timesheet, err := s.loadTimesheet(ctx, tsID)
		if err != nil {
			return err
		}
		record, err := s.loadApproval(ctx, tsID, pID)
		if err != nil {
			return err
		}

		after, err := s.applyRejection(ctx, *timesheet, *record, axis, reason)
		if err != nil {
			return err
		}

		if err := s.writeHistory(ctx, historyEntry{
			timesheet:    after,
			projectID:    pID,
			approverID:   actorID,
			role:         role,
			action:       model.ActionRejected,
			statusBefore: timesheet.Status,
			reason:       reason,
		}); err != nil {
			return err
		}

		resp = ApprovalResponse{
			Success:     true,
			Message:     "Timesheet rejected",
			AllApproved: false,
			NewStatus:   after.Status,
		}
		return nil
	})
	if err != nil {
		return ApprovalResponse{}, err
	}
	return resp, nil
}

// applyApproval writes the approved record, recomputes consensus and, when
// reached, moves the timesheet to manager_approved. It returns the timesheet
// as persisted afterwards.
func (s *approvalService) applyApproval(ctx context.Context, timesheet model.Timesheet, record model.TimesheetProjectApproval, axis model.ApprovalAxis, approverID uuid.UUID) (model.Timesheet, bool, error) {
	now := s.now()

	next := record
	if !alreadyApproved(record, axis) {
		next = record.WithApproval(axis, now)
	}
	if err := s.approvalRepo.Save(ctx, &next); err != nil {
		return model.Timesheet{}, false, storageErr("update project approval", err)
	}

	allApproved, err := s.allApprovalsComplete(ctx, timesheet.ID)
	if err != nil {
		return model.Timesheet{}, false, err
	}
	if !allApproved {
		return timesheet, false, nil
	}

	current, _ := model.NormalizeStatus(timesheet.Status)
	if !canReachManagerApproved(current) {
		return timesheet, true, nil
	}

	updated := timesheet.WithManagerApproval(approverID, now)
	if err := s.timesheetRepo.Save(ctx, &updated); err != nil {
		return model.Timesheet{}, false, storageErr("update timesheet", err)
	}
	return updated, true, nil
}

// applyRejection writes the rejected record, resets its siblings and moves
// the timesheet to manager_rejected.
func (s *approvalService) applyRejection(ctx context.Context, timesheet model.Timesheet, record model.TimesheetProjectApproval, axis model.ApprovalAxis, reason string) (model.Timesheet, error) {
	current, _ := model.NormalizeStatus(timesheet.Status)
	if !canBeRejected(current) {
		return model.Timesheet{}, fmt.Errorf("timesheet %s is already %s: %w", timesheet.ID, timesheet.Status, ErrInvalidTransition)
	}

	next := record.WithRejection(axis, reason)
	if err := s.approvalRepo.Save(ctx, &next); err != nil {
		return model.Timesheet{}, storageErr("update project approval", err)
	}
	if err := s.approvalRepo.ResetExcept(ctx, timesheet.ID, record.ProjectID); err != nil {
		return model.Timesheet{}, storageErr("reset project approvals", err)
	}

	updated := timesheet.WithManagerRejection(reason, s.now())
	if err := s.timesheetRepo.Save(ctx, &updated); err != nil {
		return model.Timesheet{}, storageErr("update timesheet", err)
	}
	return updated, nil
}

type historyEntry struct {
	timesheet    model.Timesheet // state after the decision
	projectID    uuid.UUID
	approverID   uuid.UUID
	role         model.ApproverRole
	action       string
	statusBefore string
	reason       string
	notes        string
}

func (s *approvalService) writeHistory(ctx context.Context, e historyEntry) error {
	entry := model.ApprovalHistory{
		TimesheetID:  e.timesheet.ID,
		ProjectID:    e.projectID,
		UserID:       e.timesheet.UserID,
		ApproverID:   e.approverID,
		ApproverRole: string(e.role),
		Action:       e.action,
		StatusBefore: string(s.normalizeForHistory(e.timesheet.ID, e.statusBefore)),
		StatusAfter:  string(s.normalizeForHistory(e.timesheet.ID, e.timesheet.Status)),
		Reason:       e.reason,
		Notes:        e.notes,
	}
	if err := s.auditRepo.Create(ctx, &entry); err != nil {
		return storageErr("write approval history", err)
	}
	return nil
}

func (s *approvalService) normalizeForHistory(timesheetID uuid.UUID, raw string) model.TimesheetStatus {
	status, origin := model.NormalizeStatus(raw)
	if origin != model.StatusOriginKnown {
		s.log.Warn().
			Str("timesheet_id", timesheetID.String()).
			Str("raw_status", raw).
			Str("normalized_status", string(status)).
			Str("origin", string(origin)).
			Msg("timesheet status outside known vocabulary")
	}
	return status
}

// run executes fn inside one transaction in transactional mode, directly otherwise.
func (s *approvalService) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.mode == model.ConsistencyTransactional {
		return s.txManager.RunInTx(ctx, fn)
	}
	return fn(ctx)
}

func (s *approvalService) loadTimesheet(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	timesheet, err := s.timesheetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("timesheet", err)
	}
	return timesheet, nil
}

func (s *approvalService) loadApproval(ctx context.Context, timesheetID, projectID uuid.UUID) (*model.TimesheetProjectApproval, error) {
	record, err := s.approvalRepo.FindOne(ctx, timesheetID, projectID)
	if err != nil {
		return nil, lookupErr("project approval record", err)
	}
	return record, nil
}

// --- Helpers ---

// alreadyApproved keeps repeat approvals from moving the original timestamp.
func alreadyApproved(record model.TimesheetProjectApproval, axis model.ApprovalAxis) bool {
	switch axis {
	case model.LeadAxis:
		return record.LeadStatus == model.DecisionApproved
	case model.ManagerAxis:
		return record.ManagerStatus == model.DecisionApproved
	default:
		return false
	}
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validationErr("invalid %s %q", field, raw)
	}
	return id, nil
}

func parseDecisionIDs(timesheetID, projectID, approverID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	tsID, err := parseID("timesheet_id", timesheetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	pID, err := parseID("project_id", projectID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	actorID, err := parseID("approver_id", approverID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	return tsID, pID, actorID, nil
}
