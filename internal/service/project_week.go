package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Siva2k2k/ES-TM-sub001/internal/metrics"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"
	"github.com/Siva2k2k/ES-TM-sub001/internal/repository"

	"github.com/google/uuid"
)

// projectWeek is the resolved scope of one bulk project-week call.
type projectWeek struct {
	project    model.Project
	timesheets map[uuid.UUID]model.Timesheet
	approvals  []model.TimesheetProjectApproval
}

func (s *approvalService) ApproveProjectWeek(ctx context.Context, req ProjectWeekRequest) (ProjectWeekResponse, error) {
	resp, err := s.bulkProjectWeek(ctx, req, model.ActionApproved, "")
	metrics.ObserveAction("approve_project_week", string(req.ApproverRole), err)
	if err != nil {
		s.log.Error().Err(err).
			Str("project_id", req.ProjectID).
			Str("week_start", req.WeekStart).
			Str("week_end", req.WeekEnd).
			Msg("bulk project-week approval failed")
		return ProjectWeekResponse{}, err
	}
	return resp, nil
}

func (s *approvalService) RejectProjectWeek(ctx context.Context, req ProjectWeekRequest, reason string) (ProjectWeekResponse, error) {
	if reason == "" {
		err := validationErr("rejection reason is required")
		metrics.ObserveAction("reject_project_week", string(req.ApproverRole), err)
		return ProjectWeekResponse{}, err
	}
	resp, err := s.bulkProjectWeek(ctx, req, model.ActionRejected, reason)
	metrics.ObserveAction("reject_project_week", string(req.ApproverRole), err)
	if err != nil {
		s.log.Error().Err(err).
			Str("project_id", req.ProjectID).
			Str("week_start", req.WeekStart).
			Str("week_end", req.WeekEnd).
			Msg("bulk project-week rejection failed")
		return ProjectWeekResponse{}, err
	}
	return resp, nil
}

// bulkProjectWeek applies one decision to every approval record of the
// project in the week. Under a transaction any failure discards the whole batch.
func (s *approvalService) bulkProjectWeek(ctx context.Context, req ProjectWeekRequest, action, reason string) (ProjectWeekResponse, error) {
	axis, err := model.RequiredApprovalAxis(req.ApproverRole)
	if err != nil {
		return ProjectWeekResponse{}, validationErr("%v", err)
	}
	projectID, err := parseID("project_id", req.ProjectID)
	if err != nil {
		return ProjectWeekResponse{}, err
	}
	approverID, err := parseID("approver_id", req.ApproverID)
	if err != nil {
		return ProjectWeekResponse{}, err
	}
	weekStart, err := parseWeekDate("week_start", req.WeekStart)
	if err != nil {
		return ProjectWeekResponse{}, err
	}
	weekEnd, err := parseWeekDate("week_end", req.WeekEnd)
	if err != nil {
		return ProjectWeekResponse{}, err
	}
	if weekEnd.Before(weekStart) {
		return ProjectWeekResponse{}, validationErr("week_end %s is before week_start %s", req.WeekEnd, req.WeekStart)
	}

	var resp ProjectWeekResponse
	err = s.run(ctx, func(ctx context.Context) error {
		scope, err := s.resolveProjectWeek(ctx, projectID, weekStart, weekEnd)
		if err != nil {
			return err
		}

		users := make(map[uuid.UUID]struct{})
		affected := make(map[uuid.UUID]struct{})
		for _, record := range scope.approvals {
			timesheet := scope.timesheets[record.TimesheetID]

			var after model.Timesheet
			notes := model.NoteBulkApproval
			if action == model.ActionApproved {
				after, _, err = s.applyApproval(ctx, timesheet, record, axis, approverID)
			} else {
				notes = model.NoteBulkRejection
				after, err = s.applyRejection(ctx, timesheet, record, axis, reason)
			}
			if err != nil {
				return fmt.Errorf("timesheet %s: %w", timesheet.ID, err)
			}
			scope.timesheets[after.ID] = after

			if err := s.writeHistory(ctx, historyEntry{
				timesheet:    after,
				projectID:    projectID,
				approverID:   approverID,
				role:         req.ApproverRole,
				action:       action,
				statusBefore: timesheet.Status,
				reason:       reason,
				notes:        notes,
			}); err != nil {
				return fmt.Errorf("timesheet %s: %w", timesheet.ID, err)
			}

			users[after.UserID] = struct{}{}
			affected[after.ID] = struct{}{}
		}

		weekLabel := FormatWeekLabel(weekStart, weekEnd)
		verb := "approved"
		if action == model.ActionRejected {
			verb = "rejected"
		}
		resp = ProjectWeekResponse{
			Success:            true,
			Message:            fmt.Sprintf("Successfully %s %d user(s) for %s - %s", verb, len(users), scope.project.Name, weekLabel),
			AffectedUsers:      len(users),
			AffectedTimesheets: len(affected),
			ProjectWeek: ProjectWeekInfo{
				ProjectName: scope.project.Name,
				WeekLabel:   weekLabel,
			},
		}
		s.log.Info().
			Str("project_id", projectID.String()).
			Str("action", action).
			Int("affected_timesheets", len(affected)).
			Bool("transactional", repository.InTx(ctx)).
			Msg("project-week decision applied")
		return nil
	})
	if err != nil {
		return ProjectWeekResponse{}, err
	}
	return resp, nil
}

func (s *approvalService) resolveProjectWeek(ctx context.Context, projectID uuid.UUID, weekStart, weekEnd time.Time) (*projectWeek, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr("project", err)
	}

	// the end date is inclusive, so match anything up to the end of that day
	timesheets, err := s.timesheetRepo.FindInWeek(ctx, weekStart, weekEnd.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, storageErr("load timesheets for week", err)
	}
	if len(timesheets) == 0 {
		return nil, fmt.Errorf("no timesheets found for this week: %w", ErrNoMatchingRecords)
	}

	byID := make(map[uuid.UUID]model.Timesheet, len(timesheets))
	ids := make([]uuid.UUID, 0, len(timesheets))
	for _, ts := range timesheets {
		byID[ts.ID] = ts
		ids = append(ids, ts.ID)
	}

	approvals, err := s.approvalRepo.FindByTimesheetsAndProject(ctx, ids, projectID)
	if err != nil {
		return nil, storageErr("load project approvals for week", err)
	}
	if len(approvals) == 0 {
		return nil, fmt.Errorf("no approval records found for this project-week: %w", ErrNoMatchingRecords)
	}

	return &projectWeek{
		project:    *project,
		timesheets: byID,
		approvals:  approvals,
	}, nil
}
