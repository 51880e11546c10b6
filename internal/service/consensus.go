package service

import (
	"context"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
)

// AllFullyApproved reports whether every record is fully approved.
// An empty set is vacuously approved.
func AllFullyApproved(records []model.TimesheetProjectApproval) bool {
	for _, r := range records {
		if !r.FullyApproved() {
			return false
		}
	}
	return true
}

// allApprovalsComplete reloads the timesheet's records and checks consensus.
// It must run after the triggering record write so it sees that write.
func (s *approvalService) allApprovalsComplete(ctx context.Context, timesheetID uuid.UUID) (bool, error) {
	records, err := s.approvalRepo.FindByTimesheet(ctx, timesheetID)
	if err != nil {
		return false, storageErr("load project approvals", err)
	}
	if len(records) == 0 {
		s.log.Warn().
			Str("timesheet_id", timesheetID.String()).
			Msg("timesheet has no project approvals; treating as fully approved")
	}
	return AllFullyApproved(records), nil
}

// canReachManagerApproved lists the states consensus may move to manager_approved.
func canReachManagerApproved(status model.TimesheetStatus) bool {
	return status == model.StatusSubmitted || status == model.StatusManagerRejected
}

// canBeRejected reports whether a project-level rejection may move the
// timesheet to manager_rejected. Billed timesheets are closed.
func canBeRejected(status model.TimesheetStatus) bool {
	return status != model.StatusBilled
}
