package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullyApproved(t *testing.T) {
	t.Parallel()

	lead := uuid.New()
	tests := []struct {
		name   string
		record TimesheetProjectApproval
		want   bool
	}{
		{
			name:   "no lead, manager approved",
			record: TimesheetProjectApproval{LeadStatus: DecisionPending, ManagerStatus: DecisionApproved},
			want:   true,
		},
		{
			name:   "no lead, manager pending",
			record: TimesheetProjectApproval{ManagerStatus: DecisionPending},
			want:   false,
		},
		{
			name:   "lead assigned but pending",
			record: TimesheetProjectApproval{LeadID: &lead, LeadStatus: DecisionPending, ManagerStatus: DecisionApproved},
			want:   false,
		},
		{
			name:   "lead and manager approved",
			record: TimesheetProjectApproval{LeadID: &lead, LeadStatus: DecisionApproved, ManagerStatus: DecisionApproved},
			want:   true,
		},
		{
			name:   "lead approved, manager rejected",
			record: TimesheetProjectApproval{LeadID: &lead, LeadStatus: DecisionApproved, ManagerStatus: DecisionRejected},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.record.FullyApproved())
		})
	}
}

func TestWithApprovalLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	before := TimesheetProjectApproval{
		ManagerStatus:          DecisionRejected,
		ManagerRejectionReason: "missing detail",
		LeadStatus:             DecisionPending,
	}
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	next := before.WithApproval(ManagerAxis, at)

	assert.Equal(t, DecisionApproved, next.ManagerStatus)
	assert.Empty(t, next.ManagerRejectionReason)
	require.NotNil(t, next.ManagerApprovedAt)
	assert.True(t, next.ManagerApprovedAt.Equal(at))
	assert.Equal(t, DecisionPending, next.LeadStatus)

	assert.Equal(t, DecisionRejected, before.ManagerStatus)
	assert.Equal(t, "missing detail", before.ManagerRejectionReason)
	assert.Nil(t, before.ManagerApprovedAt)
}

func TestWithRejectionOnLeadAxis(t *testing.T) {
	t.Parallel()

	next := TimesheetProjectApproval{LeadStatus: DecisionApproved, ManagerStatus: DecisionApproved}.
		WithRejection(LeadAxis, "wrong task code")

	assert.Equal(t, DecisionRejected, next.LeadStatus)
	assert.Equal(t, "wrong task code", next.LeadRejectionReason)
	assert.Equal(t, DecisionApproved, next.ManagerStatus)
	assert.True(t, next.FullyApproved(), "lead axis is ignored without an assigned lead")
}

func TestTimesheetTransitions(t *testing.T) {
	t.Parallel()

	approver := uuid.New()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ts := Timesheet{Status: string(StatusSubmitted)}

	approved := ts.WithManagerApproval(approver, at)
	assert.Equal(t, string(StatusManagerApproved), approved.Status)
	require.NotNil(t, approved.ApprovedByManagerID)
	assert.Equal(t, approver, *approved.ApprovedByManagerID)
	assert.Equal(t, string(StatusSubmitted), ts.Status)

	rejected := approved.WithManagerRejection("missing detail", at)
	assert.Equal(t, string(StatusManagerRejected), rejected.Status)
	assert.Equal(t, "missing detail", rejected.ManagerRejectionReason)
	require.NotNil(t, rejected.ManagerRejectedAt)
}
