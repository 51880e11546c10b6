package model

import "fmt"

// ApproverRole is the role an approver acts under in team review.
type ApproverRole string

const (
	RoleLead       ApproverRole = "lead"
	RoleManager    ApproverRole = "manager"
	RoleManagement ApproverRole = "management"
	RoleSuperAdmin ApproverRole = "super_admin"
)

// ApprovalAxis is one of the two independent sign-offs on an approval record.
type ApprovalAxis int

const (
	LeadAxis ApprovalAxis = iota + 1
	ManagerAxis
)

func (a ApprovalAxis) String() string {
	switch a {
	case LeadAxis:
		return "lead"
	case ManagerAxis:
		return "manager"
	default:
		return "unknown"
	}
}

// ParseApproverRole validates a raw role string.
func ParseApproverRole(raw string) (ApproverRole, error) {
	role := ApproverRole(raw)
	if _, err := RequiredApprovalAxis(role); err != nil {
		return "", err
	}
	return role, nil
}

// RequiredApprovalAxis returns which sign-off a role provides.
func RequiredApprovalAxis(role ApproverRole) (ApprovalAxis, error) {
	switch role {
	case RoleLead:
		return LeadAxis, nil
	case RoleManager, RoleManagement, RoleSuperAdmin:
		return ManagerAxis, nil
	default:
		return 0, fmt.Errorf("unsupported approver role %q", string(role))
	}
}

// ConsistencyMode selects whether workflow operations run inside one transaction.
type ConsistencyMode string

const (
	ConsistencyTransactional ConsistencyMode = "transactional"
	ConsistencyBestEffort    ConsistencyMode = "best_effort"
)

// ParseConsistencyMode validates a raw mode string.
func ParseConsistencyMode(raw string) (ConsistencyMode, error) {
	switch ConsistencyMode(raw) {
	case ConsistencyTransactional, ConsistencyBestEffort:
		return ConsistencyMode(raw), nil
	default:
		return "", fmt.Errorf("unsupported consistency mode %q", raw)
	}
}
