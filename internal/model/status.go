package model

// TimesheetStatus is the top-level lifecycle state of a timesheet.
type TimesheetStatus string

const (
	StatusDraft              TimesheetStatus = "draft"
	StatusSubmitted          TimesheetStatus = "submitted"
	StatusManagerApproved    TimesheetStatus = "manager_approved"
	StatusManagerRejected    TimesheetStatus = "manager_rejected"
	StatusManagementPending  TimesheetStatus = "management_pending"
	StatusManagementRejected TimesheetStatus = "management_rejected"
	StatusFrozen             TimesheetStatus = "frozen"
	StatusBilled             TimesheetStatus = "billed"
)

// knownStatuses is the fixed vocabulary accepted by approval history rows.
var knownStatuses = map[TimesheetStatus]struct{}{
	StatusDraft:              {},
	StatusSubmitted:          {},
	StatusManagerApproved:    {},
	StatusManagerRejected:    {},
	StatusManagementPending:  {},
	StatusManagementRejected: {},
	StatusFrozen:             {},
	StatusBilled:             {},
}

// legacyPendingStatus is written by older clients before "submitted" existed.
const legacyPendingStatus = "pending"

// StatusOrigin tells how NormalizeStatus arrived at its result.
type StatusOrigin string

const (
	StatusOriginKnown   StatusOrigin = "known"
	StatusOriginLegacy  StatusOrigin = "legacy"
	StatusOriginUnknown StatusOrigin = "unknown"
)

// IsKnown reports whether s belongs to the fixed status vocabulary.
func (s TimesheetStatus) IsKnown() bool {
	_, ok := knownStatuses[s]
	return ok
}

func (s TimesheetStatus) String() string { return string(s) }

// NormalizeStatus maps any raw stored value onto the fixed vocabulary.
// Legacy "pending" becomes submitted, anything else unrecognised becomes draft.
// Callers should surface non-known origins rather than drop them.
func NormalizeStatus(raw string) (TimesheetStatus, StatusOrigin) {
	s := TimesheetStatus(raw)
	if s.IsKnown() {
		return s, StatusOriginKnown
	}
	if raw == legacyPendingStatus {
		return StatusSubmitted, StatusOriginLegacy
	}
	return StatusDraft, StatusOriginUnknown
}
