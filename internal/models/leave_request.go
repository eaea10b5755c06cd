package models

import "time"

// LeaveStatus represents the decision state of a leave request. The values
// are the Dutch labels the dashboard displays; they are part of the persisted
// data format.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "In behandeling"
	LeaveStatusApproved LeaveStatus = "Goedgekeurd"
	LeaveStatusRejected LeaveStatus = "Afgewezen"
)

// CanTransitionTo reports whether the status may change to next. Decisions
// are one-way: only pending requests can be decided, and a decision is final.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	if s != LeaveStatusPending {
		return false
	}
	return next == LeaveStatusApproved || next == LeaveStatusRejected
}

// LeaveRequest is a resident's temporary-absence request.
type LeaveRequest struct {
	Base
	ResidentID   string      `json:"resident_id"`
	ResidentName string      `json:"resident_name"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Destination  string      `json:"destination"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	SubmittedAt  time.Time   `json:"submitted_at"`
	DecidedBy    string      `json:"decided_by,omitempty"`
	DecidedAt    *time.Time  `json:"decided_at,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// Field returns the named field's value for filtering and sorting.
func (l *LeaveRequest) Field(name string) any {
	switch name {
	case "id":
		return l.ID
	case "resident_id":
		return l.ResidentID
	case "resident_name":
		return l.ResidentName
	case "start_date":
		return l.StartDate
	case "end_date":
		return l.EndDate
	case "destination":
		return l.Destination
	case "reason":
		return l.Reason
	case "status":
		return string(l.Status)
	case "submitted_at":
		return l.SubmittedAt
	case "decided_by":
		return l.DecidedBy
	default:
		return nil
	}
}
