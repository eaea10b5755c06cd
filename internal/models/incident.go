package models

import "time"

// IncidentStatus represents an incident's position in its workflow.
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "open"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"
)

// incidentRank orders statuses along the workflow. Transitions only move
// forward; closed is terminal.
var incidentRank = map[IncidentStatus]int{
	IncidentStatusOpen:       0,
	IncidentStatusInProgress: 1,
	IncidentStatusResolved:   2,
	IncidentStatusClosed:     3,
}

// CanTransitionTo reports whether the status may change to next. Skipping
// intermediate statuses is allowed (open incidents can be resolved directly),
// going backwards is not.
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	from, ok := incidentRank[s]
	to, ok2 := incidentRank[next]
	if !ok || !ok2 {
		return false
	}
	return to > from
}

// Incident is a report of an event, optionally tied to residents.
type Incident struct {
	Base
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Priority        Priority       `json:"priority"`
	Status          IncidentStatus `json:"status"`
	ResidentIDs     []string       `json:"resident_ids,omitempty"`
	Location        string         `json:"location,omitempty"`
	ReportedBy      string         `json:"reported_by"`
	ReportedAt      time.Time      `json:"reported_at"`
	FollowUpDate    *time.Time     `json:"follow_up_date,omitempty"`
	FollowUpActions string         `json:"follow_up_actions,omitempty"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
}

// Field returns the named field's value for filtering and sorting.
func (i *Incident) Field(name string) any {
	switch name {
	case "id":
		return i.ID
	case "type":
		return i.Type
	case "title":
		return i.Title
	case "description":
		return i.Description
	case "priority":
		return string(i.Priority)
	case "status":
		return string(i.Status)
	case "location":
		return i.Location
	case "reported_by":
		return i.ReportedBy
	case "reported_at":
		return i.ReportedAt
	case "created_at":
		return i.CreatedAt
	default:
		return nil
	}
}
