package models

import "time"

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionImport AuditAction = "import"
	AuditActionExport AuditAction = "export"
)

// AuditEntry is an immutable record of a mutating action. Entries are
// append-only; nothing in the application updates or deletes them.
type AuditEntry struct {
	Base
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entity_id,omitempty"`
	Details   string      `json:"details"`
	IPAddress string      `json:"ip_address,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Field returns the named field's value for filtering and sorting.
func (a *AuditEntry) Field(name string) any {
	switch name {
	case "id":
		return a.ID
	case "user":
		return a.User
	case "action":
		return string(a.Action)
	case "entity":
		return a.Entity
	case "entity_id":
		return a.EntityID
	case "details":
		return a.Details
	case "ip_address":
		return a.IPAddress
	case "timestamp":
		return a.Timestamp
	default:
		return nil
	}
}
