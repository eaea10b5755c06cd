package models

import "time"

// Base contains the common fields of every stored record. Records live inside
// JSON collection documents, not in their own tables, so there is no gorm
// metadata here; the store stamps these fields on upsert.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID returns the record's id.
func (b *Base) RecordID() string { return b.ID }

// SetRecordID assigns the record's id.
func (b *Base) SetRecordID(id string) { b.ID = id }

// Stamp sets the bookkeeping timestamps. CreatedAt is only set once.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Collection keys. These are the stable persisted-state keys; renaming one
// silently orphans previously stored data.
const (
	CollectionResidents     = "residents"
	CollectionIncidents     = "incidents"
	CollectionLeaveRequests = "leaveRequests"
	CollectionDocuments     = "documents"
	CollectionLabels        = "labels"
	CollectionAuditLogs     = "auditLogs"
	CollectionNotifications = "notifications"
)

// ExportableCollections lists every collection included in a full export
// bundle, in the order they appear in the bundle.
var ExportableCollections = []string{
	CollectionResidents,
	CollectionIncidents,
	CollectionLeaveRequests,
	CollectionDocuments,
	CollectionLabels,
	CollectionNotifications,
	CollectionAuditLogs,
}

// Priority levels shared by residents and incidents.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// SystemUser is the audit attribution used when no authenticated user is known.
const SystemUser = "Systeem"
