package models

import "time"

// DocumentStatus represents the verification state of a document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusRejected DocumentStatus = "rejected"
	DocumentStatusExpired  DocumentStatus = "expired"
)

// CanTransitionTo reports whether the status may change to next. Pending
// documents get verified or rejected; only verified documents can expire.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case DocumentStatusPending:
		return next == DocumentStatusVerified || next == DocumentStatusRejected
	case DocumentStatusVerified:
		return next == DocumentStatusExpired
	default:
		return false
	}
}

// Document is uploaded-file metadata tied to a resident. The binary itself
// is not stored here.
type Document struct {
	Base
	ResidentID string         `json:"resident_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Status     DocumentStatus `json:"status"`
	ExpiryDate *time.Time     `json:"expiry_date,omitempty"`
	UploadedBy string         `json:"uploaded_by"`
	UploadedAt time.Time      `json:"uploaded_at"`
	VerifiedBy string         `json:"verified_by,omitempty"`
	VerifiedAt *time.Time     `json:"verified_at,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// Field returns the named field's value for filtering and sorting.
func (d *Document) Field(name string) any {
	switch name {
	case "id":
		return d.ID
	case "resident_id":
		return d.ResidentID
	case "name":
		return d.Name
	case "type":
		return d.Type
	case "status":
		return string(d.Status)
	case "uploaded_by":
		return d.UploadedBy
	case "uploaded_at":
		return d.UploadedAt
	case "expiry_date":
		if d.ExpiryDate == nil {
			return nil
		}
		return *d.ExpiryDate
	case "notes":
		return d.Notes
	default:
		return nil
	}
}
