package models

import "time"

// ResidentStatus represents a resident's lifecycle state. Residents are never
// hard-deleted; leaving the shelter archives the record.
type ResidentStatus string

const (
	ResidentStatusActive   ResidentStatus = "active"
	ResidentStatusArchived ResidentStatus = "archived"
)

// ContactInfo holds a resident's contact details.
type ContactInfo struct {
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	EmergencyPhone   string `json:"emergency_phone,omitempty"`
}

// MedicalInfo holds a resident's medical details.
type MedicalInfo struct {
	Doctor      string   `json:"doctor,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Resident represents a shelter resident's case record.
type Resident struct {
	Base
	Name        string         `json:"name"`
	Nationality string         `json:"nationality"`
	Status      ResidentStatus `json:"status"`
	Room        string         `json:"room"`
	Priority    Priority       `json:"priority"`
	CaseWorker  string         `json:"case_worker"`
	ArrivalDate time.Time      `json:"arrival_date"`
	Contact     *ContactInfo   `json:"contact,omitempty"`
	Medical     *MedicalInfo   `json:"medical,omitempty"`
	LabelIDs    []string       `json:"label_ids,omitempty"`
	DocumentIDs []string       `json:"document_ids,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

// Field returns the named field's value for filtering and sorting.
func (r *Resident) Field(name string) any {
	switch name {
	case "id":
		return r.ID
	case "name":
		return r.Name
	case "nationality":
		return r.Nationality
	case "status":
		return string(r.Status)
	case "room":
		return r.Room
	case "priority":
		return string(r.Priority)
	case "case_worker":
		return r.CaseWorker
	case "arrival_date":
		return r.ArrivalDate
	case "created_at":
		return r.CreatedAt
	case "notes":
		return r.Notes
	default:
		return nil
	}
}
