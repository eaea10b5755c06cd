package services

import (
	"encoding/json"
	"time"

	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/stats"
)

// UserServicer defines the contract for staff accounts and login.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.UserRole) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ResidentFilter holds the list-view criteria for residents.
type ResidentFilter struct {
	Search   string
	Status   string
	Priority string
	LabelID  string
	SortDesc bool
}

// ResidentServicer defines the contract for resident case records.
type ResidentServicer interface {
	Create(actor string, resident *models.Resident) (*models.Resident, error)
	List(f ResidentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Resident], error)
	Get(id string) (*models.Resident, error)
	Update(actor, id string, resident *models.Resident) (*models.Resident, error)
	Archive(actor, id string) (*models.Resident, error)
	Stats() *ResidentStats
}

// ResidentStats summarizes the residents collection.
type ResidentStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}

// IncidentFilter holds the list-view criteria for incidents.
type IncidentFilter struct {
	Search   string
	Status   string
	Priority string
	Type     string
	From     *time.Time
	To       *time.Time
	SortAsc  bool
}

// IncidentServicer defines the contract for incident reports.
type IncidentServicer interface {
	Report(actor string, incident *models.Incident) (*models.Incident, error)
	List(f IncidentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Incident], error)
	Get(id string) (*models.Incident, error)
	UpdateStatus(actor, id string, next models.IncidentStatus, followUpActions string) (*models.Incident, error)
	Delete(actor, id string) error
	Stats() *IncidentStats
}

// IncidentStats summarizes the incidents collection for the dashboard cards.
type IncidentStats struct {
	Total      int                  `json:"total"`
	ByStatus   map[string]int       `json:"by_status"`
	ByPriority map[string]int       `json:"by_priority"`
	Recency    stats.RecencyBuckets `json:"recency"`
}

// LeaveFilter holds the list-view criteria for leave requests.
type LeaveFilter struct {
	Search     string
	Status     string
	ResidentID string
	From       *time.Time
	To         *time.Time
}

// LeaveServicer defines the contract for leave requests.
type LeaveServicer interface {
	Submit(actor string, request *models.LeaveRequest) (*models.LeaveRequest, error)
	List(f LeaveFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.LeaveRequest], error)
	Get(id string) (*models.LeaveRequest, error)
	Approve(actor, id, notes string) (*models.LeaveRequest, error)
	Reject(actor, id, notes string) (*models.LeaveRequest, error)
	Stats() map[string]int
}

// DocumentFilter holds the list-view criteria for documents.
type DocumentFilter struct {
	Search     string
	Status     string
	Type       string
	ResidentID string
}

// DocumentServicer defines the contract for document metadata.
type DocumentServicer interface {
	Register(actor string, document *models.Document) (*models.Document, error)
	List(f DocumentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Document], error)
	Get(id string) (*models.Document, error)
	UpdateStatus(actor, id string, next models.DocumentStatus, notes string) (*models.Document, error)
	Delete(actor, id string) error
	ExpireOverdue(actor string) (int, error)
	Stats() *DocumentStats
}

// DocumentStats summarizes the documents collection.
type DocumentStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"by_status"`
	ExpiringSoon int            `json:"expiring_soon"`
}

// LabelFilter holds the list-view criteria for labels.
type LabelFilter struct {
	Search   string
	Category string
}

// LabelServicer defines the contract for label definitions.
type LabelServicer interface {
	Create(actor string, label *models.Label) (*models.Label, error)
	List(f LabelFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Label], error)
	Get(id string) (*models.Label, error)
	Update(actor, id string, label *models.Label) (*models.Label, error)
	Delete(actor, id string) error
}

// AuditFilter holds the query criteria for the audit trail.
type AuditFilter struct {
	Search string
	User   string
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
}

// AuditServicer defines the contract for the audit recorder. Record and
// RecordChange never return errors: audit failures are logged but must not
// disrupt the operation being audited.
type AuditServicer interface {
	Record(user string, action models.AuditAction, entity, entityID, details, ipAddress string)
	Query(f AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.AuditEntry], error)
	ExportCSV(f AuditFilter) ([]byte, string, error)
}

// NotificationServicer defines the contract for dashboard notifications.
type NotificationServicer interface {
	Notify(message string, notificationType models.NotificationType)
	List(unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[*models.Notification], error)
	MarkRead(actor, id string) (*models.Notification, error)
}

// BackupServicer defines the contract for the export/import codec.
type BackupServicer interface {
	Export(actor string) (*Bundle, string, error)
	Import(actor string, raw json.RawMessage) (*ImportResult, error)
}

// ImportResult reports which collections a bundle replaced.
type ImportResult struct {
	Version     string         `json:"version"`
	ExportDate  string         `json:"export_date"`
	Collections map[string]int `json:"collections"`
}

// ReportServicer builds the management report from the aggregated statistics.
type ReportServicer interface {
	Management(author string, from, to *time.Time) *ManagementReport
}

// ManagementReport is the JSON the report view renders. PDF layout is a
// frontend concern; this is the data contract underneath it.
type ManagementReport struct {
	Title         string         `json:"title"`
	ReportType    string         `json:"report_type"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Author        string         `json:"author"`
	From          *time.Time     `json:"from,omitempty"`
	To            *time.Time     `json:"to,omitempty"`
	Residents     *ResidentStats `json:"residents"`
	Incidents     *IncidentStats `json:"incidents"`
	LeaveRequests map[string]int `json:"leave_requests"`
	Documents     *DocumentStats `json:"documents"`
}
