package services

import (
	"fmt"
	"time"
)

// reportService assembles the management report from the other services'
// aggregates.
type reportService struct {
	residents ResidentServicer
	incidents IncidentServicer
	leaves    LeaveServicer
	documents DocumentServicer
	audit     AuditServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(residents ResidentServicer, incidents IncidentServicer, leaves LeaveServicer, documents DocumentServicer, audit AuditServicer) ReportServicer {
	return &reportService{
		residents: residents,
		incidents: incidents,
		leaves:    leaves,
		documents: documents,
		audit:     audit,
	}
}

// Management builds the management report over the current collections. The
// optional period only labels the report; the statistics always reflect the
// live data.
func (s *reportService) Management(author string, from, to *time.Time) *ManagementReport {
	report := &ManagementReport{
		Title:         "Managementrapportage",
		ReportType:    "management",
		GeneratedAt:   time.Now(),
		Author:        author,
		From:          from,
		To:            to,
		Residents:     s.residents.Stats(),
		Incidents:     s.incidents.Stats(),
		LeaveRequests: s.leaves.Stats(),
		Documents:     s.documents.Stats(),
	}

	s.audit.Record(author, "export", "report", "",
		fmt.Sprintf("generated management report covering %d residents and %d incidents",
			report.Residents.Total, report.Incidents.Total), "")

	return report
}
