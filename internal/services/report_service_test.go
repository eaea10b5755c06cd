package services

import (
	"testing"

	"refutree/internal/models"
	"refutree/internal/store"
	"refutree/internal/testutil"
)

func TestManagementReport(t *testing.T) {
	st, db := testutil.SetupTestStore(t)
	defer testutil.TeardownTestDB(t, db)

	residents := NewResidentService(st)
	incidents := NewIncidentService(st)
	notifications := NewNotificationService(st)
	leaves := NewLeaveService(st, residents, notifications)
	documents := NewDocumentService(st, residents)
	audit := NewAuditService(st)
	svc := NewReportService(residents, incidents, leaves, documents, audit)

	resident, err := residents.Create("A. de Vries", testutil.MakeResident())
	testutil.AssertNoError(t, err)
	_, err = incidents.Report("Nachtdienst", testutil.MakeIncident())
	testutil.AssertNoError(t, err)
	_, err = leaves.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
	testutil.AssertNoError(t, err)

	report := svc.Management("B. Jansen", nil, nil)

	if report.Author != "B. Jansen" {
		t.Errorf("expected author B. Jansen, got %s", report.Author)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("expected generated_at to be set")
	}
	if report.Residents.Total != 1 {
		t.Errorf("expected 1 resident, got %d", report.Residents.Total)
	}
	if report.Incidents.Total != 1 {
		t.Errorf("expected 1 incident, got %d", report.Incidents.Total)
	}
	if report.LeaveRequests[string(models.LeaveStatusPending)] != 1 {
		t.Errorf("expected 1 pending leave request, got %d", report.LeaveRequests[string(models.LeaveStatusPending)])
	}

	entries := store.Load[*models.AuditEntry](st, models.CollectionAuditLogs)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Entity != "report" {
		t.Errorf("expected report audit entry, got %s", entries[0].Entity)
	}
}
