package services

import (
	"strings"
	"testing"
	"time"

	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/store"
	"refutree/internal/testutil"
)

func TestAuditRecord(t *testing.T) {
	t.Run("appends_entry", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(st)

		svc.Record("A. de Vries", models.AuditActionCreate, "residents", "res-1", "intake afgerond", "10.0.0.5")

		entries := store.Load[*models.AuditEntry](st, models.CollectionAuditLogs)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.User != "A. de Vries" || entry.Entity != "residents" || entry.EntityID != "res-1" {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if entry.Timestamp.IsZero() {
			t.Error("expected timestamp to be set")
		}
	})

	t.Run("empty_user_becomes_system", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(st)

		svc.Record("", models.AuditActionUpdate, "documents", "doc-1", "vervaldatum bereikt", "")

		entries := store.Load[*models.AuditEntry](st, models.CollectionAuditLogs)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].User != models.SystemUser {
			t.Errorf("expected user %s, got %s", models.SystemUser, entries[0].User)
		}
	})
}

func TestAuditListener(t *testing.T) {
	t.Run("store_mutations_are_audited", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		audit := NewAuditService(st)
		st.SetListener(audit.(store.Listener))

		residents := NewResidentService(st)
		created, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)
		_, err = residents.Archive("A. de Vries", created.ID)
		testutil.AssertNoError(t, err)

		entries := store.Load[*models.AuditEntry](st, models.CollectionAuditLogs)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}

		byAction := map[models.AuditAction]*models.AuditEntry{}
		for _, e := range entries {
			byAction[e.Action] = e
		}
		create, ok := byAction[models.AuditActionCreate]
		if !ok {
			t.Fatal("expected a create entry")
		}
		if create.Entity != models.CollectionResidents || create.EntityID != created.ID {
			t.Errorf("unexpected create entry: %+v", create)
		}
		update, ok := byAction[models.AuditActionUpdate]
		if !ok {
			t.Fatal("expected an update entry")
		}
		if !strings.Contains(update.Details, "before") || !strings.Contains(update.Details, "after") {
			t.Errorf("expected before/after details, got %s", update.Details)
		}
	})

	t.Run("trail_does_not_audit_itself", func(t *testing.T) {
		st, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		audit := NewAuditService(st)
		st.SetListener(audit.(store.Listener))

		audit.Record("A. de Vries", models.AuditActionExport, "bundle", "", "export gestart", "")

		entries := store.Load[*models.AuditEntry](st, models.CollectionAuditLogs)
		if len(entries) != 1 {
			t.Errorf("expected exactly 1 entry, got %d", len(entries))
		}
	})
}

func TestAuditQuery(t *testing.T) {
	st, db := testutil.SetupTestStore(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(st)

	svc.Record("A. de Vries", models.AuditActionCreate, "residents", "res-1", "intake", "")
	svc.Record("B. Jansen", models.AuditActionDelete, "incidents", "inc-1", "opgeruimd", "")
	svc.Record("A. de Vries", models.AuditActionUpdate, "residents", "res-1", "kamer gewijzigd", "")

	t.Run("filters_by_user", func(t *testing.T) {
		page, err := svc.Query(AuditFilter{User: "B. Jansen"}, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 || page.Data[0].Action != models.AuditActionDelete {
			t.Errorf("expected only B. Jansen's delete entry")
		}
	})

	t.Run("filters_by_entity", func(t *testing.T) {
		page, err := svc.Query(AuditFilter{Entity: "residents"}, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 2 {
			t.Errorf("expected 2 resident entries, got %d", len(page.Data))
		}
	})

	t.Run("newest_first", func(t *testing.T) {
		page, err := svc.Query(AuditFilter{}, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(page.Data))
		}
		for i := 1; i < len(page.Data); i++ {
			if page.Data[i].Timestamp.After(page.Data[i-1].Timestamp) {
				t.Error("expected entries sorted newest first")
			}
		}
	})
}

func TestAuditExportCSV(t *testing.T) {
	st, db := testutil.SetupTestStore(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(st)

	svc.Record("A. de Vries", models.AuditActionCreate, "residents", "res-1", "intake", "10.0.0.5")

	data, filename, err := svc.ExportCSV(AuditFilter{})
	testutil.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Datum,Gebruiker,Actie,Entiteit,Details,IP Adres" {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "A. de Vries") || !strings.Contains(lines[1], "10.0.0.5") {
		t.Errorf("unexpected CSV row: %s", lines[1])
	}

	expected := "audit_log_" + time.Now().Format("2006-01-02") + ".csv"
	if filename != expected {
		t.Errorf("expected filename %s, got %s", expected, filename)
	}
}
