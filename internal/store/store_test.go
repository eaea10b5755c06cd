package store_test

import (
	"testing"

	"refutree/internal/models"
	"refutree/internal/store"
	"refutree/internal/testutil"
)

// recordingListener captures change notifications for assertions.
type recordingListener struct {
	changes []store.Change
}

func (l *recordingListener) RecordChange(change store.Change) {
	l.changes = append(l.changes, change)
}

func TestLoad(t *testing.T) {
	t.Run("unknown_collection_returns_empty", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		residents := store.Load[*models.Resident](s, models.CollectionResidents)
		if residents == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(residents) != 0 {
			t.Errorf("expected 0 residents, got %d", len(residents))
		}
	})

	t.Run("corrupt_json_recovers_to_empty", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		err := db.Exec("INSERT INTO collections (name, data, version) VALUES (?, ?, 1)",
			models.CollectionIncidents, "{not valid json").Error
		testutil.AssertNoError(t, err)

		incidents := store.Load[*models.Incident](s, models.CollectionIncidents)
		if len(incidents) != 0 {
			t.Errorf("expected empty collection after corruption, got %d records", len(incidents))
		}
	})

	t.Run("seeds_registered_collection_on_first_load", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		seed := []*models.Label{
			{Base: models.Base{ID: "label-crisis"}, Name: "Crisis", Color: "#DC2626", System: true},
			{Base: models.Base{ID: "label-medisch"}, Name: "Medisch", Color: "#059669", System: true},
		}
		s.RegisterSeed(models.CollectionLabels, seed)

		labels := store.Load[*models.Label](s, models.CollectionLabels)
		if len(labels) != 2 {
			t.Fatalf("expected 2 seeded labels, got %d", len(labels))
		}

		// The seed must be persisted, not recomputed per load.
		again := store.Load[*models.Label](s, models.CollectionLabels)
		if len(again) != 2 || again[0].ID != "label-crisis" {
			t.Errorf("seed not persisted: %+v", again)
		}
	})
}

func TestUpsert(t *testing.T) {
	t.Run("assigns_id_and_stamps_timestamps", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		saved, err := store.Upsert(s, models.CollectionResidents, "A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		if saved.ID == "" {
			t.Error("expected an assigned id")
		}
		if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
			t.Error("expected stamped timestamps")
		}

		residents := store.Load[*models.Resident](s, models.CollectionResidents)
		if len(residents) != 1 {
			t.Fatalf("expected 1 resident, got %d", len(residents))
		}
	})

	t.Run("replaces_existing_record_in_place", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		first, err := store.Upsert(s, models.CollectionResidents, "", testutil.MakeResident())
		testutil.AssertNoError(t, err)
		_, err = store.Upsert(s, models.CollectionResidents, "", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		update := *first
		update.Room = "204"
		_, err = store.Upsert(s, models.CollectionResidents, "", &update)
		testutil.AssertNoError(t, err)

		residents := store.Load[*models.Resident](s, models.CollectionResidents)
		if len(residents) != 2 {
			t.Fatalf("expected 2 residents after update, got %d", len(residents))
		}
		if residents[0].ID != first.ID || residents[0].Room != "204" {
			t.Errorf("update did not keep position: %+v", residents[0])
		}
	})

	t.Run("notifies_listener_with_before_and_after", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		listener := &recordingListener{}
		s.SetListener(listener)

		created, err := store.Upsert(s, models.CollectionIncidents, "B. Jansen", testutil.MakeIncident())
		testutil.AssertNoError(t, err)

		update := *created
		update.Status = models.IncidentStatusInProgress
		_, err = store.Upsert(s, models.CollectionIncidents, "B. Jansen", &update)
		testutil.AssertNoError(t, err)

		if len(listener.changes) != 2 {
			t.Fatalf("expected 2 change notifications, got %d", len(listener.changes))
		}

		create := listener.changes[0]
		if create.Action != models.AuditActionCreate || create.Before != nil || create.After == nil {
			t.Errorf("unexpected create change: %+v", create)
		}
		if create.Actor != "B. Jansen" {
			t.Errorf("expected actor B. Jansen, got %s", create.Actor)
		}

		upd := listener.changes[1]
		if upd.Action != models.AuditActionUpdate {
			t.Errorf("expected update action, got %s", upd.Action)
		}
		before, ok := upd.Before.(*models.Incident)
		if !ok || before.Status != models.IncidentStatusOpen {
			t.Errorf("expected before state with open status, got %+v", upd.Before)
		}
	})

	t.Run("empty_actor_becomes_system_sentinel", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		listener := &recordingListener{}
		s.SetListener(listener)

		_, err := store.Upsert(s, models.CollectionIncidents, "", testutil.MakeIncident())
		testutil.AssertNoError(t, err)

		if listener.changes[0].Actor != models.SystemUser {
			t.Errorf("expected %q, got %q", models.SystemUser, listener.changes[0].Actor)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes_and_notifies", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)
		listener := &recordingListener{}
		s.SetListener(listener)

		created, err := store.Upsert(s, models.CollectionIncidents, "", testutil.MakeIncident())
		testutil.AssertNoError(t, err)

		removed, err := store.Remove[*models.Incident](s, models.CollectionIncidents, "C. Bakker", created.ID)
		testutil.AssertNoError(t, err)
		if !removed {
			t.Fatal("expected removal to report true")
		}

		incidents := store.Load[*models.Incident](s, models.CollectionIncidents)
		if len(incidents) != 0 {
			t.Errorf("expected empty collection, got %d", len(incidents))
		}

		last := listener.changes[len(listener.changes)-1]
		if last.Action != models.AuditActionDelete || last.Before == nil || last.After != nil {
			t.Errorf("unexpected delete change: %+v", last)
		}
	})

	t.Run("missing_id_reports_false", func(t *testing.T) {
		s, db := testutil.SetupTestStore(t)
		defer testutil.TeardownTestDB(t, db)

		removed, err := store.Remove[*models.Incident](s, models.CollectionIncidents, "", "nope")
		testutil.AssertNoError(t, err)
		if removed {
			t.Error("expected false for unknown id")
		}
	})
}

func TestSaveAll(t *testing.T) {
	s, db := testutil.SetupTestStore(t)
	defer testutil.TeardownTestDB(t, db)

	batch := []*models.Resident{testutil.MakeResident(), testutil.MakeResident(), testutil.MakeResident()}
	for i, r := range batch {
		r.ID = string(rune('a' + i))
	}
	testutil.AssertNoError(t, store.SaveAll(s, models.CollectionResidents, batch))

	// A second save fully replaces the first.
	testutil.AssertNoError(t, store.SaveAll(s, models.CollectionResidents, batch[:1]))

	residents := store.Load[*models.Resident](s, models.CollectionResidents)
	if len(residents) != 1 {
		t.Fatalf("expected 1 resident after replace, got %d", len(residents))
	}
	if residents[0].ID != "a" {
		t.Errorf("unexpected surviving record: %+v", residents[0])
	}
}
