package services

import (
	"testing"
	"time"

	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/testutil"
)

func setupDocumentService(t *testing.T) (DocumentServicer, ResidentServicer, func()) {
	t.Helper()
	st, db := testutil.SetupTestStore(t)
	residents := NewResidentService(st)
	return NewDocumentService(st, residents), residents, func() {
		testutil.TeardownTestDB(t, db)
	}
}

func TestRegisterDocument(t *testing.T) {
	t.Run("starts_pending", func(t *testing.T) {
		svc, residents, teardown := setupDocumentService(t)
		defer teardown()

		resident, err := residents.Create("Balie", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		document := testutil.MakeDocument(resident.ID)
		document.Status = models.DocumentStatusVerified
		created, err := svc.Register("Balie", document)
		testutil.AssertNoError(t, err)

		if created.Status != models.DocumentStatusPending {
			t.Errorf("expected status pending, got %s", created.Status)
		}
		if created.VerifiedAt != nil {
			t.Error("expected verified_at to be nil on registration")
		}
	})

	t.Run("unknown_resident", func(t *testing.T) {
		svc, _, teardown := setupDocumentService(t)
		defer teardown()

		_, err := svc.Register("Balie", testutil.MakeDocument("nonexistent"))
		testutil.AssertAppError(t, err, "RESIDENT_NOT_FOUND")
	})

	t.Run("missing_name", func(t *testing.T) {
		svc, _, teardown := setupDocumentService(t)
		defer teardown()

		document := testutil.MakeDocument("")
		document.Name = ""
		_, err := svc.Register("Balie", document)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateDocumentStatus(t *testing.T) {
	t.Run("verifying_records_verifier", func(t *testing.T) {
		svc, _, teardown := setupDocumentService(t)
		defer teardown()

		created, err := svc.Register("Balie", testutil.MakeDocument(""))
		testutil.AssertNoError(t, err)

		verified, err := svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusVerified, "")
		testutil.AssertNoError(t, err)

		if verified.Status != models.DocumentStatusVerified {
			t.Errorf("expected status verified, got %s", verified.Status)
		}
		if verified.VerifiedBy != "B. Jansen" {
			t.Errorf("expected verified_by B. Jansen, got %s", verified.VerifiedBy)
		}
		if verified.VerifiedAt == nil {
			t.Error("expected verified_at to be set")
		}
	})

	t.Run("pending_cannot_expire", func(t *testing.T) {
		svc, _, teardown := setupDocumentService(t)
		defer teardown()

		created, err := svc.Register("Balie", testutil.MakeDocument(""))
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusExpired, "")
		testutil.AssertAppError(t, err, "INVALID_TRANSITION")
	})

	t.Run("rejected_is_terminal", func(t *testing.T) {
		svc, _, teardown := setupDocumentService(t)
		defer teardown()

		created, err := svc.Register("Balie", testutil.MakeDocument(""))
		testutil.AssertNoError(t, err)
		_, err = svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusRejected, "Onleesbaar")
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusVerified, "")
		testutil.AssertAppError(t, err, "INVALID_TRANSITION")
	})
}

func TestExpireOverdueDocuments(t *testing.T) {
	svc, _, teardown := setupDocumentService(t)
	defer teardown()

	overdue := testutil.MakeDocument("")
	past := time.Now().AddDate(0, -1, 0)
	overdue.ExpiryDate = &past
	created, err := svc.Register("Balie", overdue)
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusVerified, "")
	testutil.AssertNoError(t, err)

	current := testutil.MakeDocument("")
	future := time.Now().AddDate(1, 0, 0)
	current.ExpiryDate = &future
	kept, err := svc.Register("Balie", current)
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateStatus("B. Jansen", kept.ID, models.DocumentStatusVerified, "")
	testutil.AssertNoError(t, err)

	expired, err := svc.ExpireOverdue("")
	testutil.AssertNoError(t, err)

	if expired != 1 {
		t.Errorf("expected 1 expired document, got %d", expired)
	}
	got, err := svc.Get(created.ID)
	testutil.AssertNoError(t, err)
	if got.Status != models.DocumentStatusExpired {
		t.Errorf("expected overdue document to be expired, got %s", got.Status)
	}
	untouched, err := svc.Get(kept.ID)
	testutil.AssertNoError(t, err)
	if untouched.Status != models.DocumentStatusVerified {
		t.Errorf("expected current document to stay verified, got %s", untouched.Status)
	}
}

func TestDocumentStats(t *testing.T) {
	svc, _, teardown := setupDocumentService(t)
	defer teardown()

	soon := testutil.MakeDocument("")
	in2Weeks := time.Now().AddDate(0, 0, 14)
	soon.ExpiryDate = &in2Weeks
	created, err := svc.Register("Balie", soon)
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateStatus("B. Jansen", created.ID, models.DocumentStatusVerified, "")
	testutil.AssertNoError(t, err)

	_, err = svc.Register("Balie", testutil.MakeDocument(""))
	testutil.AssertNoError(t, err)

	stats := svc.Stats()

	if stats.Total != 2 {
		t.Errorf("expected total 2, got %d", stats.Total)
	}
	if stats.ByStatus["verified"] != 1 || stats.ByStatus["pending"] != 1 {
		t.Errorf("unexpected status breakdown: %v", stats.ByStatus)
	}
	if stats.ExpiringSoon != 1 {
		t.Errorf("expected 1 document expiring soon, got %d", stats.ExpiringSoon)
	}
}

func TestListDocuments(t *testing.T) {
	svc, residents, teardown := setupDocumentService(t)
	defer teardown()

	resident, err := residents.Create("Balie", testutil.MakeResident())
	testutil.AssertNoError(t, err)
	linked, err := svc.Register("Balie", testutil.MakeDocument(resident.ID))
	testutil.AssertNoError(t, err)
	_, err = svc.Register("Balie", testutil.MakeDocument(""))
	testutil.AssertNoError(t, err)

	page, err := svc.List(DocumentFilter{ResidentID: resident.ID}, pagination.PageRequest{Page: 1, PageSize: 10})
	testutil.AssertNoError(t, err)

	if len(page.Data) != 1 || page.Data[0].ID != linked.ID {
		t.Errorf("expected only the resident's document")
	}
}
