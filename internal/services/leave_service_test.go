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

func setupLeaveService(t *testing.T) (LeaveServicer, ResidentServicer, *store.Store, func()) {
	t.Helper()
	st, db := testutil.SetupTestStore(t)
	residents := NewResidentService(st)
	notifications := NewNotificationService(st)
	return NewLeaveService(st, residents, notifications), residents, st, func() {
		testutil.TeardownTestDB(t, db)
	}
}

func TestSubmitLeaveRequest(t *testing.T) {
	t.Run("starts_pending_with_resident_name", func(t *testing.T) {
		svc, residents, _, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		request := testutil.MakeLeaveRequest(resident.ID, "")
		request.Status = models.LeaveStatusApproved
		created, err := svc.Submit("A. de Vries", request)
		testutil.AssertNoError(t, err)

		if created.Status != models.LeaveStatusPending {
			t.Errorf("expected status In behandeling, got %s", created.Status)
		}
		if created.ResidentName != resident.Name {
			t.Errorf("expected resident name %s, got %s", resident.Name, created.ResidentName)
		}
		if created.SubmittedAt.IsZero() {
			t.Error("expected submitted_at to be set")
		}
	})

	t.Run("unknown_resident", func(t *testing.T) {
		svc, _, _, teardown := setupLeaveService(t)
		defer teardown()

		_, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest("nonexistent", ""))
		testutil.AssertAppError(t, err, "RESIDENT_NOT_FOUND")
	})

	t.Run("end_before_start", func(t *testing.T) {
		svc, residents, _, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		request := testutil.MakeLeaveRequest(resident.ID, "")
		request.StartDate = time.Now().AddDate(0, 0, 5)
		request.EndDate = time.Now().AddDate(0, 0, 2)
		_, err = svc.Submit("A. de Vries", request)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDecideLeaveRequest(t *testing.T) {
	t.Run("approve_records_decision", func(t *testing.T) {
		svc, residents, st, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)
		created, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
		testutil.AssertNoError(t, err)

		approved, err := svc.Approve("B. Jansen", created.ID, "Akkoord voor het weekend")
		testutil.AssertNoError(t, err)

		if approved.Status != models.LeaveStatusApproved {
			t.Errorf("expected status Goedgekeurd, got %s", approved.Status)
		}
		if approved.DecidedBy != "B. Jansen" {
			t.Errorf("expected decided_by B. Jansen, got %s", approved.DecidedBy)
		}
		if approved.DecidedAt == nil {
			t.Error("expected decided_at to be set")
		}

		notifications := store.Load[*models.Notification](st, models.CollectionNotifications)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if !strings.Contains(notifications[0].Message, "goedgekeurd") {
			t.Errorf("unexpected notification message: %s", notifications[0].Message)
		}
	})

	t.Run("reject_warns_on_dashboard", func(t *testing.T) {
		svc, residents, st, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)
		created, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
		testutil.AssertNoError(t, err)

		rejected, err := svc.Reject("B. Jansen", created.ID, "Lopende procedure")
		testutil.AssertNoError(t, err)

		if rejected.Status != models.LeaveStatusRejected {
			t.Errorf("expected status Afgewezen, got %s", rejected.Status)
		}

		notifications := store.Load[*models.Notification](st, models.CollectionNotifications)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if notifications[0].Type != models.NotificationTypeWarning {
			t.Errorf("expected warning notification, got %s", notifications[0].Type)
		}
	})

	t.Run("decision_is_terminal", func(t *testing.T) {
		svc, residents, _, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)
		created, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
		testutil.AssertNoError(t, err)

		_, err = svc.Approve("B. Jansen", created.ID, "")
		testutil.AssertNoError(t, err)

		_, err = svc.Reject("B. Jansen", created.ID, "")
		testutil.AssertAppError(t, err, "INVALID_TRANSITION")
	})

	t.Run("not_found", func(t *testing.T) {
		svc, _, _, teardown := setupLeaveService(t)
		defer teardown()

		_, err := svc.Approve("B. Jansen", "nonexistent", "")
		testutil.AssertAppError(t, err, "LEAVE_REQUEST_NOT_FOUND")
	})
}

func TestListLeaveRequests(t *testing.T) {
	t.Run("filters_by_status", func(t *testing.T) {
		svc, residents, _, teardown := setupLeaveService(t)
		defer teardown()

		resident, err := residents.Create("A. de Vries", testutil.MakeResident())
		testutil.AssertNoError(t, err)

		first, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
		testutil.AssertNoError(t, err)
		_, err = svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
		testutil.AssertNoError(t, err)
		_, err = svc.Approve("B. Jansen", first.ID, "")
		testutil.AssertNoError(t, err)

		page, err := svc.List(LeaveFilter{Status: string(models.LeaveStatusPending)}, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 1 {
			t.Errorf("expected 1 pending request, got %d", len(page.Data))
		}
	})
}

func TestLeaveStats(t *testing.T) {
	svc, residents, _, teardown := setupLeaveService(t)
	defer teardown()

	resident, err := residents.Create("A. de Vries", testutil.MakeResident())
	testutil.AssertNoError(t, err)

	first, err := svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
	testutil.AssertNoError(t, err)
	_, err = svc.Submit("A. de Vries", testutil.MakeLeaveRequest(resident.ID, ""))
	testutil.AssertNoError(t, err)
	_, err = svc.Approve("B. Jansen", first.ID, "")
	testutil.AssertNoError(t, err)

	counts := svc.Stats()

	if counts[string(models.LeaveStatusApproved)] != 1 {
		t.Errorf("expected 1 approved request, got %d", counts[string(models.LeaveStatusApproved)])
	}
	if counts[string(models.LeaveStatusPending)] != 1 {
		t.Errorf("expected 1 pending request, got %d", counts[string(models.LeaveStatusPending)])
	}
}
