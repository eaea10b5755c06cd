package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func (app *testApp) submitLeave(t *testing.T, token, residentID string) string {
	t.Helper()
	body := fmt.Sprintf(`{"resident_id":%q,"start_date":"2026-10-10T00:00:00Z","end_date":"2026-10-12T00:00:00Z","destination":"Utrecht","reason":"Familiebezoek"}`, residentID)
	rec := app.request("POST", "/api/v1/leave-requests", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit leave failed: %d %s", rec.Code, rec.Body.String())
	}
	request := parseJSON(t, rec)["leave_request"].(map[string]interface{})
	if request["status"] != "In behandeling" {
		t.Fatalf("expected pending status, got %v", request["status"])
	}
	return request["id"].(string)
}

func TestLeaveFlow_SubmitAndApprove(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "begeleider@opvang.nl", "wachtwoord123")
	residentID := app.createResident(t, token, "Amir Hassan")

	id := app.submitLeave(t, token, residentID)

	// Approve with a note
	rec := app.request("POST", "/api/v1/leave-requests/"+id+"/approve", `{"notes":"Telefonisch bereikbaar blijven."}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve failed: %d %s", rec.Code, rec.Body.String())
	}
	approved := parseJSON(t, rec)["leave_request"].(map[string]interface{})
	if approved["status"] != "Goedgekeurd" {
		t.Errorf("expected Goedgekeurd, got %v", approved["status"])
	}
	if approved["decided_by"] != "Sanne Bakker" {
		t.Errorf("expected decider from token, got %v", approved["decided_by"])
	}

	// The decision is final
	rec = app.request("POST", "/api/v1/leave-requests/"+id+"/reject", "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for decided request, got %d: %s", rec.Code, rec.Body.String())
	}

	// The decision produced a notification
	rec = app.request("GET", "/api/v1/notifications?unread=true", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("notifications failed: %d", rec.Code)
	}
	notifications := parseJSON(t, rec)
	if notifications["total_items"].(float64) < 1 {
		t.Fatal("expected a notification for the decision")
	}
	first := notifications["data"].([]interface{})[0].(map[string]interface{})
	notifID := first["id"].(string)

	// Mark it read
	rec = app.request("POST", "/api/v1/notifications/"+notifID+"/read", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/notifications?unread=true", "", token)
	if parseJSON(t, rec)["total_items"].(float64) != 0 {
		t.Error("expected no unread notifications after marking read")
	}
}

func TestLeaveFlow_RejectAndFilter(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "begeleider@opvang.nl", "wachtwoord123")
	residentID := app.createResident(t, token, "Fatima Al-Rashid")

	id := app.submitLeave(t, token, residentID)
	app.submitLeave(t, token, residentID)

	rec := app.request("POST", "/api/v1/leave-requests/"+id+"/reject", `{"notes":"Lopende procedure."}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("reject failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/leave-requests?status=Afgewezen", "", token)
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 rejected request in the filtered list")
	}

	rec = app.request("GET", "/api/v1/leave-requests/stats", "", token)
	statsObj := parseJSON(t, rec)["stats"].(map[string]interface{})
	if statsObj["In behandeling"].(float64) != 1 {
		t.Errorf("expected 1 pending request in stats, got %v", statsObj["In behandeling"])
	}
}

func TestLeaveFlow_UnknownResident(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "begeleider@opvang.nl", "wachtwoord123")

	body := `{"resident_id":"onbekend","start_date":"2026-10-10T00:00:00Z","end_date":"2026-10-12T00:00:00Z"}`
	rec := app.request("POST", "/api/v1/leave-requests", body, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown resident, got %d: %s", rec.Code, rec.Body.String())
	}
}
