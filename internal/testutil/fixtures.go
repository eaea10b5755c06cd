package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"refutree/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active caseworker with a hashed password and a
// unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("wachtwoord123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Email:     fmt.Sprintf("medewerker%d@test.nl", n),
		Password:  string(hash),
		FirstName: "Test",
		LastName:  fmt.Sprintf("Medewerker %d", n),
		Role:      models.UserRoleCaseworker,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// MakeResident returns an unsaved active resident with a unique name.
func MakeResident() *models.Resident {
	n := nextID()
	return &models.Resident{
		Name:        fmt.Sprintf("Bewoner %d", n),
		Nationality: "Syrisch",
		Status:      models.ResidentStatusActive,
		Room:        fmt.Sprintf("%d", 100+n),
		Priority:    models.PriorityMedium,
		CaseWorker:  "A. de Vries",
		ArrivalDate: time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local),
	}
}

// MakeIncident returns an unsaved open incident with a unique title.
func MakeIncident() *models.Incident {
	n := nextID()
	return &models.Incident{
		Type:        "Veiligheid",
		Title:       fmt.Sprintf("Incident %d", n),
		Description: "Testmelding",
		Priority:    models.PriorityHigh,
		Status:      models.IncidentStatusOpen,
		ReportedBy:  "Nachtdienst",
		ReportedAt:  time.Now(),
	}
}

// MakeLeaveRequest returns an unsaved pending leave request for the resident.
func MakeLeaveRequest(residentID, residentName string) *models.LeaveRequest {
	return &models.LeaveRequest{
		ResidentID:   residentID,
		ResidentName: residentName,
		StartDate:    time.Now().AddDate(0, 0, 1),
		EndDate:      time.Now().AddDate(0, 0, 3),
		Destination:  "Utrecht",
		Reason:       "Familiebezoek",
		Status:       models.LeaveStatusPending,
		SubmittedAt:  time.Now(),
	}
}

// MakeDocument returns an unsaved pending document for the resident.
func MakeDocument(residentID string) *models.Document {
	n := nextID()
	return &models.Document{
		ResidentID: residentID,
		Name:       fmt.Sprintf("document-%d.pdf", n),
		Type:       "ID-bewijs",
		Status:     models.DocumentStatusPending,
		UploadedBy: "Balie",
		UploadedAt: time.Now(),
	}
}

// MakeLabel returns an unsaved user-defined label with a unique name.
func MakeLabel() *models.Label {
	n := nextID()
	return &models.Label{
		Name:     fmt.Sprintf("Label %d", n),
		Color:    "#3B82F6",
		Category: "algemeen",
	}
}
