// Package seed ships the fixed datasets written into empty collections on
// first load: the built-in system labels and an optional demo dataset for
// evaluation environments.
package seed

import (
	"time"

	"refutree/internal/models"
	"refutree/internal/store"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// SystemLabels returns the built-in label set. These labels cannot be edited
// or deleted; their ids are stable so resident records can reference them
// across installations.
func SystemLabels() []*models.Label {
	base := func(id string) models.Base {
		return models.Base{ID: id, CreatedAt: date(2025, time.January, 1), UpdatedAt: date(2025, time.January, 1)}
	}
	return []*models.Label{
		{Base: base("label-crisis"), Name: "Crisis", Color: "#DC2626", Category: "urgentie", Icon: "alert-triangle", System: true},
		{Base: base("label-medisch"), Name: "Medisch", Color: "#2563EB", Category: "zorg", Icon: "heart-pulse", System: true},
		{Base: base("label-minderjarig"), Name: "Minderjarig", Color: "#7C3AED", Category: "doelgroep", Icon: "user", System: true},
		{Base: base("label-gezin"), Name: "Gezin", Color: "#059669", Category: "doelgroep", Icon: "users", System: true},
		{Base: base("label-vertrek"), Name: "Vertrek gepland", Color: "#D97706", Category: "status", Icon: "calendar", System: true},
	}
}

// Register installs the seed datasets on the store. System labels are always
// registered; the demo dataset only when requested.
func Register(s *store.Store, demoData bool) {
	labels := SystemLabels()
	if demoData {
		labels = append(labels, demoLabels()...)
		s.RegisterSeed(models.CollectionResidents, demoResidents())
		s.RegisterSeed(models.CollectionIncidents, demoIncidents())
		s.RegisterSeed(models.CollectionLeaveRequests, demoLeaveRequests())
		s.RegisterSeed(models.CollectionDocuments, demoDocuments())
	}
	s.RegisterSeed(models.CollectionLabels, labels)
}

func demoLabels() []*models.Label {
	return []*models.Label{
		{
			Base:     models.Base{ID: "label-taalles", CreatedAt: date(2025, time.March, 10), UpdatedAt: date(2025, time.March, 10)},
			Name:     "Taalles",
			Color:    "#0891B2",
			Category: "activiteiten",
		},
	}
}

func demoResidents() []*models.Resident {
	return []*models.Resident{
		{
			Base:        models.Base{ID: "resident-demo-1", CreatedAt: date(2025, time.November, 3), UpdatedAt: date(2025, time.November, 3)},
			Name:        "Amir Hassan",
			Nationality: "Syrisch",
			Status:      models.ResidentStatusActive,
			Room:        "1.04",
			Priority:    models.PriorityMedium,
			CaseWorker:  "S. Bakker",
			ArrivalDate: date(2025, time.November, 3),
			Contact:     &models.ContactInfo{Phone: "06-11223344"},
			LabelIDs:    []string{"label-taalles"},
		},
		{
			Base:        models.Base{ID: "resident-demo-2", CreatedAt: date(2025, time.December, 12), UpdatedAt: date(2026, time.January, 8)},
			Name:        "Fatima Al-Rashid",
			Nationality: "Iraaks",
			Status:      models.ResidentStatusActive,
			Room:        "2.11",
			Priority:    models.PriorityHigh,
			CaseWorker:  "J. de Groot",
			ArrivalDate: date(2025, time.December, 12),
			Medical:     &models.MedicalInfo{Allergies: []string{"penicilline"}},
			LabelIDs:    []string{"label-medisch", "label-gezin"},
		},
		{
			Base:        models.Base{ID: "resident-demo-3", CreatedAt: date(2025, time.August, 20), UpdatedAt: date(2026, time.February, 1)},
			Name:        "Tesfay Gebremichael",
			Nationality: "Eritrees",
			Status:      models.ResidentStatusArchived,
			Room:        "",
			Priority:    models.PriorityLow,
			CaseWorker:  "S. Bakker",
			ArrivalDate: date(2025, time.August, 20),
			Notes:       "Doorgestroomd naar eigen woning.",
		},
	}
}

func demoIncidents() []*models.Incident {
	resolved := date(2026, time.January, 16)
	return []*models.Incident{
		{
			Base:        models.Base{ID: "incident-demo-1", CreatedAt: date(2026, time.January, 15), UpdatedAt: date(2026, time.January, 16)},
			Type:        "Veiligheid",
			Title:       "Rookmelder afgegaan in vleugel B",
			Description: "Rookmelder geactiveerd door koken op de kamer. Geen schade.",
			Priority:    models.PriorityHigh,
			Status:      models.IncidentStatusResolved,
			ResidentIDs: []string{"resident-demo-1"},
			Location:    "Vleugel B, kamer 1.04",
			ReportedBy:  "Nachtdienst",
			ReportedAt:  date(2026, time.January, 15),
			ResolvedAt:  &resolved,
		},
		{
			Base:        models.Base{ID: "incident-demo-2", CreatedAt: date(2026, time.February, 2), UpdatedAt: date(2026, time.February, 2)},
			Type:        "Medisch",
			Title:       "Valincident in trappenhuis",
			Description: "Bewoner gevallen op de trap, huisarts ingeschakeld.",
			Priority:    models.PriorityMedium,
			Status:      models.IncidentStatusOpen,
			ResidentIDs: []string{"resident-demo-2"},
			Location:    "Trappenhuis west",
			ReportedBy:  "J. de Groot",
			ReportedAt:  date(2026, time.February, 2),
		},
	}
}

func demoLeaveRequests() []*models.LeaveRequest {
	decided := date(2026, time.January, 21)
	return []*models.LeaveRequest{
		{
			Base:         models.Base{ID: "leave-demo-1", CreatedAt: date(2026, time.January, 20), UpdatedAt: date(2026, time.January, 21)},
			ResidentID:   "resident-demo-1",
			ResidentName: "Amir Hassan",
			StartDate:    date(2026, time.February, 10),
			EndDate:      date(2026, time.February, 12),
			Destination:  "Utrecht",
			Reason:       "Familiebezoek",
			Status:       models.LeaveStatusApproved,
			SubmittedAt:  date(2026, time.January, 20),
			DecidedBy:    "S. Bakker",
			DecidedAt:    &decided,
		},
		{
			Base:         models.Base{ID: "leave-demo-2", CreatedAt: date(2026, time.February, 5), UpdatedAt: date(2026, time.February, 5)},
			ResidentID:   "resident-demo-2",
			ResidentName: "Fatima Al-Rashid",
			StartDate:    date(2026, time.March, 1),
			EndDate:      date(2026, time.March, 3),
			Destination:  "Den Haag",
			Reason:       "Afspraak advocaat",
			Status:       models.LeaveStatusPending,
			SubmittedAt:  date(2026, time.February, 5),
		},
	}
}

func demoDocuments() []*models.Document {
	verified := date(2025, time.November, 10)
	return []*models.Document{
		{
			Base:       models.Base{ID: "document-demo-1", CreatedAt: date(2025, time.November, 4), UpdatedAt: date(2025, time.November, 10)},
			ResidentID: "resident-demo-1",
			Name:       "Identiteitsbewijs",
			Type:       "identiteit",
			Status:     models.DocumentStatusVerified,
			ExpiryDate: datePtr(2027, time.November, 1),
			UploadedBy: "S. Bakker",
			UploadedAt: date(2025, time.November, 4),
			VerifiedBy: "J. de Groot",
			VerifiedAt: &verified,
		},
		{
			Base:       models.Base{ID: "document-demo-2", CreatedAt: date(2026, time.January, 9), UpdatedAt: date(2026, time.January, 9)},
			ResidentID: "resident-demo-2",
			Name:       "Medische verklaring",
			Type:       "medisch",
			Status:     models.DocumentStatusPending,
			UploadedBy: "J. de Groot",
			UploadedAt: date(2026, time.January, 9),
		},
	}
}
