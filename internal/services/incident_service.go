package services

import (
	"time"

	apperrors "refutree/internal/errors"
	"refutree/internal/filter"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/stats"
	"refutree/internal/store"
)

// incidentService handles incident reports and their workflow.
type incidentService struct {
	store *store.Store
}

// NewIncidentService creates a new IncidentServicer.
func NewIncidentService(s *store.Store) IncidentServicer {
	return &incidentService{store: s}
}

// Report registers a new incident. Every report starts open with a reporting
// timestamp; the submitting user is the reporter unless one is named.
func (s *incidentService) Report(actor string, incident *models.Incident) (*models.Incident, error) {
	if incident.Type == "" || incident.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "incident type and title are required")
	}
	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}

	incident.ID = ""
	incident.Status = models.IncidentStatusOpen
	if incident.ReportedAt.IsZero() {
		incident.ReportedAt = time.Now()
	}
	if incident.ReportedBy == "" {
		incident.ReportedBy = actor
	}
	incident.ResolvedAt = nil

	return store.Upsert(s.store, models.CollectionIncidents, actor, incident)
}

// List returns a filtered, paginated view of the incidents collection,
// newest first by default.
func (s *incidentService) List(f IncidentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Incident], error) {
	incidents := store.Load[*models.Incident](s.store, models.CollectionIncidents)

	// Newest first unless the caller asks for chronological order.
	order := filter.Desc
	if f.SortAsc {
		order = filter.Asc
	}
	criteria := filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"title", "description", "location", "reported_by"},
		Equals: map[string]string{
			"status":   f.Status,
			"priority": f.Priority,
			"type":     f.Type,
		},
		Sort: &filter.Sort{Field: "reported_at", Order: order},
	}
	if f.From != nil || f.To != nil {
		criteria.DateRange = &filter.DateRange{Field: "reported_at", From: f.From, To: f.To}
	}

	view := filter.Apply(incidents, criteria)
	result := pagination.Page(view, page)
	return &result, nil
}

// Get retrieves an incident by id.
func (s *incidentService) Get(id string) (*models.Incident, error) {
	for _, inc := range store.Load[*models.Incident](s.store, models.CollectionIncidents) {
		if inc.ID == id {
			return inc, nil
		}
	}
	return nil, apperrors.ErrIncidentNotFound
}

// UpdateStatus moves an incident along its workflow. Transitions only move
// forward; anything else is rejected.
func (s *incidentService) UpdateStatus(actor, id string, next models.IncidentStatus, followUpActions string) (*models.Incident, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !existing.Status.CanTransitionTo(next) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"cannot change incident status from "+string(existing.Status)+" to "+string(next))
	}

	updated := *existing
	updated.Status = next
	if followUpActions != "" {
		updated.FollowUpActions = followUpActions
	}
	if next == models.IncidentStatusResolved {
		now := time.Now()
		updated.ResolvedAt = &now
	}

	return store.Upsert(s.store, models.CollectionIncidents, actor, &updated)
}

// Delete removes an incident permanently.
func (s *incidentService) Delete(actor, id string) error {
	removed, err := store.Remove[*models.Incident](s.store, models.CollectionIncidents, actor, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrIncidentNotFound
	}
	return nil
}

// Stats summarizes the incidents collection for the dashboard cards.
func (s *incidentService) Stats() *IncidentStats {
	incidents := store.Load[*models.Incident](s.store, models.CollectionIncidents)
	return &IncidentStats{
		Total: len(incidents),
		ByStatus: stats.GroupCount(incidents, func(i *models.Incident) string {
			return string(i.Status)
		}),
		ByPriority: stats.GroupCount(incidents, func(i *models.Incident) string {
			return string(i.Priority)
		}),
		Recency: stats.BucketByRecency(incidents, func(i *models.Incident) time.Time {
			return i.ReportedAt
		}, time.Now()),
	}
}
