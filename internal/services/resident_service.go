package services

import (
	apperrors "refutree/internal/errors"
	"refutree/internal/filter"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/stats"
	"refutree/internal/store"
)

// residentService handles resident case records.
type residentService struct {
	store *store.Store
}

// NewResidentService creates a new ResidentServicer.
func NewResidentService(s *store.Store) ResidentServicer {
	return &residentService{store: s}
}

// Create registers a new resident from intake.
func (s *residentService) Create(actor string, resident *models.Resident) (*models.Resident, error) {
	if resident.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resident name is required")
	}
	if resident.Status == "" {
		resident.Status = models.ResidentStatusActive
	}
	if resident.Priority == "" {
		resident.Priority = models.PriorityMedium
	}
	resident.ID = ""

	return store.Upsert(s.store, models.CollectionResidents, actor, resident)
}

// List returns a filtered, paginated view of the residents collection.
func (s *residentService) List(f ResidentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Resident], error) {
	residents := store.Load[*models.Resident](s.store, models.CollectionResidents)

	order := filter.Asc
	if f.SortDesc {
		order = filter.Desc
	}
	view := filter.Apply(residents, filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"name", "nationality", "room", "case_worker"},
		Equals: map[string]string{
			"status":   f.Status,
			"priority": f.Priority,
		},
		Sort: &filter.Sort{Field: "name", Order: order},
	})

	// Label membership is a list field, outside the filter engine's
	// field-equality model.
	if f.LabelID != "" && f.LabelID != "all" {
		matched := make([]*models.Resident, 0, len(view))
		for _, r := range view {
			for _, id := range r.LabelIDs {
				if id == f.LabelID {
					matched = append(matched, r)
					break
				}
			}
		}
		view = matched
	}

	result := pagination.Page(view, page)
	return &result, nil
}

// Get retrieves a resident by id.
func (s *residentService) Get(id string) (*models.Resident, error) {
	for _, r := range store.Load[*models.Resident](s.store, models.CollectionResidents) {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.ErrResidentNotFound
}

// Update replaces a resident's editable fields. Identity, lifecycle status,
// and bookkeeping fields are preserved from the stored record.
func (s *residentService) Update(actor, id string, resident *models.Resident) (*models.Resident, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if resident.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resident name is required")
	}

	updated := *existing
	updated.Name = resident.Name
	updated.Nationality = resident.Nationality
	updated.Room = resident.Room
	updated.Priority = resident.Priority
	updated.CaseWorker = resident.CaseWorker
	updated.Contact = resident.Contact
	updated.Medical = resident.Medical
	updated.LabelIDs = resident.LabelIDs
	updated.Notes = resident.Notes
	if !resident.ArrivalDate.IsZero() {
		updated.ArrivalDate = resident.ArrivalDate
	}

	return store.Upsert(s.store, models.CollectionResidents, actor, &updated)
}

// Archive marks a resident as departed. Residents are never hard-deleted.
func (s *residentService) Archive(actor, id string) (*models.Resident, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.ResidentStatusArchived {
		return existing, nil
	}

	updated := *existing
	updated.Status = models.ResidentStatusArchived
	return store.Upsert(s.store, models.CollectionResidents, actor, &updated)
}

// Stats summarizes the residents collection.
func (s *residentService) Stats() *ResidentStats {
	residents := store.Load[*models.Resident](s.store, models.CollectionResidents)
	return &ResidentStats{
		Total: len(residents),
		ByStatus: stats.GroupCount(residents, func(r *models.Resident) string {
			return string(r.Status)
		}),
		ByPriority: stats.GroupCount(residents, func(r *models.Resident) string {
			return string(r.Priority)
		}),
	}
}
