package services

import (
	"strings"

	apperrors "refutree/internal/errors"
	"refutree/internal/filter"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/store"
)

// labelService handles label definitions. System labels ship with the seed
// data and are read-only.
type labelService struct {
	store *store.Store
}

// NewLabelService creates a new LabelServicer.
func NewLabelService(s *store.Store) LabelServicer {
	return &labelService{store: s}
}

// Create adds a user-defined label. Names must be unique regardless of case;
// a duplicate is rejected without touching the collection.
func (s *labelService) Create(actor string, label *models.Label) (*models.Label, error) {
	if label.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "label name is required")
	}
	if s.nameTaken(label.Name, "") {
		return nil, apperrors.ErrDuplicateLabel
	}

	label.ID = ""
	label.System = false
	if label.Category == "" {
		label.Category = "algemeen"
	}

	return store.Upsert(s.store, models.CollectionLabels, actor, label)
}

// List returns a filtered view of the labels collection, sorted by name.
func (s *labelService) List(f LabelFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Label], error) {
	labels := store.Load[*models.Label](s.store, models.CollectionLabels)

	view := filter.Apply(labels, filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"name", "category"},
		Equals:       map[string]string{"category": f.Category},
		Sort:         &filter.Sort{Field: "name", Order: filter.Asc},
	})

	result := pagination.Page(view, page)
	return &result, nil
}

// Get retrieves a label by id.
func (s *labelService) Get(id string) (*models.Label, error) {
	for _, label := range store.Load[*models.Label](s.store, models.CollectionLabels) {
		if label.ID == id {
			return label, nil
		}
	}
	return nil, apperrors.ErrLabelNotFound
}

// Update changes a user-defined label. System labels are immutable.
func (s *labelService) Update(actor, id string, label *models.Label) (*models.Label, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if existing.System {
		return nil, apperrors.ErrSystemLabelImmutable
	}
	if label.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "label name is required")
	}
	if s.nameTaken(label.Name, id) {
		return nil, apperrors.ErrDuplicateLabel
	}

	updated := *existing
	updated.Name = label.Name
	updated.Color = label.Color
	updated.Category = label.Category
	updated.Icon = label.Icon

	return store.Upsert(s.store, models.CollectionLabels, actor, &updated)
}

// Delete removes a user-defined label. System labels are undeletable.
func (s *labelService) Delete(actor, id string) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if existing.System {
		return apperrors.ErrSystemLabelImmutable
	}

	removed, err := store.Remove[*models.Label](s.store, models.CollectionLabels, actor, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrLabelNotFound
	}
	return nil
}

// nameTaken reports whether another label already uses the name,
// case-insensitively.
func (s *labelService) nameTaken(name, excludeID string) bool {
	for _, label := range store.Load[*models.Label](s.store, models.CollectionLabels) {
		if label.ID != excludeID && strings.EqualFold(label.Name, name) {
			return true
		}
	}
	return false
}
