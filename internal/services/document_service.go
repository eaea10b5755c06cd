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

// expiringSoonWindow is how far ahead the dashboard warns about documents
// that are about to expire.
const expiringSoonWindow = 30 * 24 * time.Hour

// documentService handles document metadata and verification.
type documentService struct {
	store     *store.Store
	residents ResidentServicer
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(s *store.Store, residents ResidentServicer) DocumentServicer {
	return &documentService{store: s, residents: residents}
}

// Register records metadata for an uploaded document. The file itself is not
// stored here.
func (s *documentService) Register(actor string, document *models.Document) (*models.Document, error) {
	if document.Name == "" || document.Type == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document name and type are required")
	}
	if document.ResidentID != "" {
		if _, err := s.residents.Get(document.ResidentID); err != nil {
			return nil, err
		}
	}

	document.ID = ""
	document.Status = models.DocumentStatusPending
	if document.UploadedBy == "" {
		document.UploadedBy = actor
	}
	if document.UploadedAt.IsZero() {
		document.UploadedAt = time.Now()
	}
	document.VerifiedBy = ""
	document.VerifiedAt = nil

	return store.Upsert(s.store, models.CollectionDocuments, actor, document)
}

// List returns a filtered, paginated view of the documents collection,
// newest uploads first.
func (s *documentService) List(f DocumentFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.Document], error) {
	documents := store.Load[*models.Document](s.store, models.CollectionDocuments)

	view := filter.Apply(documents, filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"name", "notes", "uploaded_by"},
		Equals: map[string]string{
			"status":      f.Status,
			"type":        f.Type,
			"resident_id": f.ResidentID,
		},
		Sort: &filter.Sort{Field: "uploaded_at", Order: filter.Desc},
	})

	result := pagination.Page(view, page)
	return &result, nil
}

// Get retrieves a document by id.
func (s *documentService) Get(id string) (*models.Document, error) {
	for _, doc := range store.Load[*models.Document](s.store, models.CollectionDocuments) {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, apperrors.ErrDocumentNotFound
}

// UpdateStatus moves a document through verification. Pending documents get
// verified or rejected; only verified documents can expire.
func (s *documentService) UpdateStatus(actor, id string, next models.DocumentStatus, notes string) (*models.Document, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !existing.Status.CanTransitionTo(next) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"cannot change document status from "+string(existing.Status)+" to "+string(next))
	}

	updated := *existing
	updated.Status = next
	if notes != "" {
		updated.Notes = notes
	}
	if next == models.DocumentStatusVerified {
		now := time.Now()
		updated.VerifiedBy = actor
		updated.VerifiedAt = &now
	}

	return store.Upsert(s.store, models.CollectionDocuments, actor, &updated)
}

// Delete removes a document's metadata.
func (s *documentService) Delete(actor, id string) error {
	removed, err := store.Remove[*models.Document](s.store, models.CollectionDocuments, actor, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// ExpireOverdue transitions every verified document whose expiry date has
// passed. Returns the number of documents expired.
func (s *documentService) ExpireOverdue(actor string) (int, error) {
	documents := store.Load[*models.Document](s.store, models.CollectionDocuments)
	now := time.Now()

	expired := 0
	for _, doc := range documents {
		if doc.Status != models.DocumentStatusVerified || doc.ExpiryDate == nil {
			continue
		}
		if doc.ExpiryDate.After(now) {
			continue
		}
		if _, err := s.UpdateStatus(actor, doc.ID, models.DocumentStatusExpired, ""); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// Stats summarizes the documents collection.
func (s *documentService) Stats() *DocumentStats {
	documents := store.Load[*models.Document](s.store, models.CollectionDocuments)
	now := time.Now()
	deadline := now.Add(expiringSoonWindow)

	return &DocumentStats{
		Total: len(documents),
		ByStatus: stats.GroupCount(documents, func(d *models.Document) string {
			return string(d.Status)
		}),
		ExpiringSoon: stats.Count(documents, func(d *models.Document) bool {
			if d.Status != models.DocumentStatusVerified || d.ExpiryDate == nil {
				return false
			}
			return d.ExpiryDate.After(now) && d.ExpiryDate.Before(deadline)
		}),
	}
}
