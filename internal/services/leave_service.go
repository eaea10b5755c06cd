package services

import (
	"fmt"
	"time"

	apperrors "refutree/internal/errors"
	"refutree/internal/filter"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/stats"
	"refutree/internal/store"
)

// leaveService handles leave requests. Decisions notify the dashboard.
type leaveService struct {
	store         *store.Store
	residents     ResidentServicer
	notifications NotificationServicer
}

// NewLeaveService creates a new LeaveServicer.
func NewLeaveService(s *store.Store, residents ResidentServicer, notifications NotificationServicer) LeaveServicer {
	return &leaveService{store: s, residents: residents, notifications: notifications}
}

// Submit files a new leave request for a resident. Requests always start
// pending with a submission timestamp.
func (s *leaveService) Submit(actor string, request *models.LeaveRequest) (*models.LeaveRequest, error) {
	if request.ResidentID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resident is required")
	}
	if request.StartDate.IsZero() || request.EndDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end date are required")
	}
	if request.EndDate.Before(request.StartDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date cannot be before start date")
	}

	resident, err := s.residents.Get(request.ResidentID)
	if err != nil {
		return nil, err
	}

	request.ID = ""
	request.ResidentName = resident.Name
	request.Status = models.LeaveStatusPending
	request.SubmittedAt = time.Now()
	request.DecidedBy = ""
	request.DecidedAt = nil

	return store.Upsert(s.store, models.CollectionLeaveRequests, actor, request)
}

// List returns a filtered, paginated view of the leave requests, newest
// submissions first.
func (s *leaveService) List(f LeaveFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.LeaveRequest], error) {
	requests := store.Load[*models.LeaveRequest](s.store, models.CollectionLeaveRequests)

	criteria := filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"resident_name", "destination", "reason"},
		Equals: map[string]string{
			"status":      f.Status,
			"resident_id": f.ResidentID,
		},
		Sort: &filter.Sort{Field: "submitted_at", Order: filter.Desc},
	}
	if f.From != nil || f.To != nil {
		criteria.DateRange = &filter.DateRange{Field: "start_date", From: f.From, To: f.To}
	}

	view := filter.Apply(requests, criteria)
	result := pagination.Page(view, page)
	return &result, nil
}

// Get retrieves a leave request by id.
func (s *leaveService) Get(id string) (*models.LeaveRequest, error) {
	for _, req := range store.Load[*models.LeaveRequest](s.store, models.CollectionLeaveRequests) {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, apperrors.ErrLeaveRequestNotFound
}

// Approve grants a pending leave request.
func (s *leaveService) Approve(actor, id, notes string) (*models.LeaveRequest, error) {
	return s.decide(actor, id, models.LeaveStatusApproved, notes)
}

// Reject denies a pending leave request.
func (s *leaveService) Reject(actor, id, notes string) (*models.LeaveRequest, error) {
	return s.decide(actor, id, models.LeaveStatusRejected, notes)
}

// decide applies a terminal decision to a pending request.
func (s *leaveService) decide(actor, id string, next models.LeaveStatus, notes string) (*models.LeaveRequest, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !existing.Status.CanTransitionTo(next) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"leave request is already "+string(existing.Status))
	}

	now := time.Now()
	updated := *existing
	updated.Status = next
	updated.DecidedBy = actor
	updated.DecidedAt = &now
	if notes != "" {
		updated.Notes = notes
	}

	saved, err := store.Upsert(s.store, models.CollectionLeaveRequests, actor, &updated)
	if err != nil {
		return nil, err
	}

	notificationType := models.NotificationTypeSuccess
	if next == models.LeaveStatusRejected {
		notificationType = models.NotificationTypeWarning
	}
	s.notifications.Notify(
		fmt.Sprintf("Verlofaanvraag van %s is %s", saved.ResidentName, statusLabel(next)),
		notificationType,
	)

	return saved, nil
}

// statusLabel renders a decision in the sentence form the dashboard shows.
func statusLabel(status models.LeaveStatus) string {
	switch status {
	case models.LeaveStatusApproved:
		return "goedgekeurd"
	case models.LeaveStatusRejected:
		return "afgewezen"
	default:
		return string(status)
	}
}

// Stats counts leave requests by status.
func (s *leaveService) Stats() map[string]int {
	requests := store.Load[*models.LeaveRequest](s.store, models.CollectionLeaveRequests)
	return stats.GroupCount(requests, func(r *models.LeaveRequest) string {
		return string(r.Status)
	})
}
