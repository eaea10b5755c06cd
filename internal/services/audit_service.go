package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"refutree/internal/filter"
	"refutree/internal/logger"
	"refutree/internal/models"
	"refutree/internal/pagination"
	"refutree/internal/store"
	"refutree/internal/uuid"
)

// auditService appends immutable entries to the auditLogs collection. It is
// registered as the store's change listener, so every upsert/remove in any
// collection lands here regardless of which feature triggered it.
type auditService struct {
	store *store.Store
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(s *store.Store) AuditServicer {
	return &auditService{store: s}
}

var _ store.Listener = (*auditService)(nil)

// RecordChange implements store.Listener.
func (s *auditService) RecordChange(change store.Change) {
	if change.Collection == models.CollectionAuditLogs {
		// The trail does not audit itself.
		return
	}
	s.Record(change.Actor, change.Action, change.Collection, change.RecordID, describeChange(change), "")
}

// Record appends one audit entry. Failures are logged but never propagate,
// so a broken trail cannot disrupt the operation being audited.
func (s *auditService) Record(user string, action models.AuditAction, entity, entityID, details, ipAddress string) {
	if user == "" {
		user = models.SystemUser
	}
	now := time.Now()

	entry := &models.AuditEntry{
		User:      user,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ipAddress,
		Timestamp: now,
	}
	entry.SetRecordID(uuid.New())
	entry.Stamp(now)

	entries := store.Load[*models.AuditEntry](s.store, models.CollectionAuditLogs)
	entries = append(entries, entry)
	if err := store.SaveAll(s.store, models.CollectionAuditLogs, entries); err != nil {
		logger.Get().Errorw("failed to append audit entry",
			"error", err,
			"user", user,
			"action", action,
			"entity", entity,
			"entity_id", entityID,
		)
	}
}

// Query returns audit entries matching the filter, newest first.
func (s *auditService) Query(f AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[*models.AuditEntry], error) {
	view := s.matching(f)
	result := pagination.Page(view, page)
	return &result, nil
}

// matching returns all entries matching the filter, newest first.
func (s *auditService) matching(f AuditFilter) []*models.AuditEntry {
	entries := store.Load[*models.AuditEntry](s.store, models.CollectionAuditLogs)

	criteria := filter.Criteria{
		Search:       f.Search,
		SearchFields: []string{"user", "entity", "details"},
		Equals: map[string]string{
			"user":   f.User,
			"action": f.Action,
			"entity": f.Entity,
		},
		Sort: &filter.Sort{Field: "timestamp", Order: filter.Desc},
	}
	if f.From != nil || f.To != nil {
		criteria.DateRange = &filter.DateRange{Field: "timestamp", From: f.From, To: f.To}
	}

	return filter.Apply(entries, criteria)
}

// ExportCSV renders every matching entry as the audit CSV download.
func (s *auditService) ExportCSV(f AuditFilter) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Datum", "Gebruiker", "Actie", "Entiteit", "Details", "IP Adres"}); err != nil {
		return nil, "", err
	}
	for _, entry := range s.matching(f) {
		row := []string{
			entry.Timestamp.Format("02-01-2006 15:04:05"),
			entry.User,
			string(entry.Action),
			entry.Entity,
			entry.Details,
			entry.IPAddress,
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("audit_log_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// describeChange renders a compact before/after summary for the entry details.
func describeChange(change store.Change) string {
	payload := map[string]any{}
	if change.Before != nil {
		payload["before"] = change.Before
	}
	if change.After != nil {
		payload["after"] = change.After
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Errorw("failed to marshal audit change details", "error", err, "collection", change.Collection)
		return "{}"
	}
	return string(data)
}
