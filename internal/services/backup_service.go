package services

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "refutree/internal/errors"
	"refutree/internal/models"
	"refutree/internal/store"
)

// BundleVersion is written into every export. Import checks for presence,
// not equality: old bundles keep working as long as the collection shapes
// stay stable.
const BundleVersion = "1.0"

// Bundle is the versioned snapshot of all collections used for backup and
// restore. On the wire the collections sit next to version and exportDate as
// top-level keys.
type Bundle struct {
	Version     string
	ExportDate  string
	Collections map[string]json.RawMessage
}

// MarshalJSON flattens the bundle into a single JSON object.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b.Collections)+2)
	version, err := json.Marshal(b.Version)
	if err != nil {
		return nil, err
	}
	exportDate, err := json.Marshal(b.ExportDate)
	if err != nil {
		return nil, err
	}
	out["version"] = version
	out["exportDate"] = exportDate
	for name, data := range b.Collections {
		out[name] = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat bundle object back into metadata and
// collections.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &b.Version); err != nil {
			return err
		}
		delete(raw, "version")
	}
	if v, ok := raw["exportDate"]; ok {
		if err := json.Unmarshal(v, &b.ExportDate); err != nil {
			return err
		}
		delete(raw, "exportDate")
	}

	b.Collections = raw
	return nil
}

// backupService is the export/import codec over the full collection set.
type backupService struct {
	store         *store.Store
	audit         AuditServicer
	notifications NotificationServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(s *store.Store, audit AuditServicer, notifications NotificationServicer) BackupServicer {
	return &backupService{store: s, audit: audit, notifications: notifications}
}

// Export snapshots every exportable collection into one bundle and returns
// it with the download filename.
func (s *backupService) Export(actor string) (*Bundle, string, error) {
	bundle := &Bundle{
		Version:     BundleVersion,
		ExportDate:  time.Now().Format(time.RFC3339),
		Collections: make(map[string]json.RawMessage, len(models.ExportableCollections)),
	}
	for _, name := range models.ExportableCollections {
		bundle.Collections[name] = s.store.LoadRaw(name)
	}

	filename := fmt.Sprintf("vms-export-%s.json", time.Now().Format("2006-01-02"))
	s.audit.Record(actor, models.AuditActionExport, "bundle", "",
		fmt.Sprintf("exported %d collections", len(bundle.Collections)), "")
	return bundle, filename, nil
}

// Import validates a bundle and replaces every collection it contains.
// Collections absent from the bundle are left untouched. The import is
// all-or-nothing: validation failures and write failures leave the stored
// state exactly as it was.
func (s *backupService) Import(actor string, raw json.RawMessage) (*ImportResult, error) {
	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBundle, err)
	}
	if bundle.Version == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidBundle, "bundle is missing the version field")
	}
	if bundle.ExportDate == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidBundle, "bundle is missing the exportDate field")
	}

	known := make(map[string]bool, len(models.ExportableCollections))
	for _, name := range models.ExportableCollections {
		known[name] = true
	}

	result := &ImportResult{
		Version:     bundle.Version,
		ExportDate:  bundle.ExportDate,
		Collections: make(map[string]int, len(bundle.Collections)),
	}
	for name, data := range bundle.Collections {
		if !known[name] {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownCollection, "unknown collection: "+name)
		}
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidBundle, "collection "+name+" is not a JSON array")
		}
		result.Collections[name] = len(records)
	}

	if err := s.store.ReplaceCollections(bundle.Collections); err != nil {
		return nil, err
	}

	s.audit.Record(actor, models.AuditActionImport, "bundle", "",
		fmt.Sprintf("imported %d collections from bundle dated %s", len(bundle.Collections), bundle.ExportDate), "")
	s.notifications.Notify(
		fmt.Sprintf("Back-up van %s is teruggezet (%d collecties)", bundle.ExportDate, len(bundle.Collections)),
		models.NotificationTypeSuccess,
	)
	return result, nil
}
