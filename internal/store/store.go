// Package store persists named record collections. Each collection is one
// JSON array stored in a single row of the collections table, mirroring how
// the dashboard keeps its state: whole-collection reads, whole-collection
// writes, last write wins. There is exactly one writer at a time, so no
// optimistic locking is layered on top.
package store

import (
	"encoding/json"
	"errors"
	"time"

	apperrors "refutree/internal/errors"
	"refutree/internal/logger"
	"refutree/internal/models"
	"refutree/internal/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is implemented by every stored record type (via models.Base).
type Record interface {
	RecordID() string
	SetRecordID(id string)
	Stamp(now time.Time)
}

// Change describes one committed mutation, delivered to the Listener.
type Change struct {
	Collection string
	Action     models.AuditAction
	Actor      string
	RecordID   string
	Before     any // nil on create
	After      any // nil on delete
}

// Listener is notified after every successful Upsert or Remove. The audit
// recorder registers itself here so that every feature's mutations are
// recorded without the features knowing about auditing.
type Listener interface {
	RecordChange(change Change)
}

// collectionRow is the storage shape of one collection.
type collectionRow struct {
	Name      string `gorm:"primaryKey"`
	Data      string
	Version   int64
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// Store is the persistence layer over named collections. Constructed once at
// startup and shared by all services.
type Store struct {
	db       *gorm.DB
	listener Listener
	seeds    map[string]any
}

// New creates a Store on the given database.
func New(db *gorm.DB) *Store {
	return &Store{db: db, seeds: make(map[string]any)}
}

// SetListener registers the change listener. Registered after construction
// because the audit recorder itself writes through the store.
func (s *Store) SetListener(l Listener) {
	s.listener = l
}

// RegisterSeed installs a fixed dataset written the first time the named
// collection is loaded while still empty. Seeds must be deterministic.
func (s *Store) RegisterSeed(name string, records any) {
	s.seeds[name] = records
}

// DB exposes the underlying database handle for transactional callers.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Load returns the named collection. A collection that has never been
// written yields an empty slice, never an error; unreadable storage or
// corrupt JSON is logged as a warning and also yields an empty slice.
func Load[T any](s *Store, name string) []T {
	raw, found := s.loadRow(name)
	if !found {
		if seed, ok := s.seeds[name]; ok {
			return seedCollection[T](s, name, seed)
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Get().Warnw("collection contains invalid JSON, falling back to empty",
			"collection", name,
			"error", err,
		)
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// SaveAll replaces the named collection in a single statement.
func SaveAll[T any](s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.writeRow(s.db, name, payload)
}

// Upsert inserts or replaces one record. A record without an id gets a fresh
// time-ordered id assigned. The change listener is notified with the
// persisted before/after state.
func Upsert[T Record](s *Store, name, actor string, rec T) (T, error) {
	records := Load[T](s, name)
	now := time.Now()

	if rec.RecordID() == "" {
		rec.SetRecordID(uuid.New())
	}
	rec.Stamp(now)

	action := models.AuditActionCreate
	var before any
	replaced := false
	for i, existing := range records {
		if existing.RecordID() == rec.RecordID() {
			action = models.AuditActionUpdate
			before = existing
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	if err := SaveAll(s, name, records); err != nil {
		return rec, err
	}

	s.notify(Change{
		Collection: name,
		Action:     action,
		Actor:      normalizeActor(actor),
		RecordID:   rec.RecordID(),
		Before:     before,
		After:      rec,
	})
	return rec, nil
}

// Remove deletes one record by id and reports whether it existed.
func Remove[T Record](s *Store, name, actor, id string) (bool, error) {
	records := Load[T](s, name)

	idx := -1
	for i, existing := range records {
		if existing.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	before := records[idx]
	records = append(records[:idx], records[idx+1:]...)
	if err := SaveAll(s, name, records); err != nil {
		return false, err
	}

	s.notify(Change{
		Collection: name,
		Action:     models.AuditActionDelete,
		Actor:      normalizeActor(actor),
		RecordID:   id,
		Before:     before,
	})
	return true, nil
}

// LoadRaw returns the collection's JSON array without decoding it. Used by
// the export codec, which does not know the record types.
func (s *Store) LoadRaw(name string) json.RawMessage {
	raw, found := s.loadRow(name)
	if !found {
		return json.RawMessage("[]")
	}
	if !json.Valid([]byte(raw)) {
		logger.Get().Warnw("collection contains invalid JSON, exporting as empty",
			"collection", name,
		)
		return json.RawMessage("[]")
	}
	return json.RawMessage(raw)
}

// ReplaceCollections writes every given collection inside one transaction.
// Either all collections are replaced or none are.
func (s *Store) ReplaceCollections(data map[string]json.RawMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for name, raw := range data {
			if err := s.writeRow(tx, name, raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) loadRow(name string) (string, bool) {
	var row collectionRow
	err := s.db.Where("name = ?", name).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnw("failed to read collection, falling back to empty",
				"collection", name,
				"error", err,
			)
		}
		return "", false
	}
	return row.Data, true
}

func (s *Store) writeRow(db *gorm.DB, name string, payload []byte) error {
	now := time.Now()
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data":       string(payload),
			"version":    gorm.Expr("collections.version + 1"),
			"updated_at": now,
		}),
	}).Create(&collectionRow{Name: name, Data: string(payload), Version: 1, UpdatedAt: now}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

func seedCollection[T any](s *Store, name string, seed any) []T {
	payload, err := json.Marshal(seed)
	if err != nil {
		logger.Get().Warnw("failed to marshal seed data", "collection", name, "error", err)
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		logger.Get().Warnw("seed data does not match collection type", "collection", name, "error", err)
		return []T{}
	}

	if err := s.writeRow(s.db, name, payload); err != nil {
		logger.Get().Warnw("failed to persist seed data", "collection", name, "error", err)
	} else {
		logger.Get().Infow("seeded collection with demo data", "collection", name, "records", len(records))
	}
	return records
}

func (s *Store) notify(change Change) {
	if s.listener != nil {
		s.listener.RecordChange(change)
	}
}

func normalizeActor(actor string) string {
	if actor == "" {
		return models.SystemUser
	}
	return actor
}

// AutoMigrate creates the collections table. Production schemas come from
// the SQL migrations; this exists for the in-memory test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&collectionRow{})
}
