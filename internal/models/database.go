package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// settingsKey is the fixed key of the single AppSettings document
const settingsKey = "app"

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Catalog record operations

// CreateRecord creates a new catalog record. The store stamps the creation
// time and starts the view counter at zero.
func (db *Database) CreateRecord(record *CatalogRecord) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	record.Views = 0
	return db.store.Insert(bolthold.NextSequence(), record)
}

// UpdateRecord updates an existing catalog record. The creation time and
// view counter of the stored record are preserved.
func (db *Database) UpdateRecord(record *CatalogRecord) error {
	existing, err := db.GetRecordByID(record.ID)
	if err != nil {
		return err
	}

	record.CreatedAt = existing.CreatedAt
	record.Views = existing.Views
	record.UpdatedAt = time.Now()
	return db.store.Update(record.ID, record)
}

// GetRecordByID retrieves a catalog record by ID
func (db *Database) GetRecordByID(id uint64) (*CatalogRecord, error) {
	var record CatalogRecord
	err := db.store.Get(id, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecords retrieves the most recently created records, newest first.
// The limit bounds the console's list view, it is a tuning constant rather
// than a contract.
func (db *Database) ListRecords(limit int) ([]*CatalogRecord, error) {
	records, err := db.GetAllRecords()
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// GetAllRecords retrieves all catalog records
func (db *Database) GetAllRecords() ([]*CatalogRecord, error) {
	var records []*CatalogRecord
	err := db.store.Find(&records, nil)
	return records, err
}

// CountRecords returns the number of catalog records
func (db *Database) CountRecords() (int, error) {
	records, err := db.GetAllRecords()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// DeleteRecord deletes a catalog record by ID
func (db *Database) DeleteRecord(id uint64) error {
	return db.store.Delete(id, &CatalogRecord{})
}

// SeedRecords inserts a batch of records inside a single write transaction,
// so a failing insert rolls back the whole batch
func (db *Database) SeedRecords(records []*CatalogRecord) error {
	now := time.Now()
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		for _, record := range records {
			record.CreatedAt = now
			record.UpdatedAt = now
			record.Views = 0
			if err := db.store.TxInsert(tx, bolthold.NextSequence(), record); err != nil {
				return fmt.Errorf("failed to insert seed record %q: %w", record.Title, err)
			}
		}
		return nil
	})
}

// Settings operations

// GetSettings retrieves the app settings, or nil when none have been saved yet
func (db *Database) GetSettings() (*AppSettings, error) {
	var settings AppSettings
	err := db.store.Get(settingsKey, &settings)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// PutSettings saves the app settings, replacing any previous version
func (db *Database) PutSettings(settings *AppSettings) error {
	settings.UpdatedAt = time.Now()
	return db.store.Upsert(settingsKey, settings)
}
