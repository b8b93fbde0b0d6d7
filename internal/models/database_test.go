package models

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "catarr.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateRecordStampsMetadata(t *testing.T) {
	db := openTestDB(t)

	record := &CatalogRecord{
		Title:        "Test Movie",
		Category:     CategoryMovie,
		Thumbnail:    "thumb.jpg",
		TelegramCode: "CODE1",
		Views:        999, // must be reset by the store
	}

	if err := db.CreateRecord(record); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	if record.ID == 0 {
		t.Error("Expected record to get an ID")
	}
	if record.CreatedAt.IsZero() || record.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be stamped")
	}
	if record.Views != 0 {
		t.Errorf("Expected view counter initialized to 0, got %d", record.Views)
	}
}

func TestUpdateRecordPreservesCreationAndViews(t *testing.T) {
	db := openTestDB(t)

	record := &CatalogRecord{
		Title:        "Before",
		Category:     CategoryMovie,
		Thumbnail:    "thumb.jpg",
		TelegramCode: "CODE1",
	}
	if err := db.CreateRecord(record); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	// Simulate the delivery bot bumping views
	stored, err := db.GetRecordByID(record.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	stored.Views = 42
	if err := db.store.Update(stored.ID, stored); err != nil {
		t.Fatalf("Failed to bump views: %v", err)
	}

	updated := &CatalogRecord{
		ID:           record.ID,
		Title:        "After",
		Category:     CategoryMovie,
		Thumbnail:    "thumb.jpg",
		TelegramCode: "CODE2",
		CreatedAt:    time.Now().Add(24 * time.Hour), // must be ignored
	}
	if err := db.UpdateRecord(updated); err != nil {
		t.Fatalf("Failed to update record: %v", err)
	}

	result, err := db.GetRecordByID(record.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}

	if result.Title != "After" {
		t.Errorf("Expected updated title, got %q", result.Title)
	}
	if !result.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", record.CreatedAt, result.CreatedAt)
	}
	if result.Views != 42 {
		t.Errorf("Expected views preserved at 42, got %d", result.Views)
	}
	if !result.UpdatedAt.After(record.UpdatedAt) && !result.UpdatedAt.Equal(record.UpdatedAt) {
		t.Error("Expected UpdatedAt to move forward")
	}
}

func TestListRecordsNewestFirstAndBounded(t *testing.T) {
	db := openTestDB(t)

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		record := &CatalogRecord{
			Title:        title,
			Category:     CategoryMovie,
			Thumbnail:    "thumb.jpg",
			TelegramCode: "C-" + title,
		}
		if err := db.CreateRecord(record); err != nil {
			t.Fatalf("Failed to create %q: %v", title, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	records, err := db.ListRecords(2)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Title != "Third" || records[1].Title != "Second" {
		t.Errorf("Expected newest first, got %q then %q", records[0].Title, records[1].Title)
	}
}

func TestDeleteRecord(t *testing.T) {
	db := openTestDB(t)

	record := &CatalogRecord{
		Title:        "Doomed",
		Category:     CategoryMovie,
		Thumbnail:    "thumb.jpg",
		TelegramCode: "CODE",
	}
	if err := db.CreateRecord(record); err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	if err := db.DeleteRecord(record.ID); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	if _, err := db.GetRecordByID(record.ID); err == nil {
		t.Error("Expected deleted record to be gone")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	settings, err := db.GetSettings()
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if settings != nil {
		t.Fatal("Expected nil settings before first save")
	}

	if err := db.PutSettings(&AppSettings{
		BotUsername: "delivery_bot",
		ChannelLink: "https://t.me/channel",
	}); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	settings, err = db.GetSettings()
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if settings.BotUsername != "delivery_bot" {
		t.Errorf("Expected bot username, got %q", settings.BotUsername)
	}
	if settings.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be stamped")
	}

	// Upsert replaces the previous version
	if err := db.PutSettings(&AppSettings{
		BotUsername: "other_bot",
		ChannelLink: "https://t.me/other",
	}); err != nil {
		t.Fatalf("Failed to replace settings: %v", err)
	}

	settings, err = db.GetSettings()
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if settings.BotUsername != "other_bot" {
		t.Errorf("Expected replaced bot username, got %q", settings.BotUsername)
	}
}

func TestSeedRecordsInsertsBatch(t *testing.T) {
	db := openTestDB(t)

	batch := []*CatalogRecord{
		{Title: "One", Category: CategoryMovie, Thumbnail: "a.jpg", TelegramCode: "A"},
		{Title: "Two", Category: CategorySeries, Thumbnail: "b.jpg", Episodes: []Episode{
			{ID: "e1", Season: 1, Number: 1, Title: "Pilot", TelegramCode: "B1"},
		}},
	}

	if err := db.SeedRecords(batch); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	count, err := db.CountRecords()
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 records, got %d", count)
	}

	records, err := db.GetAllRecords()
	if err != nil {
		t.Fatalf("Failed to get records: %v", err)
	}
	for _, record := range records {
		if record.CreatedAt.IsZero() {
			t.Errorf("Seeded record %q missing CreatedAt", record.Title)
		}
	}
}
