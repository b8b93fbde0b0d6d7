package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amaumene/catarr/internal/models"
	"github.com/amaumene/catarr/internal/utils"
	"github.com/sirupsen/logrus"
)

// CatalogController assembles catalog records from draft input and persists
// them through the database
type CatalogController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *models.Database, logger *logrus.Logger) *CatalogController {
	return &CatalogController{
		db:     db,
		logger: logger,
	}
}

// Validate runs the required-field checks that must pass before a record is
// built. A record needs a title, a thumbnail, and at least one delivery
// mechanism: a single code or a non-empty episode list.
func (c *CatalogController) Validate(title, thumbnail, code string, episodeCount int) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("title", "required")
	}
	if strings.TrimSpace(thumbnail) == "" {
		return models.NewValidationError("thumbnail", "required")
	}
	if strings.TrimSpace(code) == "" && episodeCount == 0 {
		return models.NewValidationError("telegram_code", "a delivery code or at least one episode is required")
	}
	return nil
}

// Build assembles a catalog record from raw draft fields. Numeric fields are
// parsed here: a blank rating defaults to zero, a non-numeric one is rejected
// rather than letting NaN reach the store.
func (c *CatalogController) Build(fields DraftFields, list *models.EpisodeList) (*models.CatalogRecord, error) {
	if err := c.Validate(fields.Title, fields.Thumbnail, fields.TelegramCode, list.Len()); err != nil {
		return nil, err
	}

	rating := 0.0
	if strings.TrimSpace(fields.Rating) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(fields.Rating), 64)
		if err != nil {
			return nil, models.NewValidationError("rating", "must be numeric")
		}
		rating = parsed
	}

	year := 0
	if strings.TrimSpace(fields.Year) != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(fields.Year)); err == nil {
			year = parsed
		}
	}

	record := &models.CatalogRecord{
		Title:        strings.TrimSpace(fields.Title),
		Category:     utils.ParseCategory(fields.Category),
		Thumbnail:    strings.TrimSpace(fields.Thumbnail),
		Year:         year,
		Rating:       rating,
		Quality:      utils.NormalizeQuality(fields.Quality),
		Description:  strings.TrimSpace(fields.Description),
		TelegramCode: strings.TrimSpace(fields.TelegramCode),
	}

	// nil marks a single-code title; only episodic titles carry a list
	if list.Len() > 0 {
		record.Episodes = list.Episodes()
	}

	return record, nil
}

// Create persists a new record
func (c *CatalogController) Create(record *models.CatalogRecord) error {
	if err := c.db.CreateRecord(record); err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"id":       record.ID,
		"title":    record.Title,
		"episodic": record.IsEpisodic(),
	}).Info("Catalog record created")

	return nil
}

// Update persists changes to an existing record
func (c *CatalogController) Update(id uint64, record *models.CatalogRecord) error {
	record.ID = id
	if err := c.db.UpdateRecord(record); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"id":    id,
		"title": record.Title,
	}).Info("Catalog record updated")

	return nil
}

// Delete removes a record from the catalog
func (c *CatalogController) Delete(id uint64) error {
	if err := c.db.DeleteRecord(id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	c.logger.WithField("id", id).Info("Catalog record deleted")
	return nil
}

// Get retrieves a single record
func (c *CatalogController) Get(id uint64) (*models.CatalogRecord, error) {
	return c.db.GetRecordByID(id)
}

// List retrieves the most recent records, newest first
func (c *CatalogController) List(limit int) ([]*models.CatalogRecord, error) {
	return c.db.ListRecords(limit)
}
