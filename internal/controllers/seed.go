package controllers

import (
	"fmt"

	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
)

// SeedController populates an empty catalog with demo data
type SeedController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewSeedController creates a new seed controller
func NewSeedController(db *models.Database, logger *logrus.Logger) *SeedController {
	return &SeedController{
		db:     db,
		logger: logger,
	}
}

// Seed inserts the demo records in a single batch. It refuses to run on a
// non-empty catalog and reports how many records were inserted.
func (c *SeedController) Seed() (int, error) {
	count, err := c.db.CountRecords()
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	if count > 0 {
		c.logger.WithField("existing", count).Info("Catalog not empty, skipping seed")
		return 0, nil
	}

	records := demoRecords()
	if err := c.db.SeedRecords(records); err != nil {
		return 0, fmt.Errorf("failed to seed records: %w", err)
	}

	c.logger.WithField("count", len(records)).Info("Demo data seeded")
	return len(records), nil
}

// demoRecords builds the demo catalog. The series episodes go through the
// episode list so their numbering follows the same rules as operator input.
func demoRecords() []*models.CatalogRecord {
	list := models.NewEpisodeList()
	list.Add("1", "Pilot", "42 min", "DEMO-S01E01")
	list.Add("1", "The Second Step", "45 min", "DEMO-S01E02")
	list.Add("1", "Turning Point", "44 min", "DEMO-S01E03")
	list.Add("2", "New Beginnings", "41 min", "DEMO-S02E01")
	list.Add("2", "Old Debts", "43 min", "DEMO-S02E02")

	return []*models.CatalogRecord{
		{
			Title:        "The Long Haul",
			Category:     models.CategoryMovie,
			Thumbnail:    "https://example.com/posters/long-haul.jpg",
			Year:         2021,
			Rating:       7.4,
			Quality:      models.Quality1080p,
			Description:  "A cross-country trucker takes one last job.",
			TelegramCode: "DEMO-MOVIE-001",
		},
		{
			Title:        "Harbor Lights",
			Category:     models.CategoryMovie,
			Thumbnail:    "https://example.com/posters/harbor-lights.jpg",
			Year:         2019,
			Rating:       6.8,
			Quality:      models.Quality720p,
			Description:  "Two strangers meet in a fishing town.",
			TelegramCode: "DEMO-MOVIE-002",
		},
		{
			Title:       "Northern Static",
			Category:    models.CategorySeries,
			Thumbnail:   "https://example.com/posters/northern-static.jpg",
			Year:        2022,
			Rating:      8.1,
			Quality:     models.Quality1080p,
			Description: "A radio operator hears a broadcast that should not exist.",
			Episodes:    list.Episodes(),
		},
	}
}
