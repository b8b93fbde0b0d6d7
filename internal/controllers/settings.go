package controllers

import (
	"fmt"
	"strings"

	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
)

// SettingsController manages the global app settings consumed by the
// delivery bot
type SettingsController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewSettingsController creates a new settings controller
func NewSettingsController(db *models.Database, logger *logrus.Logger) *SettingsController {
	return &SettingsController{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the current settings. Before any have been saved, zero-value
// settings are returned rather than an error.
func (c *SettingsController) Get() (*models.AppSettings, error) {
	settings, err := c.db.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return &models.AppSettings{}, nil
	}
	return settings, nil
}

// Put validates and saves the settings
func (c *SettingsController) Put(botUsername, channelLink string) (*models.AppSettings, error) {
	botUsername = strings.TrimSpace(botUsername)
	channelLink = strings.TrimSpace(channelLink)

	if botUsername == "" {
		return nil, models.NewValidationError("bot_username", "required")
	}
	if channelLink == "" {
		return nil, models.NewValidationError("channel_link", "required")
	}

	settings := &models.AppSettings{
		BotUsername: botUsername,
		ChannelLink: channelLink,
	}

	if err := c.db.PutSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"bot_username": botUsername,
		"channel_link": channelLink,
	}).Info("Settings updated")

	return settings, nil
}
