package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/catarr/internal/controllers"
	"github.com/sirupsen/logrus"
)

// SettingsHandler handles app settings requests
type SettingsHandler struct {
	settingsCtrl *controllers.SettingsController
	logger       *logrus.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsCtrl *controllers.SettingsController, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsCtrl: settingsCtrl,
		logger:       logger,
	}
}

// SettingsRequest is the settings update payload
type SettingsRequest struct {
	BotUsername string `json:"bot_username"`
	ChannelLink string `json:"channel_link"`
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsCtrl.Get()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Put handles PUT /api/settings
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	settings, err := h.settingsCtrl.Put(req.BotUsername, req.ChannelLink)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
