package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/catarr/internal/api/middleware"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/sirupsen/logrus"
)

// DraftHandler exposes the session's in-progress draft
type DraftHandler struct {
	draftCtrl *controllers.DraftController
	logger    *logrus.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftCtrl *controllers.DraftController, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{
		draftCtrl: draftCtrl,
		logger:    logger,
	}
}

// EpisodeRequest is the add-episode payload. Season stays a string, the
// list manager parses it.
type EpisodeRequest struct {
	Season       string `json:"season"`
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	TelegramCode string `json:"telegram_code"`
}

func (h *DraftHandler) token(r *http.Request) (string, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return "", false
	}
	return session.Token, true
}

// Get handles GET /api/draft
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.draftCtrl.Get(token))
}

// SetFields handles PUT /api/draft/fields
func (h *DraftHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var fields controllers.DraftFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	h.draftCtrl.SetFields(token, fields)
	writeJSON(w, http.StatusOK, h.draftCtrl.Get(token))
}

// AddEpisode handles POST /api/draft/episodes
func (h *DraftHandler) AddEpisode(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req EpisodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	view, err := h.draftCtrl.AddEpisode(token, req.Season, req.Title, req.Duration, req.TelegramCode)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveEpisode handles DELETE /api/draft/episodes/{id}
func (h *DraftHandler) RemoveEpisode(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.draftCtrl.RemoveEpisode(token, r.PathValue("id")))
}

// Reset handles POST /api/draft/reset
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.draftCtrl.Reset(token)
	writeJSON(w, http.StatusOK, h.draftCtrl.Get(token))
}

// Load handles POST /api/draft/load/{id}
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := recordID(r)
	if err != nil {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	view, err := h.draftCtrl.LoadRecord(token, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Publish handles POST /api/draft/publish
func (h *DraftHandler) Publish(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	record, err := h.draftCtrl.Publish(token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
