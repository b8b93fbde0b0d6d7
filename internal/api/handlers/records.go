package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaumene/catarr/internal/controllers"
	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
)

// RecordsHandler handles catalog record CRUD
type RecordsHandler struct {
	catalogCtrl *controllers.CatalogController
	listLimit   int
	logger      *logrus.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(catalogCtrl *controllers.CatalogController, listLimit int, logger *logrus.Logger) *RecordsHandler {
	return &RecordsHandler{
		catalogCtrl: catalogCtrl,
		listLimit:   listLimit,
		logger:      logger,
	}
}

// RecordRequest is the direct create/update payload: raw form fields plus
// optional pre-formed episodes
type RecordRequest struct {
	Fields   controllers.DraftFields `json:"fields"`
	Episodes []models.Episode        `json:"episodes,omitempty"`
}

// List handles GET /api/records
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalogCtrl.List(h.listLimit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// Create handles POST /api/records
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	record, err := h.buildRecord(req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.catalogCtrl.Create(record); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// Get handles GET /api/records/{id}
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	record, err := h.catalogCtrl.Get(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Update handles PUT /api/records/{id}
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	record, err := h.buildRecord(req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.catalogCtrl.Update(id, record); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/records/{id}
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := recordID(r)
	if err != nil {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	if err := h.catalogCtrl.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildRecord runs the request through the record builder so direct API
// writes get the same validation and parsing as draft publishes
func (h *RecordsHandler) buildRecord(req RecordRequest) (*models.CatalogRecord, error) {
	list := models.NewEpisodeList()
	list.Load(req.Episodes)
	return h.catalogCtrl.Build(req.Fields, list)
}

func recordID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("id"), 10, 64)
}
