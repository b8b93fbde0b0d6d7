package handlers

import (
	"net/http"

	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalRecords      int            `json:"total_records"`
	EpisodicTitles    int            `json:"episodic_titles"`
	SingleCodeTitles  int            `json:"single_code_titles"`
	TotalEpisodes     int            `json:"total_episodes"`
	TotalViews        int64          `json:"total_views"`
	RecordsByCategory map[string]int `json:"records_by_category"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	records, err := h.db.GetAllRecords()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get records")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		TotalRecords:      len(records),
		RecordsByCategory: make(map[string]int),
	}

	for _, record := range records {
		if record.IsEpisodic() {
			response.EpisodicTitles++
			response.TotalEpisodes += len(record.Episodes)
		} else {
			response.SingleCodeTitles++
		}

		response.TotalViews += record.Views
		response.RecordsByCategory[string(record.Category)]++
	}

	writeJSON(w, http.StatusOK, response)
}
