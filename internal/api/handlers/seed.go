package handlers

import (
	"net/http"

	"github.com/amaumene/catarr/internal/controllers"
	"github.com/sirupsen/logrus"
)

// SeedHandler handles demo-data seeding requests
type SeedHandler struct {
	seedCtrl *controllers.SeedController
	logger   *logrus.Logger
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seedCtrl *controllers.SeedController, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{
		seedCtrl: seedCtrl,
		logger:   logger,
	}
}

// Seed handles POST /api/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count, err := h.seedCtrl.Seed()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"seeded": count})
}
