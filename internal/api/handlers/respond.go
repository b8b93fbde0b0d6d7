package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amaumene/catarr/internal/auth"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps an error to its HTTP status. Validation failures are
// reported verbatim; credential and store failures only get a generic body,
// the detail stays in the logs.
func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, bolthold.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, controllers.ErrPublishInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "publish already in progress"})
	default:
		logger.WithError(err).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "operation failed"})
	}
}
