package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/catarr/internal/api/middleware"
	"github.com/amaumene/catarr/internal/auth"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles operator login and logout
type AuthHandler struct {
	authSvc   *auth.Service
	draftCtrl *controllers.DraftController
	logger    *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *auth.Service, draftCtrl *controllers.DraftController, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authSvc:   authSvc,
		draftCtrl: draftCtrl,
		logger:    logger,
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login handles the login endpoint
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	session, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "catarr_session",
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    session.Token,
		Username: session.Username,
	})
}

// Logout handles the logout endpoint. The session's draft is discarded
// together with the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.draftCtrl.Drop(session.Token)
	h.authSvc.Logout(session.Token)

	http.SetCookie(w, &http.Cookie{
		Name:   "catarr_session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
