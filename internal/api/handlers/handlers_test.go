package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/amaumene/catarr/internal/api/middleware"
	"github.com/amaumene/catarr/internal/auth"
	"github.com/amaumene/catarr/internal/controllers"
	"github.com/amaumene/catarr/internal/models"
	"github.com/amaumene/catarr/internal/utils"
)

// testMux wires the handlers the way the server does, over a temp store
func testMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := utils.NewLogger("error")

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "catarr.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	credStore := auth.NewFileCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	if _, err := auth.Bootstrap(credStore, "admin", "hunter2"); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	authSvc := auth.NewService(credStore, time.Hour, logger)

	catalogCtrl := controllers.NewCatalogController(db, logger)
	draftCtrl := controllers.NewDraftController(catalogCtrl, logger)
	settingsCtrl := controllers.NewSettingsController(db, logger)
	seedCtrl := controllers.NewSeedController(db, logger)

	protected := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireSession(fn, authSvc)
	}

	mux := http.NewServeMux()

	authHandler := NewAuthHandler(authSvc, draftCtrl, logger)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.Handle("POST /api/logout", protected(authHandler.Logout))

	recordsHandler := NewRecordsHandler(catalogCtrl, 50, logger)
	mux.Handle("GET /api/records", protected(recordsHandler.List))
	mux.Handle("POST /api/records", protected(recordsHandler.Create))
	mux.Handle("DELETE /api/records/{id}", protected(recordsHandler.Delete))

	draftHandler := NewDraftHandler(draftCtrl, logger)
	mux.Handle("GET /api/draft", protected(draftHandler.Get))
	mux.Handle("PUT /api/draft/fields", protected(draftHandler.SetFields))
	mux.Handle("POST /api/draft/episodes", protected(draftHandler.AddEpisode))
	mux.Handle("POST /api/draft/publish", protected(draftHandler.Publish))

	settingsHandler := NewSettingsHandler(settingsCtrl, logger)
	mux.Handle("GET /api/settings", protected(settingsHandler.Get))
	mux.Handle("PUT /api/settings", protected(settingsHandler.Put))

	seedHandler := NewSeedHandler(seedCtrl, logger)
	mux.Handle("POST /api/seed", protected(seedHandler.Seed))

	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, mux *http.ServeMux) string {
	t.Helper()

	rec := doJSON(t, mux, "POST", "/api/login", "", LoginRequest{Username: "admin", Password: "hunter2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	return resp.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	mux := testMux(t)

	rec := doJSON(t, mux, "POST", "/api/login", "", LoginRequest{Username: "admin", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	mux := testMux(t)

	rec := doJSON(t, mux, "GET", "/api/records", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, mux, "GET", "/api/records", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bogus token, got %d", rec.Code)
	}
}

func TestRecordCreateAndList(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "POST", "/api/records", token, RecordRequest{
		Fields: controllers.DraftFields{
			Title:        "Created Directly",
			Thumbnail:    "thumb.jpg",
			TelegramCode: "CODE1",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, "GET", "/api/records", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("List failed with status %d", rec.Code)
	}

	var resp struct {
		Records []models.CatalogRecord `json:"records"`
		Count   int                    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if resp.Count != 1 || resp.Records[0].Title != "Created Directly" {
		t.Errorf("List mismatch: %+v", resp)
	}
}

func TestRecordCreateValidation(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "POST", "/api/records", token, RecordRequest{
		Fields: controllers.DraftFields{Title: "", Thumbnail: "thumb.jpg", TelegramCode: "C"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty title, got %d", rec.Code)
	}
}

func TestDraftPublishFlow(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "PUT", "/api/draft/fields", token, controllers.DraftFields{
		Title:     "Draft Series",
		Category:  "series",
		Thumbnail: "thumb.jpg",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("SetFields failed with status %d", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/draft/episodes", token, EpisodeRequest{
		Season: "1", Title: "Pilot", TelegramCode: "EP1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("AddEpisode failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, "POST", "/api/draft/publish", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Publish failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var record models.CatalogRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if record.ID == 0 || len(record.Episodes) != 1 {
		t.Errorf("Published record mismatch: %+v", record)
	}

	// Draft resets after publish
	rec = doJSON(t, mux, "GET", "/api/draft", token, nil)
	var view controllers.DraftView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode draft view: %v", err)
	}
	if view.Fields.Title != "" || len(view.Episodes) != 0 {
		t.Errorf("Draft should be empty after publish: %+v", view)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "PUT", "/api/settings", token, SettingsRequest{
		BotUsername: "delivery_bot",
		ChannelLink: "https://t.me/channel",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Put settings failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, "GET", "/api/settings", token, nil)
	var settings models.AppSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("Failed to decode settings: %v", err)
	}
	if settings.BotUsername != "delivery_bot" {
		t.Errorf("Settings mismatch: %+v", settings)
	}
}

func TestSettingsValidation(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "PUT", "/api/settings", token, SettingsRequest{BotUsername: "", ChannelLink: "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank bot username, got %d", rec.Code)
	}
}

func TestSeedOnceOnly(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "POST", "/api/seed", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Seed failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var first map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to decode seed response: %v", err)
	}
	if first["seeded"] == 0 {
		t.Error("Expected records to be seeded")
	}

	rec = doJSON(t, mux, "POST", "/api/seed", token, nil)
	var second map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to decode seed response: %v", err)
	}
	if second["seeded"] != 0 {
		t.Errorf("Second seed should be a no-op, seeded %d", second["seeded"])
	}
}

func TestLogoutEndsSession(t *testing.T) {
	mux := testMux(t)
	token := login(t, mux)

	rec := doJSON(t, mux, "POST", "/api/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Logout failed with status %d", rec.Code)
	}

	rec = doJSON(t, mux, "GET", "/api/records", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", rec.Code)
	}
}
