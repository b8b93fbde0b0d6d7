package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/amaumene/catarr/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrPublishInFlight is returned when a publish is requested while a
// previous one for the same draft is still running
var ErrPublishInFlight = errors.New("publish already in progress")

// DraftFields holds the raw form fields of a draft. Everything stays a
// string until Build parses it.
type DraftFields struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Thumbnail    string `json:"thumbnail"`
	Year         string `json:"year"`
	Rating       string `json:"rating"`
	Quality      string `json:"quality"`
	Description  string `json:"description"`
	TelegramCode string `json:"telegram_code"`
}

// draft is the in-progress create/edit state of one operator session
type draft struct {
	fields    DraftFields
	list      *models.EpisodeList
	editingID uint64 // 0 while creating a new record
	inFlight  bool
}

// DraftView is the read model handed to the API layer
type DraftView struct {
	Fields    DraftFields      `json:"fields"`
	Episodes  []models.Episode `json:"episodes"`
	EditingID uint64           `json:"editing_id,omitempty"`
}

// DraftController owns the per-session drafts. Each session holds exactly
// one draft at a time; the map itself is shared across sessions and guarded
// by the mutex.
type DraftController struct {
	catalogCtrl *CatalogController
	logger      *logrus.Logger

	mu     sync.Mutex
	drafts map[string]*draft
}

// NewDraftController creates a new draft controller
func NewDraftController(catalogCtrl *CatalogController, logger *logrus.Logger) *DraftController {
	return &DraftController{
		catalogCtrl: catalogCtrl,
		logger:      logger,
		drafts:      make(map[string]*draft),
	}
}

// get returns the draft for a session, creating an empty one on first use.
// Caller must hold the mutex.
func (c *DraftController) get(token string) *draft {
	d, ok := c.drafts[token]
	if !ok {
		d = &draft{list: models.NewEpisodeList()}
		c.drafts[token] = d
	}
	return d
}

// Get returns the current draft state of a session
func (c *DraftController) Get(token string) DraftView {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.get(token)
	return DraftView{
		Fields:    d.fields,
		Episodes:  d.list.Episodes(),
		EditingID: d.editingID,
	}
}

// SetFields replaces the form fields of the session's draft
func (c *DraftController) SetFields(token string, fields DraftFields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.get(token).fields = fields
}

// AddEpisode adds an episode to the session's draft list
func (c *DraftController) AddEpisode(token, season, title, duration, code string) (DraftView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.get(token)
	if !d.list.Add(season, title, duration, code) {
		return DraftView{}, models.NewValidationError("episode", "title and telegram code are required")
	}

	return DraftView{Fields: d.fields, Episodes: d.list.Episodes(), EditingID: d.editingID}, nil
}

// RemoveEpisode removes an episode from the session's draft list. Unknown
// IDs are a no-op.
func (c *DraftController) RemoveEpisode(token, episodeID string) DraftView {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.get(token)
	d.list.Remove(episodeID)
	return DraftView{Fields: d.fields, Episodes: d.list.Episodes(), EditingID: d.editingID}
}

// Reset discards the session's draft, returning it to a fresh create state
func (c *DraftController) Reset(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.drafts, token)
}

// Drop discards the draft when a session ends
func (c *DraftController) Drop(token string) {
	c.Reset(token)
}

// LoadRecord loads an existing record into the session's draft for editing.
// Stored episode numbering is trusted as-is; the list is only re-sorted.
func (c *DraftController) LoadRecord(token string, id uint64) (DraftView, error) {
	record, err := c.catalogCtrl.Get(id)
	if err != nil {
		return DraftView{}, fmt.Errorf("failed to load record: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	d := &draft{
		fields: DraftFields{
			Title:        record.Title,
			Category:     string(record.Category),
			Thumbnail:    record.Thumbnail,
			Year:         formatInt(record.Year),
			Rating:       formatFloat(record.Rating),
			Quality:      string(record.Quality),
			Description:  record.Description,
			TelegramCode: record.TelegramCode,
		},
		list:      models.NewEpisodeList(),
		editingID: id,
	}
	d.list.Load(record.Episodes)
	c.drafts[token] = d

	c.logger.WithFields(logrus.Fields{
		"id":    id,
		"title": record.Title,
	}).Debug("Record loaded into draft")

	return DraftView{Fields: d.fields, Episodes: d.list.Episodes(), EditingID: d.editingID}, nil
}

// Publish validates and persists the session's draft. While the store write
// runs, further publishes for the same draft are rejected; on failure the
// draft is kept so the operator can retry without re-entering anything. On
// success the draft resets to a fresh create state.
func (c *DraftController) Publish(token string) (*models.CatalogRecord, error) {
	c.mu.Lock()
	d := c.get(token)
	if d.inFlight {
		c.mu.Unlock()
		return nil, ErrPublishInFlight
	}

	record, err := c.catalogCtrl.Build(d.fields, d.list)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	d.inFlight = true
	editingID := d.editingID
	c.mu.Unlock()

	if editingID != 0 {
		err = c.catalogCtrl.Update(editingID, record)
	} else {
		err = c.catalogCtrl.Create(record)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	d.inFlight = false

	if err != nil {
		c.logger.WithError(err).Error("Publish failed, draft preserved")
		return nil, err
	}

	delete(c.drafts, token)
	return record, nil
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
