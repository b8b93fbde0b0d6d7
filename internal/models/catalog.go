package models

import "time"

// CatalogRecord represents one persisted title (movie or series)
type CatalogRecord struct {
	ID uint64 `boltholdKey:"ID" json:"id"`

	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Quality     Quality  `json:"quality"`
	Description string   `json:"description"`

	// Delivery: either a single code or an episode list. Episodes is nil
	// for single-code titles, never an empty slice, so downstream readers
	// can tell the two shapes apart.
	TelegramCode string    `json:"telegram_code,omitempty"`
	Episodes     []Episode `json:"episodes,omitempty"`

	Views int64 `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEpisodic returns true when the record delivers through an episode list
func (r *CatalogRecord) IsEpisodic() bool {
	return r.Episodes != nil
}

// AppSettings holds the global settings consumed by the delivery bot
type AppSettings struct {
	BotUsername string    `json:"bot_username"`
	ChannelLink string    `json:"channel_link"`
	UpdatedAt   time.Time `json:"updated_at"`
}
