package models

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultDuration is stored when the operator leaves the duration blank
const DefaultDuration = "N/A"

// Episode represents one episode of a series
type Episode struct {
	ID           string `json:"id"`
	Season       int    `json:"season"`
	Number       int    `json:"number"`
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	TelegramCode string `json:"telegram_code"`
}

// EpisodeList holds the episodes of one catalog record during an edit
// session. It is always kept sorted by (season, number) ascending and
// episode numbers are assigned on insertion, never reassigned afterwards.
type EpisodeList struct {
	episodes []Episode
}

// NewEpisodeList creates an empty episode list
func NewEpisodeList() *EpisodeList {
	return &EpisodeList{}
}

// Add appends a new episode and re-sorts the list.
//
// The season is parsed from operator input and coerced to 1 when missing or
// unparsable. The episode number is derived: one past the highest number
// currently present in that season. Returns false without mutating the list
// when title or code is blank.
func (l *EpisodeList) Add(season, title, duration, code string) bool {
	title = strings.TrimSpace(title)
	code = strings.TrimSpace(code)
	if title == "" || code == "" {
		return false
	}

	seasonNum := ParseSeason(season)

	duration = strings.TrimSpace(duration)
	if duration == "" {
		duration = DefaultDuration
	}

	episode := Episode{
		ID:           uuid.NewString(),
		Season:       seasonNum,
		Number:       l.nextNumber(seasonNum),
		Title:        title,
		Duration:     duration,
		TelegramCode: code,
	}

	l.episodes = append(l.episodes, episode)
	l.sortEpisodes()
	return true
}

// Remove deletes the episode with the given ID. Unknown IDs are a no-op.
// Remaining episodes keep their numbers; removal leaves a gap in the
// season's numbering rather than renumbering.
func (l *EpisodeList) Remove(id string) {
	for i, episode := range l.episodes {
		if episode.ID == id {
			l.episodes = append(l.episodes[:i], l.episodes[i+1:]...)
			return
		}
	}
}

// Reset clears the list, used when a fresh draft session starts
func (l *EpisodeList) Reset() {
	l.episodes = nil
}

// Load replaces the list with the episodes of a stored record. The input is
// re-sorted but numbers are kept as stored, so later Add calls stay safe
// even when seeded or externally edited data has numbering gaps.
func (l *EpisodeList) Load(episodes []Episode) {
	l.episodes = make([]Episode, len(episodes))
	copy(l.episodes, episodes)
	l.sortEpisodes()
}

// Episodes returns a sorted copy of the list
func (l *EpisodeList) Episodes() []Episode {
	episodes := make([]Episode, len(l.episodes))
	copy(episodes, l.episodes)
	return episodes
}

// Len returns the number of episodes in the list
func (l *EpisodeList) Len() int {
	return len(l.episodes)
}

// nextNumber returns one past the highest episode number in the season.
// Using the maximum rather than the count keeps (season, number) unique
// after removals.
func (l *EpisodeList) nextNumber(season int) int {
	highest := 0
	for _, episode := range l.episodes {
		if episode.Season == season && episode.Number > highest {
			highest = episode.Number
		}
	}
	return highest + 1
}

// sortEpisodes sorts by season then number, both ascending. (season, number)
// is unique by construction so no further tie-break is needed.
func (l *EpisodeList) sortEpisodes() {
	sort.Slice(l.episodes, func(i, j int) bool {
		if l.episodes[i].Season != l.episodes[j].Season {
			return l.episodes[i].Season < l.episodes[j].Season
		}
		return l.episodes[i].Number < l.episodes[j].Number
	})
}

// ParseSeason parses operator season input, coercing invalid or
// non-positive values to season 1
func ParseSeason(input string) int {
	season, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || season < 1 {
		return 1
	}
	return season
}
