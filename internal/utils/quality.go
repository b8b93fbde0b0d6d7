package utils

import (
	"strings"

	"github.com/amaumene/catarr/internal/models"
)

// NormalizeQuality maps free-form operator input to a quality tag
func NormalizeQuality(input string) models.Quality {
	inputLower := strings.ToLower(strings.TrimSpace(input))

	switch {
	case strings.Contains(inputLower, "2160"),
		strings.Contains(inputLower, "4k"),
		strings.Contains(inputLower, "uhd"):
		return models.Quality2160p
	case strings.Contains(inputLower, "1080"),
		strings.Contains(inputLower, "fhd"):
		return models.Quality1080p
	case strings.Contains(inputLower, "720"),
		inputLower == "hd":
		return models.Quality720p
	case strings.Contains(inputLower, "cam"):
		return models.QualityCAM
	default:
		return models.QualityOther
	}
}

// ParseCategory maps operator input to a known category, defaulting to movie
func ParseCategory(input string) models.Category {
	switch models.Category(strings.ToLower(strings.TrimSpace(input))) {
	case models.CategorySeries:
		return models.CategorySeries
	case models.CategoryAnime:
		return models.CategoryAnime
	case models.CategoryDocumentary:
		return models.CategoryDocumentary
	default:
		return models.CategoryMovie
	}
}
