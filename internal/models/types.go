package models

// Category represents the catalog category of a record
type Category string

const (
	CategoryMovie       Category = "movie"
	CategorySeries      Category = "series"
	CategoryAnime       Category = "anime"
	CategoryDocumentary Category = "documentary"
)

// Quality represents the normalized quality tag of a record
type Quality string

const (
	Quality2160p Quality = "2160p"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	QualityCAM   Quality = "CAM"
	QualityOther Quality = "OTHER"
)

// ValidationError describes a required-field check that failed before any
// store operation was attempted
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NewValidationError creates a new validation error
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
