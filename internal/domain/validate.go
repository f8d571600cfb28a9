package domain

import (
	"fmt"
	"strings"
	"time"
)

// Field bounds enforced on both the API boundary and the catalog's form
// validation, mirroring the movies table schema.
const (
	MinRating = 1.0
	MaxRating = 10.0

	maxTitleLen       = 100
	maxDescriptionLen = 1000
	maxReviewLen      = 500
	minYear           = 1900
	yearSlack         = 5

	// Upper bound on a decoded data-URI poster.
	maxImageBytes = 5 << 20
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates everything wrong with a MovieInput. Missing
// lists required fields absent from the input; Fields lists fields that were
// present but failed a rule.
type ValidationError struct {
	Missing []string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields"
	}
	if len(e.Fields) > 0 {
		return e.Fields[0].Message
	}
	return "validation failed"
}

// fieldRule is a single validation rule declared as data so the API boundary
// and the interactive form validator share one definition.
type fieldRule struct {
	field   string
	present func(MovieInput) bool
	check   func(MovieInput) string
}

var movieRules = []fieldRule{
	{
		field:   "title",
		present: func(in MovieInput) bool { return strings.TrimSpace(in.Title) != "" },
		check: func(in MovieInput) string {
			if len(in.Title) > maxTitleLen {
				return fmt.Sprintf("Title must be at most %d characters", maxTitleLen)
			}
			return ""
		},
	},
	{
		field:   "description",
		present: func(in MovieInput) bool { return strings.TrimSpace(in.Description) != "" },
		check: func(in MovieInput) string {
			if len(in.Description) > maxDescriptionLen {
				return fmt.Sprintf("Description must be at most %d characters", maxDescriptionLen)
			}
			return ""
		},
	},
	{
		field:   "image_url",
		present: func(in MovieInput) bool { return in.ImageURL != "" },
		check:   func(in MovieInput) string { return checkImageURL(in.ImageURL) },
	},
	{
		field:   "rating",
		present: func(in MovieInput) bool { return in.Rating != 0 },
		check: func(in MovieInput) string {
			if in.Rating < MinRating || in.Rating > MaxRating {
				return "Rating must be between 1 and 10"
			}
			return ""
		},
	},
	{
		field:   "review_user",
		present: func(in MovieInput) bool { return strings.TrimSpace(in.ReviewUser) != "" },
		check: func(in MovieInput) string {
			if len(in.ReviewUser) > maxReviewLen {
				return fmt.Sprintf("Review must be at most %d characters", maxReviewLen)
			}
			return ""
		},
	},
	{
		field:   "genre",
		present: func(in MovieInput) bool { return in.Genre != "" },
		check: func(in MovieInput) string {
			if !ValidGenre(in.Genre) {
				return "Genre must be one of: " + strings.Join(Genres, ", ")
			}
			return ""
		},
	},
	{
		field:   "year",
		present: func(in MovieInput) bool { return in.Year != 0 },
		check: func(in MovieInput) string {
			max := time.Now().Year() + yearSlack
			if in.Year < minYear || in.Year > max {
				return fmt.Sprintf("Year must be between %d and %d", minYear, max)
			}
			return ""
		},
	},
}

// RequiredFields returns the names of all fields a movie must carry, in the
// order they appear on the form.
func RequiredFields() []string {
	fields := make([]string, len(movieRules))
	for i, rule := range movieRules {
		fields[i] = rule.field
	}
	return fields
}

// ValidateMovieInput runs every rule and returns nil when the input is valid.
func ValidateMovieInput(in MovieInput) *ValidationError {
	var verr ValidationError
	for _, rule := range movieRules {
		if !rule.present(in) {
			verr.Missing = append(verr.Missing, rule.field)
			continue
		}
		if msg := rule.check(in); msg != "" {
			verr.Fields = append(verr.Fields, FieldError{Field: rule.field, Message: msg})
		}
	}
	if len(verr.Missing) == 0 && len(verr.Fields) == 0 {
		return nil
	}
	return &verr
}

// ValidateField runs the rule for a single field, for per-keystroke feedback.
// It returns an empty string when the field is valid.
func ValidateField(field string, in MovieInput) string {
	for _, rule := range movieRules {
		if rule.field != field {
			continue
		}
		if !rule.present(in) {
			return "This field is required"
		}
		return rule.check(in)
	}
	return ""
}

func checkImageURL(value string) string {
	if !strings.HasPrefix(value, "data:") {
		return ""
	}
	if !strings.HasPrefix(value, "data:image/") {
		return "Image must be an image file"
	}
	comma := strings.IndexByte(value, ',')
	if comma < 0 {
		return "Image data is malformed"
	}
	// Base64 expands by 4/3; compare against the decoded size.
	if decoded := (len(value) - comma - 1) / 4 * 3; decoded > maxImageBytes {
		return "Image must be smaller than 5MB"
	}
	return ""
}
