package pet

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
)

const (
	MaxTitleLength = 100

	// TrainingPageSize caps how many log entries a pet sheet shows.
	TrainingPageSize = 20
)

// ClampProgress keeps a training progress value within 0..100.
func ClampProgress(p int) int {
	return min(max(p, 0), 100)
}

func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", httperr.Reject(httperr.CodeInvalidTitle, "Title is required for a training entry")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", httperr.Reject(httperr.CodeInvalidTitle, "Title must be at most %d characters", MaxTitleLength)
	}
	return title, nil
}
