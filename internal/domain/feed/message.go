package feed

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

const MaxMessageLength = 280

func ValidateMessage(msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", httperr.Reject(httperr.CodeInvalidMessage, "Message cannot be empty")
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return "", httperr.Reject(httperr.CodeInvalidMessage, "Message must be at most %d characters", MaxMessageLength)
	}
	return msg, nil
}

func NormalizeVisibility(v string) (string, error) {
	switch v {
	case "":
		return models.VisibilityPublic, nil
	case models.VisibilityPublic, models.VisibilityPrivate:
		return v, nil
	}
	return "", httperr.Reject(httperr.CodeInvalidMessage, "Unknown visibility: %s", v)
}

// CanReplyTo accepts only top-level pet posts as parents, so threads stay
// one level deep.
func CanReplyTo(parent *models.Woof) error {
	if parent.ParentID != nil {
		return httperr.Reject(httperr.CodeInvalidParent, "Replies can only be posted to a top-level post")
	}
	return nil
}
