package enrichment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// CreateInput holds the parameters for ingesting a comment.
// A nil Timestamp means "now".
type CreateInput struct {
	Author    string
	Text      string
	Timestamp *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	author := strings.TrimSpace(i.Author)
	if author == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "required"})
	}
	if utf8.RuneCountInString(author) > domain.MaxAuthorLength {
		errs = append(errs, domain.FieldError{Field: "author", Message: "max 200 characters"})
	}

	// Text is stored verbatim, so only emptiness ignores surrounding space.
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if utf8.RuneCountInString(i.Text) > domain.MaxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 5000 characters"})
	}

	if i.Timestamp != nil && i.Timestamp.IsZero() {
		errs = append(errs, domain.FieldError{Field: "timestamp", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
