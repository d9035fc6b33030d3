package feedback

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// fieldSetter decodes one JSON value into the patch.
type fieldSetter func(raw json.RawMessage, p *domain.FeedbackPatch) string

// setters is the whitelist of mutable fields. Text and id are immutable.
var setters = map[string]fieldSetter{
	"author": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return "required"
		}
		if utf8.RuneCountInString(v) > domain.MaxAuthorLength {
			return "max 200 characters"
		}
		p.Author = &v
		return ""
	},
	"timestamp": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v time.Time
		if json.Unmarshal(raw, &v) != nil || v.IsZero() {
			return "must be an RFC 3339 timestamp"
		}
		v = v.UTC()
		p.Timestamp = &v
		return ""
	},
	"sentiment": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		s := domain.Sentiment(strings.ToLower(strings.TrimSpace(v)))
		if !s.IsValid() {
			return "must be positive, neutral or negative"
		}
		p.Sentiment = &s
		return ""
	},
	"tags": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v []string
		if json.Unmarshal(raw, &v) != nil {
			return "must be an array of strings"
		}
		// Round trip through the storage form so the response matches what is stored.
		tags := domain.ParseTags(domain.JoinTags(v))
		p.Tags = &tags
		return ""
	},
	"summary": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		p.Summary = &v
		return ""
	},
	"reply": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		p.Reply = &v
		return ""
	},
	"suggestion": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		p.Suggestion = &v
		return ""
	},
	"urgency": func(raw json.RawMessage, p *domain.FeedbackPatch) string {
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return "must be a string"
		}
		u := domain.Urgency(strings.ToLower(strings.TrimSpace(v)))
		if !u.IsValid() {
			return "must be urgent, normal, low or unknown"
		}
		p.Urgency = &u
		return ""
	},
}

var immutableFields = []string{"id", "text"}

// buildPatch converts a JSON object into a typed patch. Null values are
// skipped. Immutable and unknown keys are rejected.
func buildPatch(fields map[string]json.RawMessage) (domain.FeedbackPatch, []string, error) {
	var (
		patch   domain.FeedbackPatch
		changed []string
		errs    []domain.FieldError
	)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		raw := fields[key]
		if slices.Contains(immutableFields, key) {
			errs = append(errs, domain.FieldError{Field: key, Message: "immutable"})
			continue
		}
		set, ok := setters[key]
		if !ok {
			errs = append(errs, domain.FieldError{Field: key, Message: "unknown field"})
			continue
		}
		if isNull(raw) {
			continue
		}
		if msg := set(raw, &patch); msg != "" {
			errs = append(errs, domain.FieldError{Field: key, Message: msg})
			continue
		}
		changed = append(changed, key)
	}

	if len(errs) > 0 {
		return domain.FeedbackPatch{}, nil, domain.NewValidationErrors(errs)
	}
	return patch, changed, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
