package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxAuthorLength = 200
	MaxTextLength   = 5000

	// tagSeparator joins tags in their storage form.
	tagSeparator = ","
)

// Feedback is a free-text comment together with its AI-derived annotations.
// Sentiment, Tags and Summary are set once at creation. Reply, Suggestion
// and Urgency are filled lazily by the enrichment operations.
type Feedback struct {
	ID         uuid.UUID
	Author     string
	Text       string
	Timestamp  time.Time
	Sentiment  Sentiment
	Tags       []string
	Summary    string
	Reply      *string
	Suggestion *string
	Urgency    *Urgency
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FeedbackPatch carries the mutable fields of a partial update.
// Nil pointers are left untouched.
type FeedbackPatch struct {
	Author     *string
	Timestamp  *time.Time
	Sentiment  *Sentiment
	Tags       *[]string
	Summary    *string
	Reply      *string
	Suggestion *string
	Urgency    *Urgency
}

// IsEmpty reports whether the patch sets no field.
func (p FeedbackPatch) IsEmpty() bool {
	return p.Author == nil && p.Timestamp == nil && p.Sentiment == nil && p.Tags == nil &&
		p.Summary == nil && p.Reply == nil && p.Suggestion == nil && p.Urgency == nil
}

// FeedbackFilter holds optional, conjunctive predicates for listing feedback.
// From and To are calendar dates; both bounds are inclusive.
type FeedbackFilter struct {
	Author    *string
	From      *time.Time
	To        *time.Time
	Sentiment *Sentiment
	Urgency   *Urgency
}

// Classification is the creation-time annotation of a comment.
// Degraded is set when the fallback value was substituted.
type Classification struct {
	Sentiment Sentiment
	Tags      []string
	Summary   string
	Degraded  bool
}

// Toxicity is computed on demand and never persisted.
// Toxic is nil when the model answer could not be interpreted.
type Toxicity struct {
	Toxic    *bool
	Reason   string
	Degraded bool
}

// Trend is the sentiment trajectory of one author.
type Trend struct {
	Author     string
	History    []Sentiment
	Conclusion string
}

// JoinTags converts tags into their comma-joined storage form.
func JoinTags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, tagSeparator)
}

// ParseTags is the inverse of JoinTags. An empty string yields an empty slice.
func ParseTags(stored string) []string {
	tags := []string{}
	if strings.TrimSpace(stored) == "" {
		return tags
	}
	for _, t := range strings.Split(stored, tagSeparator) {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
