package annotation

import (
	"strings"

	"github.com/heartmarshall/feedback-backend/internal/adapter/llm"
	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// parseClassification validates a classification answer. Every field must
// be usable, otherwise ok is false and the caller substitutes the fallback.
func parseClassification(raw string) (cls domain.Classification, ok bool) {
	var out classificationOutput
	if err := llm.DecodeJSON(raw, &out); err != nil {
		return domain.Classification{}, false
	}

	sentiment, ok := domain.ParseSentiment(out.Sentiment)
	if !ok {
		return domain.Classification{}, false
	}

	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return domain.Classification{}, false
	}

	return domain.Classification{
		Sentiment: sentiment,
		Tags:      cleanTags(out.Tags),
		Summary:   summary,
	}, true
}

// cleanTags trims tags, drops empties and duplicates and caps the count at
// MaxTags. Commas are replaced because they delimit the storage form.
func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", " "))
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, t)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

func parseToxicity(raw string) (domain.Toxicity, bool) {
	var out toxicityOutput
	if err := llm.DecodeJSON(raw, &out); err != nil || out.Toxic == nil {
		return domain.Toxicity{}, false
	}
	return domain.Toxicity{Toxic: out.Toxic, Reason: strings.TrimSpace(out.Reason)}, true
}

func toxicityFallbackReason(raw string) string {
	return "could not interpret response: " + raw
}
