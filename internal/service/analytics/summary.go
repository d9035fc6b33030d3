package analytics

import (
	"math"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// Summarize turns raw per-label counters into a distribution covering every
// sentiment label. Percentages are rounded to two decimals; an empty corpus
// reports zero for every label.
func Summarize(counts []domain.SentimentCount) domain.SentimentSummary {
	byLabel := make(map[domain.Sentiment]int, len(domain.Sentiments))
	total := 0
	for _, c := range counts {
		byLabel[c.Sentiment] += c.Count
		total += c.Count
	}

	shares := make([]domain.SentimentShare, len(domain.Sentiments))
	for i, label := range domain.Sentiments {
		n := byLabel[label]
		shares[i] = domain.SentimentShare{
			Sentiment:  label,
			Count:      n,
			Percentage: percentage(n, total),
		}
	}
	return domain.SentimentSummary{Total: total, Shares: shares}
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
