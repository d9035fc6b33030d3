package analytics

import (
	"sort"
	"strings"
	"unicode"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// stopWords is the fixed Spanish and English stop-word set.
var stopWords = toSet(
	// es
	"a", "al", "algo", "ante", "antes", "como", "con", "contra", "cual", "cuando", "de", "del",
	"desde", "donde", "durante", "e", "el", "ella", "ellas", "ellos", "en", "entre", "era", "es",
	"esa", "ese", "eso", "esta", "está", "estaba", "este", "esto", "estos", "fue", "ha", "hay",
	"la", "las", "le", "les", "lo", "los", "mas", "más", "me", "mi", "muy", "nada", "ni", "no",
	"nos", "o", "para", "pero", "por", "porque", "que", "qué", "se", "sea", "ser", "si", "sí",
	"sin", "sobre", "son", "su", "sus", "también", "tan", "te", "tiene", "todo", "todos", "tu",
	"un", "una", "uno", "unos", "y", "ya", "yo",
	// en
	"about", "after", "all", "also", "am", "an", "and", "any", "are", "as", "at", "be", "been",
	"but", "by", "can", "could", "did", "do", "does", "for", "from", "had", "has", "have", "he",
	"her", "his", "how", "i", "if", "in", "into", "is", "it", "its", "just", "more", "my", "not",
	"of", "on", "or", "our", "she", "so", "than", "that", "the", "their", "them", "then", "there",
	"these", "they", "this", "to", "too", "us", "very", "was", "we", "were", "what", "when",
	"which", "who", "will", "with", "would", "you", "your",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether w (already lower-cased) is ignored by TopWords.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Tokenize lower-cases text, drops every rune that is not a letter, a
// digit or whitespace, and splits on whitespace. Accented letters are kept.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}

// TopWords counts the non stop-words of texts and returns the limit most
// frequent ones. Ties keep the order in which words were first seen.
func TopWords(texts []string, limit int) []domain.WordFrequency {
	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		for _, w := range Tokenize(text) {
			if IsStopWord(w) {
				continue
			}
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	out := make([]domain.WordFrequency, len(order))
	for i, w := range order {
		out[i] = domain.WordFrequency{Word: w, Frequency: counts[w]}
	}
	return out
}
