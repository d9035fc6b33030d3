package domain

import "time"

// SentimentShare is the count and percentage of one sentiment label.
type SentimentShare struct {
	Sentiment  Sentiment
	Count      int
	Percentage float64
}

// SentimentSummary is the corpus-wide sentiment distribution.
type SentimentSummary struct {
	Total  int
	Shares []SentimentShare
}

// SentimentCount is a raw per-label counter as returned by the store.
type SentimentCount struct {
	Sentiment Sentiment
	Count     int
}

// AuthorBreakdown counts one author's records per sentiment.
type AuthorBreakdown struct {
	Author string
	Counts map[Sentiment]int
}

// AuthorActivity is one row of the activity ranking.
type AuthorActivity struct {
	Author string
	Count  int
}

// RecentFeedback is a compact projection used by the recency feed.
type RecentFeedback struct {
	Author    string
	Sentiment Sentiment
	Timestamp time.Time
	Text      string
}

// WordFrequency is one row of the lexical frequency report.
type WordFrequency struct {
	Word      string
	Frequency int
}

// CommentLengths holds the shortest and the longest comment of the corpus.
type CommentLengths struct {
	Shortest      Feedback
	ShortestChars int
	Longest       Feedback
	LongestChars  int
}

// DailyVolume is the record count of one calendar day (UTC).
type DailyVolume struct {
	Date  time.Time
	Count int
}
