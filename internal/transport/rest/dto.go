package rest

import (
	"time"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

type feedbackResponse struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Sentiment  string    `json:"sentiment"`
	Tags       []string  `json:"tags"`
	Summary    string    `json:"summary"`
	Reply      *string   `json:"reply"`
	Suggestion *string   `json:"suggestion"`
	Urgency    *string   `json:"urgency"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toFeedbackResponse(f *domain.Feedback) feedbackResponse {
	resp := feedbackResponse{
		ID:         f.ID.String(),
		Author:     f.Author,
		Text:       f.Text,
		Timestamp:  f.Timestamp,
		Sentiment:  f.Sentiment.String(),
		Tags:       f.Tags,
		Summary:    f.Summary,
		Reply:      f.Reply,
		Suggestion: f.Suggestion,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if f.Urgency != nil {
		u := f.Urgency.String()
		resp.Urgency = &u
	}
	return resp
}

func toFeedbackList(items []domain.Feedback) []feedbackResponse {
	out := make([]feedbackResponse, len(items))
	for i := range items {
		out[i] = toFeedbackResponse(&items[i])
	}
	return out
}

type trendResponse struct {
	Author     string   `json:"author"`
	History    []string `json:"history"`
	Conclusion string   `json:"conclusion"`
}

type sentimentShareResponse struct {
	Sentiment  string  `json:"sentiment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type summaryResponse struct {
	Total  int                      `json:"total"`
	Shares []sentimentShareResponse `json:"shares"`
}

type authorBreakdownResponse struct {
	Author string         `json:"author"`
	Counts map[string]int `json:"counts"`
}

type activityResponse struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type recentResponse struct {
	Author    string    `json:"author"`
	Sentiment string    `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

type wordResponse struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

type lengthEntry struct {
	Feedback feedbackResponse `json:"feedback"`
	Chars    int              `json:"chars"`
}

type lengthsResponse struct {
	Shortest lengthEntry `json:"shortest"`
	Longest  lengthEntry `json:"longest"`
}

type dailyResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

type auditResponse struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"userId"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toAuditResponse(r domain.AuditRecord) auditResponse {
	out := auditResponse{
		ID:        r.ID.String(),
		Action:    string(r.Action),
		Changes:   r.Changes,
		CreatedAt: r.CreatedAt,
	}
	if r.UserID != nil {
		s := r.UserID.String()
		out.UserID = &s
	}
	return out
}
