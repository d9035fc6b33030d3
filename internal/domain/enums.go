package domain

import "strings"

// Sentiment is the three-way polarity assigned to a feedback record at creation.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every sentiment label in reporting order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

func (s Sentiment) String() string { return string(s) }

func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// ParseSentiment normalizes a label produced by a model or a client.
// Spanish labels are accepted and mapped to their English counterparts.
func ParseSentiment(raw string) (Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "positivo":
		return SentimentPositive, true
	case "neutral", "neutro":
		return SentimentNeutral, true
	case "negative", "negativo":
		return SentimentNegative, true
	}
	return "", false
}

// Urgency is the lazily computed priority of a feedback record.
type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyNormal Urgency = "normal"
	UrgencyLow    Urgency = "low"

	// UrgencyUnknown marks a model answer outside the closed label set.
	UrgencyUnknown Urgency = "unknown"
)

func (u Urgency) String() string { return string(u) }

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyUrgent, UrgencyNormal, UrgencyLow, UrgencyUnknown:
		return true
	}
	return false
}

// ParseUrgency lower-cases and trims raw before matching. Anything outside
// the label set maps to UrgencyUnknown and ok=false.
func ParseUrgency(raw string) (u Urgency, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urgent", "urgente":
		return UrgencyUrgent, true
	case "normal":
		return UrgencyNormal, true
	case "low", "baja":
		return UrgencyLow, true
	case "unknown":
		return UrgencyUnknown, true
	}
	return UrgencyUnknown, false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeFeedback EntityType = "FEEDBACK"
	EntityTypeUser     EntityType = "USER"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeFeedback, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionEnrich AuditAction = "ENRICH"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionEnrich:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
