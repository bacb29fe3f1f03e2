// Package storage provides database models and repositories for the
// conversation engine.
package storage

import "time"

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single conversation turn. Immutable once appended to history.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// User maps to the shared users table.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatSession maps to the chatbot_sessions table. History holds the full
// conversation as JSON; the cache layer only ever sees the most recent
// suffix of it.
type ChatSession struct {
	SessionID string
	UserID    string
	Title     string
	History   []Message
	CreatedAt time.Time
}

// Article is a published editorial item (blog post, case study, podcast)
// from the content table. Read-only for this service.
type Article struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Author      string
	Image       string
	Type        string
	ViewCount   int
	PublishedAt *time.Time
}

// Package is an expedition or resort offering from the document store.
// The raw documents are schema-less; Normalize applies defaults once at
// the store boundary so the rest of the engine sees typed values.
type Package struct {
	ID               string
	Title            string
	Description      string
	Heading          string
	Region           string
	Location         string
	Slug             string
	Duration         string
	Type             string
	Price            float64
	Currency         string
	Image            string
	AdditionalImages []string
	Features         map[string]string
	Dates            []string
	Status           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
