package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors.
var (
	ErrNotFound = errors.New("record not found")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// UserRepository handles user CRUD operations.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user.
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	query := `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM users WHERE id = $1
	`
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

// SessionRepository handles chat session CRUD operations.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new chat session with an empty history.
func (r *SessionRepository) Create(ctx context.Context, session *ChatSession) error {
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	if session.Title == "" {
		session.Title = "New Chat"
	}
	session.CreatedAt = time.Now()

	historyJSON, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	query := `
		INSERT INTO chatbot_sessions (session_id, user_id, title, history, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query,
		session.SessionID, session.UserID, session.Title, historyJSON, session.CreatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*ChatSession, error) {
	query := `
		SELECT session_id, user_id, title, history, created_at
		FROM chatbot_sessions WHERE session_id = $1
	`
	return r.scanSession(r.db.QueryRowContext(ctx, query, sessionID))
}

// GetForUser retrieves a session scoped to its owning user.
func (r *SessionRepository) GetForUser(ctx context.Context, sessionID, userID string) (*ChatSession, error) {
	query := `
		SELECT session_id, user_id, title, history, created_at
		FROM chatbot_sessions WHERE session_id = $1 AND user_id = $2
	`
	return r.scanSession(r.db.QueryRowContext(ctx, query, sessionID, userID))
}

// ListByUser lists sessions owned by a user, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*ChatSession, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT session_id, user_id, title, history, created_at
		FROM chatbot_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*ChatSession
	for rows.Next() {
		session, err := r.scanSessionRows(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// UpdateHistory replaces a session's stored history. The caller is
// responsible for truncation; this writes whatever it is given.
func (r *SessionRepository) UpdateHistory(ctx context.Context, sessionID string, history []Message) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	query := `UPDATE chatbot_sessions SET history = $1 WHERE session_id = $2`
	result, err := r.db.ExecContext(ctx, query, historyJSON, sessionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SessionRepository) scanSession(row *sql.Row) (*ChatSession, error) {
	session := &ChatSession{}
	var historyJSON []byte
	err := row.Scan(
		&session.SessionID, &session.UserID, &session.Title, &historyJSON, &session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalHistory(historyJSON, &session.History); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) scanSessionRows(rows *sql.Rows) (*ChatSession, error) {
	session := &ChatSession{}
	var historyJSON []byte
	if err := rows.Scan(
		&session.SessionID, &session.UserID, &session.Title, &historyJSON, &session.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalHistory(historyJSON, &session.History); err != nil {
		return nil, err
	}
	return session, nil
}

func unmarshalHistory(data []byte, history *[]Message) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, history); err != nil {
		return fmt.Errorf("unmarshal history: %w", err)
	}
	return nil
}

// ArticleRepository provides read-only access to published editorial content.
type ArticleRepository struct {
	db DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SearchPublished returns published articles whose title, excerpt, or body
// contains the term (case-insensitive), newest first with null publish
// dates last.
func (r *ArticleRepository) SearchPublished(ctx context.Context, term string, limit int) ([]Article, error) {
	query := `
		SELECT id, title, slug, COALESCE(excerpt, ''), COALESCE(author_name, ''),
			COALESCE(featured_image, ''), type, COALESCE(view_count, 0), published_at
		FROM content
		WHERE status = 'PUBLISHED'
		AND (title ILIKE $1 OR excerpt ILIKE $1 OR content ILIKE $1)
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

// RecentPublished returns the most recently published articles.
func (r *ArticleRepository) RecentPublished(ctx context.Context, limit int) ([]Article, error) {
	query := `
		SELECT id, title, slug, COALESCE(excerpt, ''), COALESCE(author_name, ''),
			COALESCE(featured_image, ''), type, COALESCE(view_count, 0), published_at
		FROM content
		WHERE status = 'PUBLISHED'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Author,
			&a.Image, &a.Type, &a.ViewCount, &a.PublishedAt,
		); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
