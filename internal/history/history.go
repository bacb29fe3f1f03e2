// Package history manages session conversation history with a
// write-through cache in front of durable storage.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/junglore/chat-engine/internal/cache"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// SessionStore is the slice of the session repository the store needs.
type SessionStore interface {
	GetForUser(ctx context.Context, sessionID, userID string) (*storage.ChatSession, error)
	UpdateHistory(ctx context.Context, sessionID string, history []storage.Message) error
}

// Store reads and writes session history. Reads prefer the cache; writes
// go to durable storage first, then refresh the cache.
type Store struct {
	sessions SessionStore
	cache    cache.Client
	ttl      time.Duration
	limit    int
	logger   *observability.Logger
}

// NewStore creates a history store. limit caps how many trailing messages
// a session retains.
func NewStore(sessions SessionStore, cacheClient cache.Client, ttl time.Duration, limit int, logger *observability.Logger) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if limit <= 0 {
		limit = 10
	}
	return &Store{
		sessions: sessions,
		cache:    cacheClient,
		ttl:      ttl,
		limit:    limit,
		logger:   logger.WithComponent("history"),
	}
}

// Limit returns the maximum retained history length.
func (s *Store) Limit() int { return s.limit }

// Get returns the session's history, newest last. Cache hits skip the
// database entirely; misses fall through to durable storage and repopulate
// the cache. A missing session yields storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, sessionID, userID string) ([]storage.Message, error) {
	key := cache.SessionHistoryKey(sessionID)

	data, err := s.cache.Get(ctx, key)
	if err == nil {
		var history []storage.Message
		if jsonErr := json.Unmarshal(data, &history); jsonErr == nil {
			return history, nil
		}
		// Corrupt cache entry; fall through to durable storage.
		s.logger.Warn().
			Str("session_id", sessionID).
			Msg("Discarding unreadable cached history")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().
			Str("session_id", sessionID).
			Err(err).
			Msg("Cache read failed, falling back to database")
	}

	session, err := s.sessions.GetForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	history := truncate(session.History, s.limit)
	s.populateCache(ctx, key, history, sessionID)
	return history, nil
}

// Put persists the history, truncated to the retention limit. Both writes
// must succeed: the durable store is authoritative, but a failed cache
// write would leave a stale entry feeding the next turn's context, so it
// surfaces as an error too.
func (s *Store) Put(ctx context.Context, sessionID, userID string, history []storage.Message) error {
	history = truncate(history, s.limit)

	if err := s.sessions.UpdateHistory(ctx, sessionID, history); err != nil {
		return fmt.Errorf("update session history: %w", err)
	}

	if err := s.writeCache(ctx, cache.SessionHistoryKey(sessionID), history, sessionID); err != nil {
		return fmt.Errorf("cache session history: %w", err)
	}
	return nil
}

func (s *Store) populateCache(ctx context.Context, key string, history []storage.Message, sessionID string) {
	if err := s.writeCache(ctx, key, history, sessionID); err != nil {
		s.logger.Warn().
			Str("session_id", sessionID).
			Err(err).
			Msg("Cache write failed")
	}
}

func (s *Store) writeCache(ctx context.Context, key string, history []storage.Message, sessionID string) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.cache.Set(ctx, key, data, s.ttl)
}

func truncate(history []storage.Message, limit int) []storage.Message {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
