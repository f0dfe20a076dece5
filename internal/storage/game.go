package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/repository"
)

// GameStorage provides in-memory storage for game sessions by chat ID.
type GameStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.GameSession
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		sessions: make(map[int64]*entities.GameSession),
	}
}

// Get returns a copy of the session for the chat.
func (s *GameStorage) Get(_ context.Context, chatID int64) (*entities.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return session.Clone(), nil
}

// Save stores a copy of the session if its version matches the stored one
// and bumps the version on both.
func (s *GameStorage) Save(_ context.Context, session *entities.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[session.ChatID]
	if ok && current.Version != session.Version {
		return repository.ErrOptimisticLock
	}

	session.Version++
	s.sessions[session.ChatID] = session.Clone()
	return nil
}

// Delete removes the session for the chat.
func (s *GameStorage) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

// EvictIdle removes sessions not updated since cutoff and returns how many were removed.
func (s *GameStorage) EvictIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for chatID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, chatID)
			evicted++
		}
	}
	return evicted, nil
}
