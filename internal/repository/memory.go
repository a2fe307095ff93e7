package repository

import (
	"context"
	"sync"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
)

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]entity.Snapshot
}

// NewMemorySessionRepository keeps sessions in process memory. Callers get
// their own copy on every read.
func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]entity.Snapshot),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID()] = session.Snapshot()

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	snapshot, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return entity.RestoreSession(snapshot)
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
