package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/observability"
)

const lockShards = 64

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager mounts sessions for presentation layers and applies their
// intents. Operations on one session id are serialised; the engine itself
// never sees concurrent calls.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	observer    observability.Observer

	locks [lockShards]sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, observer observability.Observer) *GameManager {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		observer:    observer,
	}
}

// Mount creates a fresh session under a new id.
func (that *GameManager) Mount(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.notify(ctx, observability.EventSessionMounted, session.ID(), session, nil)

	return session, nil
}

func (that *GameManager) Session(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// PlaceMark applies a click on cell. Rejected placements are returned with a
// nil error and are not saved.
func (that *GameManager) PlaceMark(ctx context.Context, id string, cell int) (*entity.Session, entity.Placement, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.Session(ctx, id)
	if err != nil {
		return nil, entity.PlacementInvalid, err
	}

	placement, err := session.PlaceMark(cell)
	if err != nil {
		return session, placement, fmt.Errorf("failed to place mark: %w", err)
	}

	if !placement.Accepted() {
		that.notify(ctx, observability.EventMarkRejected, id, session, map[string]any{
			"cell":   cell,
			"reason": placement.String(),
		})

		return session, placement, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, entity.PlacementInvalid, err
	}

	that.notify(ctx, observability.EventMarkPlaced, id, session, map[string]any{"cell": cell})

	outcome := session.Outcome()
	switch {
	case outcome.IsDraw():
		that.notify(ctx, observability.EventSessionDraw, id, session, nil)
	case outcome.IsTerminal():
		that.notify(ctx, observability.EventSessionWon, id, session, map[string]any{"winner": string(outcome.Winner)})
	}

	return session, placement, nil
}

// Reset starts a new game in the session, keeping its scores.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.Session(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Reset()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.notify(ctx, observability.EventSessionReset, id, session, nil)

	return session, nil
}

// Unmount destroys the session.
func (that *GameManager) Unmount(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.notify(ctx, observability.EventSessionUnmounted, id, nil, nil)

	return nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		that.logger.Error("failed to save session", "method", "updateSession", "sessionID", session.ID(), "error", err)
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *GameManager) notify(ctx context.Context, eventType observability.EventType, id string, session *entity.Session, data map[string]any) {
	that.observer.OnEvent(ctx, observability.NewEvent(eventType, id, session, data))
}

func (that *GameManager) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	mu := &that.locks[h.Sum32()%lockShards]
	mu.Lock()

	return mu.Unlock
}
