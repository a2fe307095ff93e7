// Package observability carries session events from the game manager to
// whoever renders or records them: logs, live websocket views, tests.
package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacecowboywalk/tictactoe/internal/entity"
)

type EventType string

const (
	EventSessionMounted   EventType = "session.mounted"
	EventMarkPlaced       EventType = "session.mark.placed"
	EventMarkRejected     EventType = "session.mark.rejected"
	EventSessionWon       EventType = "session.won"
	EventSessionDraw      EventType = "session.draw"
	EventSessionReset     EventType = "session.reset"
	EventSessionUnmounted EventType = "session.unmounted"
)

// Level returns the log level an event of this type is emitted at.
func (that EventType) Level() slog.Level {
	switch that {
	case EventMarkRejected:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Event describes one change of a session. Snapshot is nil for unmount.
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID string
	Snapshot  *entity.Snapshot
	Data      map[string]any
}

// NewEvent stamps an event for session. A nil session yields an event
// without a snapshot.
func NewEvent(eventType EventType, sessionID string, session *entity.Session, data map[string]any) Event {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		SessionID: sessionID,
		Data:      data,
	}

	if session != nil {
		snapshot := session.Snapshot()
		event.Snapshot = &snapshot
	}

	return event
}

// Observer receives session events.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
