package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/spacecowboywalk/tictactoe/internal/observability"
	"github.com/spacecowboywalk/tictactoe/internal/render"
)

const subscriberBuffer = 16

type subscriber struct {
	messages chan Message
}

// Broadcaster fans session state out to live connections. It is an
// observability.Observer; OnEvent never blocks, a subscriber that falls
// behind loses messages.
type Broadcaster struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[string]map[*subscriber]struct{}
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger:      logger.With("component", "broadcaster"),
		subscribers: make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe registers for state updates of a session. The channel is closed
// when the session is unmounted or cancel is called.
func (that *Broadcaster) Subscribe(sessionID string) (<-chan Message, func()) {
	sub := &subscriber{messages: make(chan Message, subscriberBuffer)}

	that.mu.Lock()
	if that.subscribers[sessionID] == nil {
		that.subscribers[sessionID] = make(map[*subscriber]struct{})
	}
	that.subscribers[sessionID][sub] = struct{}{}
	that.mu.Unlock()

	cancel := func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		subs, ok := that.subscribers[sessionID]
		if !ok {
			return
		}
		if _, ok = subs[sub]; !ok {
			return
		}

		delete(subs, sub)
		close(sub.messages)

		if len(subs) == 0 {
			delete(that.subscribers, sessionID)
		}
	}

	return sub.messages, cancel
}

func (that *Broadcaster) OnEvent(_ context.Context, event observability.Event) {
	switch event.Type {
	case observability.EventMarkPlaced, observability.EventSessionReset:
		that.publish(event)
	case observability.EventSessionUnmounted:
		that.closeSession(event.SessionID)
	default:
	}
}

func (that *Broadcaster) publish(event observability.Event) {
	if event.Snapshot == nil {
		return
	}

	msg, err := stateMessage(render.NewView(*event.Snapshot))
	if err != nil {
		that.logger.Error("failed to build state message", "sessionID", event.SessionID, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subscribers[event.SessionID] {
		select {
		case sub.messages <- msg:
		default:
			that.logger.Warn("subscriber is falling behind, dropping update", "sessionID", event.SessionID)
		}
	}
}

func (that *Broadcaster) closeSession(sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subscribers[sessionID] {
		close(sub.messages)
	}

	delete(that.subscribers, sessionID)
}
