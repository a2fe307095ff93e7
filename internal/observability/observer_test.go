package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []observability.Event
}

func (that *recorder) OnEvent(_ context.Context, event observability.Event) {
	that.events = append(that.events, event)
}

func TestNewEvent(t *testing.T) {
	t.Run("Carries a copy of the session state", func(t *testing.T) {
		// Given: a session with one mark
		session := entity.NewSession("s1")
		_, err := session.PlaceMark(4)
		require.NoError(t, err)

		// When: an event is built and the session keeps changing
		event := observability.NewEvent(observability.EventMarkPlaced, session.ID(), session, nil)
		_, err = session.PlaceMark(0)
		require.NoError(t, err)

		// Then: the event still shows the state at emission time
		require.NotNil(t, event.Snapshot)
		assert.Equal(t, entity.MarkO, event.Snapshot.Board[4])
		assert.Equal(t, entity.MarkEmpty, event.Snapshot.Board[0])
		assert.Equal(t, "s1", event.SessionID)
		assert.False(t, event.Timestamp.IsZero())
	})

	t.Run("Nil session gives no snapshot", func(t *testing.T) {
		// When: an unmount event is built
		event := observability.NewEvent(observability.EventSessionUnmounted, "s1", nil, nil)

		// Then: it has no snapshot
		assert.Nil(t, event.Snapshot)
	})
}

func TestMultiObserver(t *testing.T) {
	// Given: two recorders and a nil observer
	first, second := &recorder{}, &recorder{}
	multi := observability.NewMultiObserver(first, nil, second)

	// When: an event is emitted
	multi.OnEvent(context.Background(), observability.NewEvent(observability.EventSessionReset, "s1", nil, nil))

	// Then: both recorders receive it
	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.Equal(t, observability.EventSessionReset, second.events[0].Type)
}

func TestNoOpObserver(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NoOpObserver{}.OnEvent(context.Background(), observability.Event{})
	})
}

func TestSlogObserver(t *testing.T) {
	// Given: a slog observer writing JSON into a buffer
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	session := entity.NewSession("s1")

	// When: a placement event is observed
	obs.OnEvent(context.Background(), observability.NewEvent(observability.EventMarkPlaced, "s1", session, map[string]any{"cell": 3}))

	// Then: one record with the event type as message is written
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "session.mark.placed", record["msg"])
	assert.Equal(t, "s1", record["sessionID"])
	assert.Equal(t, "in_progress", record["outcome"])
	assert.Equal(t, "observer", record["component"])
	assert.InDelta(t, 3, record["cell"], 0)
}

func TestEventType_Level(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.EventMarkRejected.Level())
	assert.Equal(t, slog.LevelInfo, observability.EventSessionWon.Level())
}
