package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	replyQueue = 8

	closeReasonUnmounted = "session unmounted"
)

type gameManager interface {
	Session(ctx context.Context, id string) (*entity.Session, error)
	PlaceMark(ctx context.Context, id string, cell int) (*entity.Session, entity.Placement, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) (Message, error)

// Server upgrades GET /sessions/{id}/live and keeps the client in sync with
// the session it was opened for.
type Server struct {
	logger      *slog.Logger
	games       gameManager
	broadcaster *Broadcaster
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager, broadcaster *Broadcaster) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		games:       games,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionPlace: server.handlePlace,
		actionReset: server.handleReset,
	}

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	log := that.logger.With("method", "ServeHTTP", "sessionID", sessionID)

	// Subscribe first so that no change between the read and the upgrade is
	// lost.
	updates, unsubscribe := that.broadcaster.Subscribe(sessionID)
	defer unsubscribe()

	session, err := that.games.Session(r.Context(), sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, apperror.ErrSessionNotFound.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("live connection established")

	initial, err := stateMessage(viewOf(session))
	if err != nil {
		log.Error("failed to build state message", "error", err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(initial); err != nil {
		log.Debug("failed to write initial state", "error", err)
		return
	}

	replies := make(chan Message, replyQueue)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		that.writeLoop(conn, sessionID, updates, replies, stop)
	}()

	that.readLoop(r.Context(), conn, sessionID, replies, done)

	close(stop)
	<-done

	log.Info("live connection closed")
}

// readLoop dispatches client messages until the connection fails or the
// writer stops.
func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, sessionID string, replies chan<- Message, done <-chan struct{}) {
	log := that.logger.With("method", "readLoop", "sessionID", sessionID)

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		reply, err := that.dispatch(ctx, sessionID, &msg)
		if err != nil {
			log.Debug("message failed", "action", msg.Action, "error", err)
			reply, err = newMessage(actionError, Payload{Error: err.Error()})
			if err != nil {
				log.Error("failed to build error message", "error", err)
				continue
			}
		}

		select {
		case replies <- reply:
		case <-done:
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sessionID string, msg *Message) (Message, error) {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return Message{}, fmt.Errorf("unknown action %q", msg.Action)
	}

	return handler(ctx, sessionID, msg)
}

// writeLoop is the only writer of conn once the initial state is sent. It
// closes conn on exit so that the reader unblocks. updates is closed only by
// the broadcaster, when the session is unmounted; stop is closed when the
// reader is gone.
func (that *Server) writeLoop(conn *websocket.Conn, sessionID string, updates <-chan Message, replies <-chan Message, stop <-chan struct{}) {
	log := that.logger.With("method", "writeLoop", "sessionID", sessionID)

	defer conn.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var msg Message

		select {
		case update, ok := <-updates:
			if !ok {
				log.Info("session unmounted, closing live connection")
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeReasonUnmounted))
				return
			}
			msg = update
		case msg = <-replies:
		case <-stop:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("failed to write message", "action", msg.Action, "error", err)
			return
		}
	}
}
