package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/internal/render"
)

var errCellRequired = errors.New("cell is required")

func (that *Server) handlePlace(ctx context.Context, sessionID string, msg *Message) (Message, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return Message{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Cell == nil {
		return Message{}, errCellRequired
	}

	session, placement, err := that.games.PlaceMark(ctx, sessionID, *payloadReq.Cell)
	if err != nil {
		return Message{}, err
	}

	view := viewOf(session).WithPlacement(placement)

	return newMessage(msg.Action, Payload{Session: &view})
}

func (that *Server) handleReset(ctx context.Context, sessionID string, msg *Message) (Message, error) {
	session, err := that.games.Reset(ctx, sessionID)
	if err != nil {
		return Message{}, err
	}

	view := viewOf(session)

	return newMessage(msg.Action, Payload{Session: &view})
}

func viewOf(session *entity.Session) render.View {
	return render.NewView(session.Snapshot())
}
