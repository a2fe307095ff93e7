package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/render"
)

const (
	actionState = "session:state"
	actionPlace = "session:place"
	actionReset = "session:reset"
	actionError = "session:error"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Session *render.View `json:"session,omitempty"`
	Cell    *int         `json:"cell,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return Message{Action: action, Payload: raw}, nil
}

func stateMessage(view render.View) (Message, error) {
	return newMessage(actionState, Payload{Session: &view})
}
