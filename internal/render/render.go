// Package render turns session snapshots into what players see: the win or
// draw banner, the score line and the JSON view served by the transports.
package render

import (
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/entity"
)

const drawBanner = "EVERYBODY WINS!"

// Banner returns the end-of-game text, empty while the game is running.
func Banner(outcome entity.Outcome) string {
	if winner, ok := outcome.WonBy(); ok {
		return string(winner) + " WINS!"
	}

	if outcome.IsDraw() {
		return drawBanner
	}

	return ""
}

func Scoreboard(scores entity.Scores) string {
	return fmt.Sprintf("X: %d  scoreboard  O: %d", scores.X, scores.O)
}

// View is a snapshot decorated with its presentation strings.
type View struct {
	entity.Snapshot

	Banner     string            `json:"banner"`
	Scoreboard string            `json:"scoreboard"`
	Placement  *entity.Placement `json:"placement,omitempty"`
}

func NewView(snapshot entity.Snapshot) View {
	return View{
		Snapshot:   snapshot,
		Banner:     Banner(snapshot.Outcome),
		Scoreboard: Scoreboard(snapshot.Scores),
	}
}

// WithPlacement attaches the result of the click that produced the view.
func (that View) WithPlacement(placement entity.Placement) View {
	that.Placement = &placement
	return that
}
