package entity

import (
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

// Outcome is InProgress, Won(mark) or Draw. Winner is set only when Status is
// StatusWon.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Won(mark Mark) Outcome {
	return Outcome{Status: StatusWon, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}

// IsTerminal reports whether the game is over and only a reset can continue it.
func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// WonBy returns the winning mark of a won game.
func (that Outcome) WonBy() (Mark, bool) {
	if that.Status != StatusWon {
		return MarkEmpty, false
	}
	return that.Winner, true
}

func (that Outcome) String() string {
	if winner, ok := that.WonBy(); ok {
		return "won(" + string(winner) + ")"
	}
	return that.Status
}

// Scores counts games won per mark across resets.
type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

// Of returns the win count of mark.
func (that Scores) Of(mark Mark) int {
	switch mark {
	case MarkX:
		return that.X
	case MarkO:
		return that.O
	default:
		return 0
	}
}

func (that *Scores) add(mark Mark) {
	switch mark {
	case MarkX:
		that.X++
	case MarkO:
		that.O++
	}
}

// Placement tells the caller what PlaceMark did with the request.
type Placement int

const (
	PlacementInvalid Placement = iota
	PlacementAccepted
	PlacementCellOccupied
	PlacementGameOver
)

func (that Placement) Accepted() bool {
	return that == PlacementAccepted
}

// Err maps a rejected placement to its sentinel error, nil when accepted.
func (that Placement) Err() error {
	switch that {
	case PlacementAccepted:
		return nil
	case PlacementCellOccupied:
		return apperror.ErrCellOccupied
	case PlacementGameOver:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrInvalidCell
	}
}

func (that Placement) String() string {
	switch that {
	case PlacementAccepted:
		return "accepted"
	case PlacementCellOccupied:
		return "cell_occupied"
	case PlacementGameOver:
		return "game_over"
	default:
		return "invalid"
	}
}

func (that Placement) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Placement) UnmarshalText(text []byte) error {
	for _, placement := range []Placement{PlacementInvalid, PlacementAccepted, PlacementCellOccupied, PlacementGameOver} {
		if placement.String() == string(text) {
			*that = placement
			return nil
		}
	}

	return fmt.Errorf("unknown placement %q", text)
}
