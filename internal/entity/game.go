package entity

import (
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a cell, or the symbol of a player.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"

	// FirstTurn is the mark that moves first in every game.
	FirstTurn = MarkO
)

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Board holds the cells in row-major order.
type Board [BoardSize]Mark

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == MarkEmpty {
			return false
		}
	}

	return true
}

// DetermineOutcome derives the outcome from the board alone. Triples are
// checked in WinCombos order and the first complete one wins.
func DetermineOutcome(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != MarkEmpty && a == b && b == c {
			return Won(a)
		}
	}

	if board.IsFull() {
		return Draw()
	}

	return InProgress()
}

// Session is one mounted game: board, turn, outcome and the scores that
// survive resets. A Session is not safe for concurrent use.
type Session struct {
	id      string
	board   Board
	turn    Mark
	outcome Outcome
	scores  Scores
}

func NewSession(id string) *Session {
	return &Session{
		id:      id,
		turn:    FirstTurn,
		outcome: InProgress(),
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Board() Board {
	return that.board
}

func (that *Session) Turn() Mark {
	return that.turn
}

func (that *Session) Outcome() Outcome {
	return that.outcome
}

func (that *Session) Scores() Scores {
	return that.scores
}

// PlaceMark puts the current turn's mark into cell. Only an out-of-range cell
// is an error; placing on an occupied cell or after the game is over leaves
// the session untouched and is reported through the returned Placement.
func (that *Session) PlaceMark(cell int) (Placement, error) {
	if cell < 0 || cell >= BoardSize {
		return PlacementInvalid, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.outcome.IsTerminal() {
		return PlacementGameOver, nil
	}

	if that.board[cell] != MarkEmpty {
		return PlacementCellOccupied, nil
	}

	that.board[cell] = that.turn
	that.turn = that.turn.Opponent()
	that.updateOutcome()

	return PlacementAccepted, nil
}

// Reset clears the board for a new game. Scores are kept.
func (that *Session) Reset() {
	that.board = Board{}
	that.turn = FirstTurn
	that.outcome = InProgress()
}

func (that *Session) updateOutcome() {
	that.outcome = DetermineOutcome(that.board)

	if winner, ok := that.outcome.WonBy(); ok {
		that.scores.add(winner)
	}
}
