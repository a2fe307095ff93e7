package entity

import (
	"encoding/json"
	"fmt"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
)

// Snapshot is the observable state of a Session, the unit presentation layers
// render from and storage keeps.
type Snapshot struct {
	ID      string  `json:"id"`
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Outcome Outcome `json:"outcome"`
	Scores  Scores  `json:"scores"`
}

func (that *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:      that.id,
		Board:   that.board,
		Turn:    that.turn,
		Outcome: that.outcome,
		Scores:  that.scores,
	}
}

// RestoreSession rebuilds a session from a snapshot, refusing one that no
// sequence of alternating placements could have produced.
func RestoreSession(snapshot Snapshot) (*Session, error) {
	if err := snapshot.validate(); err != nil {
		return nil, err
	}

	return &Session{
		id:      snapshot.ID,
		board:   snapshot.Board,
		turn:    snapshot.Turn,
		outcome: snapshot.Outcome,
		scores:  snapshot.Scores,
	}, nil
}

func (that Snapshot) validate() error {
	var xs, os int

	for i, cell := range that.Board {
		switch cell {
		case MarkEmpty:
		case MarkX:
			xs++
		case MarkO:
			os++
		default:
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrCorruptSession, i, cell)
		}
	}

	if !that.Turn.IsPlayer() {
		return fmt.Errorf("%w: turn %q", apperror.ErrCorruptSession, that.Turn)
	}

	// O moves first, so O leads X by at most one mark and the lead decides
	// whose turn it is.
	switch {
	case os == xs && that.Turn == MarkO, os == xs+1 && that.Turn == MarkX:
	default:
		return fmt.Errorf("%w: %d O and %d X with %s to move", apperror.ErrCorruptSession, os, xs, that.Turn)
	}

	if that.Scores.X < 0 || that.Scores.O < 0 {
		return fmt.Errorf("%w: negative score", apperror.ErrCorruptSession)
	}

	if expected := DetermineOutcome(that.Board); that.Outcome != expected {
		return fmt.Errorf("%w: outcome %s, board says %s", apperror.ErrCorruptSession, that.Outcome, expected)
	}

	return nil
}

func (that *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Snapshot())
}

func (that *Session) UnmarshalJSON(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	restored, err := RestoreSession(snapshot)
	if err != nil {
		return err
	}

	*that = *restored

	return nil
}
