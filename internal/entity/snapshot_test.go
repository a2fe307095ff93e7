package entity

import (
	"encoding/json"
	"testing"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midGame is O at 4 and X at 0 with O to move.
func midGame() Snapshot {
	return Snapshot{
		ID: "123",
		Board: Board{
			MarkX, MarkEmpty, MarkEmpty,
			MarkEmpty, MarkO, MarkEmpty,
			MarkEmpty, MarkEmpty, MarkEmpty,
		},
		Turn:    MarkO,
		Outcome: InProgress(),
		Scores:  Scores{X: 2, O: 1},
	}
}

func TestRestoreSession(t *testing.T) {
	t.Run("Restores a played session as it was", func(t *testing.T) {
		// Given: a session O has won
		session := NewSession("123")
		play(t, session, 0, 3, 1, 4, 2)

		// When: it is restored from its snapshot
		restored, err := RestoreSession(session.Snapshot())

		// Then: the copy has the same state and keeps refusing placements
		require.NoError(t, err)
		assert.Equal(t, session.Snapshot(), restored.Snapshot())

		placement, err := restored.PlaceMark(8)
		require.NoError(t, err)
		assert.Equal(t, PlacementGameOver, placement)
	})

	t.Run("Restored session carries on with the right mark", func(t *testing.T) {
		// When: a mid-game snapshot is restored and played on
		restored, err := RestoreSession(midGame())
		require.NoError(t, err)

		placement, err := restored.PlaceMark(8)

		// Then: O is written and X moves next
		require.NoError(t, err)
		assert.Equal(t, PlacementAccepted, placement)
		assert.Equal(t, MarkO, restored.Board()[8])
		assert.Equal(t, MarkX, restored.Turn())
	})

	tests := []struct {
		name    string
		corrupt func(s *Snapshot)
	}{
		{
			name:    "Unknown mark in a cell",
			corrupt: func(s *Snapshot) { s.Board[2] = Mark("Z") },
		},
		{
			name:    "Empty turn",
			corrupt: func(s *Snapshot) { s.Turn = MarkEmpty },
		},
		{
			name:    "Unknown turn",
			corrupt: func(s *Snapshot) { s.Turn = Mark("Z") },
		},
		{
			name:    "Negative X score",
			corrupt: func(s *Snapshot) { s.Scores.X = -1 },
		},
		{
			name:    "Negative O score",
			corrupt: func(s *Snapshot) { s.Scores.O = -3 },
		},
		{
			name: "Outcome does not match the board",
			corrupt: func(s *Snapshot) {
				s.Outcome = Won(MarkX)
			},
		},
		{
			name: "O two marks ahead",
			corrupt: func(s *Snapshot) {
				s.Board = Board{MarkO, MarkO, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty}
				s.Turn = MarkO
			},
		},
		{
			name: "X ahead of O",
			corrupt: func(s *Snapshot) {
				s.Board = Board{MarkX, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty, MarkEmpty}
				s.Turn = MarkO
			},
		},
		{
			name:    "Turn disagrees with the marks",
			corrupt: func(s *Snapshot) { s.Turn = MarkX },
		},
	}

	for _, tt := range tests {
		t.Run("Rejects "+tt.name, func(t *testing.T) {
			// Given: an otherwise valid snapshot with one defect
			snapshot := midGame()
			tt.corrupt(&snapshot)

			// When: it is restored
			restored, err := RestoreSession(snapshot)

			// Then: ErrCorruptSession is returned
			require.ErrorIs(t, err, apperror.ErrCorruptSession)
			assert.Nil(t, restored)
		})
	}
}

func TestSession_JSON(t *testing.T) {
	t.Run("Round trip keeps the state", func(t *testing.T) {
		// Given: a session with a finished game and a score
		session := NewSession("123")
		play(t, session, 0, 3, 1, 4, 2)

		// When: it is marshalled and read back
		raw, err := json.Marshal(session)
		require.NoError(t, err)

		var decoded Session
		require.NoError(t, json.Unmarshal(raw, &decoded))

		// Then: both sides agree
		assert.Equal(t, session.Snapshot(), decoded.Snapshot())
		assert.JSONEq(t,
			`{"id":"123","board":["O","O","O","X","X","","","",""],"turn":"X","outcome":{"status":"won","winner":"O"},"scores":{"X":0,"O":1}}`,
			string(raw))
	})

	t.Run("Refuses a corrupt document", func(t *testing.T) {
		// Given: a document with three O moves in a row
		raw := `{"id":"123","board":["O","O","","","","","","",""],"turn":"O","outcome":{"status":"in_progress"},"scores":{"X":0,"O":0}}`

		// When: it is decoded
		var decoded Session
		err := json.Unmarshal([]byte(raw), &decoded)

		// Then: ErrCorruptSession is returned
		require.ErrorIs(t, err, apperror.ErrCorruptSession)
	})

	t.Run("Malformed document is not reported as corrupt", func(t *testing.T) {
		var decoded Session
		err := json.Unmarshal([]byte(`{"id":"123","board":"nope"}`), &decoded)

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperror.ErrCorruptSession)
	})
}
