package repository

import (
	"context"
	"testing"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository()
		session := entity.NewSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the original keeps playing after the save
		_, err := session.PlaceMark(0)
		require.NoError(t, err)

		retrieved, err := sessionRepo.GetByID(ctx, "123")

		// Then: the stored copy is unaffected
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, retrieved.Board())
		assert.Equal(t, entity.MarkO, retrieved.Turn())
	})

	t.Run("Update overwrites the previous state", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository()
		session := entity.NewSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: it is saved again after a move
		_, err := session.PlaceMark(8)
		require.NoError(t, err)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// Then: the new state is returned
		retrieved, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, session.Snapshot(), retrieved.Snapshot())
	})

	t.Run("Missing session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()

		_, err := sessionRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: it is deleted
		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))

		// Then: it can no longer be read
		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
