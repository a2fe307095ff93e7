package repository

import (
	"testing"
	"time"

	"github.com/spacecowboywalk/tictactoe/internal/apperror"
	"github.com/spacecowboywalk/tictactoe/internal/entity"
	"github.com/spacecowboywalk/tictactoe/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

	// Given: a session with one mark
	session := entity.NewSession("123")
	_, err := session.PlaceMark(4)
	require.NoError(t, err)

	// When: CreateOrUpdate is called
	err = sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key carries the ttl
	require.NoError(t, err)

	ttl := st.SessionTTL("123")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// Given: a won session with a score
		session := entity.NewSession("123")
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := session.PlaceMark(cell)
			require.NoError(t, err)
		}

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID())

		// Then: the retrieved session should match the saved one
		require.NoError(t, err)
		assert.Equal(t, session.Snapshot(), retrieved.Snapshot())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByID_Corrupt", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// Given: a stored value claiming a win on an empty board
		value := `{"id":"bad","board":["","","","","","","","",""],"turn":"O","outcome":{"status":"won","winner":"X"},"scores":{"X":1,"O":0}}`
		st.SeedSession("bad", value)

		// When: GetByID is called
		_, err := sessionRepo.GetByID(ctx, "bad")

		// Then: the corrupt value is refused
		require.ErrorIs(t, err, apperror.ErrCorruptSession)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := entity.NewSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID())

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)
		assert.Empty(t, st.SessionKeys())

		_, err = sessionRepo.GetByID(ctx, session.ID())
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_KeepsOthers", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewRedisSessionRepository(st.Storage, time.Hour)

		// Given: two stored sessions
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("a")))
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("b")))

		// When: one of them is deleted
		err := sessionRepo.DeleteByID(ctx, "a")

		// Then: only the other remains
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, st.SessionKeys())
	})
}
