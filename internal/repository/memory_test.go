package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	return that.now
}

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(time.Hour)
		game := testGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller mutates its game after saving
		game.History[0].Player = entity.White

		// Then: the stored game is not affected
		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Black, retrievedGame.History[0].Player)

		// When: the returned game is mutated
		retrievedGame.History = append(retrievedGame.History, entity.Move{Row: 0, Col: 0, Player: entity.Black})

		// Then: the stored game is still not affected
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Len(t, again.History, 2)
	})

	t.Run("Missing game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(time.Hour)

		// When: an unknown game is read and deleted
		_, getErr := gameRepo.GetByID(ctx, "9999999")
		deleteErr := gameRepo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned for both
		require.ErrorIs(t, getErr, apperror.ErrGameNotFound)
		require.ErrorIs(t, deleteErr, apperror.ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository(0)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, testGame("123")))

		// When: it is deleted
		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		// Then: it cannot be read anymore
		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Games expire after the ttl", func(t *testing.T) {
		// Given: a game stored with a one minute ttl
		clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
		gameRepo := newMemoryGameRepository(time.Minute, clock.Now)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, testGame("123")))

		// When: half the ttl passes
		clock.now = clock.now.Add(30 * time.Second)

		// Then: the game is still there
		_, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: the game is saved again and the original ttl passes
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, testGame("123")))
		clock.now = clock.now.Add(45 * time.Second)

		// Then: the write refreshed the ttl
		_, err = gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: the refreshed ttl passes
		clock.now = clock.now.Add(time.Minute)

		// Then: the game is gone
		_, err = gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
