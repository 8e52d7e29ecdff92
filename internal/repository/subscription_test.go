package repository

import (
	"context"
	"errors"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Integration(t *testing.T) {
	repo := NewSubscriptionRepository(testDB)
	ctx := context.Background()

	follower := makeUser(t, "sub_follower")
	author := makeUser(t, "sub_author")

	t.Run("Create and Exists", func(t *testing.T) {
		err := repo.Create(ctx, follower.ID, author.ID)
		require.NoError(t, err)

		exists, err := repo.Exists(ctx, follower.ID, author.ID)
		assert.NoError(t, err)
		assert.True(t, exists)

		// Opposite direction is untouched
		exists, err = repo.Exists(ctx, author.ID, follower.ID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Duplicate Create is a validation error", func(t *testing.T) {
		err := repo.Create(ctx, follower.ID, author.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("ListAuthors", func(t *testing.T) {
		authors, total, err := repo.ListAuthors(ctx, follower.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, authors, 1)
		assert.Equal(t, author.ID, authors[0].ID)
		assert.True(t, authors[0].IsSubscribed)
	})

	t.Run("Delete", func(t *testing.T) {
		err := repo.Delete(ctx, follower.ID, author.ID)
		require.NoError(t, err)

		exists, err := repo.Exists(ctx, follower.ID, author.ID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete when not subscribed is a validation error", func(t *testing.T) {
		err := repo.Delete(ctx, follower.ID, author.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
