package users

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, CreateRequest{Email: "ada@example.com", Name: "Ada", Age: 36})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	byEmail, err := repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), pgx.ErrNoRows)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, CreateRequest{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateRequest{Email: "Ada@Example.com", Name: "Other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := repo.Create(ctx, CreateRequest{Email: email, Name: "x"})
		require.NoError(t, err)
	}

	page, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	page, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, _, err = repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryRepository().FindByID(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, CreateRequest{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)

	created.Name = "mutated"

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", found.Name)
}
