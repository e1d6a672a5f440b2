package demo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aether/internal/database"
	"aether/internal/repository"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeeder_SeedIfEmpty_StoresHashedAccounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seeder := NewSeeder(db, zerolog.Nop())

	require.NoError(t, seeder.SeedIfEmpty(ctx))

	repo := repository.NewDemoAccountRepository(db)
	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	for _, acc := range stored {
		want, ok := LookupAccount(acc.Role)
		require.True(t, ok, acc.Role)
		assert.Equal(t, want.Email, acc.Email)
		assert.Equal(t, want.Hint, acc.Hint)
		assert.NotEqual(t, want.Password, acc.PasswordHash)
	}

	ok, err := seeder.Verify(ctx, RoleAdmin, "demo123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = seeder.Verify(ctx, RoleUser, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeeder_SeedIfEmpty_SkipsWhenPresent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seeder := NewSeeder(db, zerolog.Nop())
	repo := repository.NewDemoAccountRepository(db)

	require.NoError(t, seeder.SeedIfEmpty(ctx))
	before, err := repo.GetByRole(ctx, RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, seeder.SeedIfEmpty(ctx))
	after, err := repo.GetByRole(ctx, RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, before.PasswordHash, after.PasswordHash, "second seed must not rehash")
}

func TestSeeder_Verify_UnknownRole(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())

	ok, err := seeder.Verify(context.Background(), "guest", "demo123")
	require.NoError(t, err)
	assert.False(t, ok)
}
