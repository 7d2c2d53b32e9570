package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lincyaw/storefront/internal/domain/identity"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

func newStoredUser(t *testing.T, repo *GormUserRepository, name, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, email, "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestGormUserRepository_SaveAndFindByEmail(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	stored := newStoredUser(t, repo, "Ada", "ada@example.com")

	found, err := repo.FindByEmail(context.Background(), "  Ada@Example.com ")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_FindAll_FilterAdmins(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	admin := newStoredUser(t, repo, "Root", "root@example.com")
	admin.IsAdmin = true
	require.NoError(t, repo.Save(context.Background(), admin))
	newStoredUser(t, repo, "Ada", "ada@example.com")

	users, err := repo.FindAll(context.Background(), shared.Filter{
		Filters: map[string]any{"is_admin": true},
	})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}

func TestGormUserRepository_Delete(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	stored := newStoredUser(t, repo, "Ada", "ada@example.com")

	require.NoError(t, repo.Delete(context.Background(), stored.ID))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_Count(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	newStoredUser(t, repo, "Ada Lovelace", "ada@example.com")
	newStoredUser(t, repo, "Grace Hopper", "grace@example.com")

	count, err := repo.Count(context.Background(), shared.Filter{Search: "ada"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
