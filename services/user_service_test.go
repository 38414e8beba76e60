package services

import (
	"testing"

	"favorites-restful/config"
	"favorites-restful/database"
	"favorites-restful/models"
	"favorites-restful/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupServices(t *testing.T) (UserService, CatalogService) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:", LogLevel: "silent"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := NewUserService(repositories.NewUserRepository(db))
	catalog := NewCatalogService(repositories.NewCharacterRepository(db), repositories.NewLocationRepository(db))
	return users, catalog
}

func TestCreateUser(t *testing.T) {
	t.Run("Stores a bcrypt hash", func(t *testing.T) {
		users, _ := setupServices(t)

		user, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "secret"})
		require.NoError(t, err)
		assert.NotEqual(t, "secret", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
		assert.True(t, user.Active())
	})

	t.Run("Missing fields", func(t *testing.T) {
		users, _ := setupServices(t)

		_, err := users.CreateUser(&CreateUserInput{Password: "secret"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = users.CreateUser(&CreateUserInput{Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Email too long", func(t *testing.T) {
		users, _ := setupServices(t)

		long := make([]byte, 121)
		for i := range long {
			long[i] = 'a'
		}
		_, err := users.CreateUser(&CreateUserInput{Email: string(long), Password: "secret"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users, _ := setupServices(t)

		_, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "one"})
		require.NoError(t, err)
		_, err = users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "two"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})
}

func TestAuthenticate(t *testing.T) {
	users, _ := setupServices(t)

	_, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	_, err = users.CreateUser(&CreateUserInput{Email: "off@b.com", Password: "secret", IsActive: models.Bool(false)})
	require.NoError(t, err)

	user, err := users.Authenticate("a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)

	_, err = users.Authenticate("a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate("nobody@b.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate("off@b.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUser(t *testing.T) {
	users, _ := setupServices(t)

	user, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	other, err := users.CreateUser(&CreateUserInput{Email: "other@b.com", Password: "secret"})
	require.NoError(t, err)

	newEmail := "new@b.com"
	_, err = users.UpdateUser(user.ID, other.ID, &UpdateUserInput{Email: &newEmail})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := users.UpdateUser(user.ID, user.ID, &UpdateUserInput{Email: &newEmail, IsActive: models.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", updated.Email)
	assert.False(t, updated.Active())

	taken := "other@b.com"
	_, err = users.UpdateUser(user.ID, user.ID, &UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestDeleteUser(t *testing.T) {
	users, _ := setupServices(t)

	user, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	assert.ErrorIs(t, users.DeleteUser(user.ID, user.ID+1), ErrForbidden)
	require.NoError(t, users.DeleteUser(user.ID, user.ID))

	_, err = users.GetUser(user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFavorites(t *testing.T) {
	users, catalog := setupServices(t)

	user, err := users.CreateUser(&CreateUserInput{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	rick, err := catalog.CreateCharacter(&CharacterInput{ID: 1, Name: "Rick"})
	require.NoError(t, err)

	require.NoError(t, users.AddFavoriteCharacter(user.ID, user.ID, rick.ID))
	assert.ErrorIs(t, users.AddFavoriteCharacter(user.ID, user.ID+1, rick.ID), ErrForbidden)
	assert.ErrorIs(t, users.AddFavoriteLocation(user.ID, user.ID, 5), repositories.ErrNotFound)

	loaded, err := users.GetUserWithFavorites(user.ID)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":        user.ID,
		"email":     "a@b.com",
		"is_active": true,
		"favorite_characters": []any{
			map[string]any{"id": uint(1), "name": "Rick", "species": nil, "status": nil, "gender": nil, "image": nil},
		},
		"favorite_locations": []any{},
	}, loaded.SerializeWithFavorites())

	require.NoError(t, users.RemoveFavoriteCharacter(user.ID, user.ID, rick.ID))
	assert.ErrorIs(t, users.RemoveFavoriteCharacter(user.ID, user.ID, rick.ID), repositories.ErrNotFound)
}
