package users

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/deckoracle/backend/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_users_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.RefreshToken{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := entities.User{Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(&user))
	assert.NotEmpty(t, user.ID)

	duplicate := entities.User{Email: "test@example.com"}
	assert.Error(t, repo.CreateUser(&duplicate))
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := entities.User{Email: "lookup@example.com"}
	require.NoError(t, repo.CreateUser(&user))

	found, err := repo.GetUserByEmail("lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_RefreshTokens(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := entities.User{Email: "tokens@example.com"}
	require.NoError(t, repo.CreateUser(&user))

	t.Run("valid token round trips", func(t *testing.T) {
		token := entities.RefreshToken{
			UserID:    user.ID,
			Token:     "valid-token",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}
		require.NoError(t, repo.SaveRefreshToken(&token))

		found, err := repo.GetRefreshToken("valid-token")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)
	})

	t.Run("expired tokens are not returned", func(t *testing.T) {
		token := entities.RefreshToken{
			UserID:    user.ID,
			Token:     "expired-token",
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, repo.SaveRefreshToken(&token))

		_, err := repo.GetRefreshToken("expired-token")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("revoked tokens are not returned", func(t *testing.T) {
		token := entities.RefreshToken{
			UserID:    user.ID,
			Token:     "revoked-token",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}
		require.NoError(t, repo.SaveRefreshToken(&token))
		require.NoError(t, repo.RevokeRefreshToken("revoked-token"))

		_, err := repo.GetRefreshToken("revoked-token")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("purge removes only expired tokens", func(t *testing.T) {
		purged, err := repo.PurgeExpiredTokens()
		require.NoError(t, err)
		assert.Equal(t, int64(1), purged)

		_, err = repo.GetRefreshToken("valid-token")
		assert.NoError(t, err)
	})
}
