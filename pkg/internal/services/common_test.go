package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mosaicnet/interlink/pkg/internal/cache"
	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDatabase(t *testing.T) {
	t.Helper()

	// Drain views queued by an earlier test before the database is swapped.
	services.FlushPostViews()

	require.NoError(t, cache.NewStore())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	database.C = db
}

func createTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account := models.Account{Name: name, Nick: name}
	require.NoError(t, database.C.Create(&account).Error)
	return account
}

func createTestPost(t *testing.T, authorID uint, content string, visibility models.PostVisibilityLevel) models.Post {
	t.Helper()

	post, err := services.NewPost(authorID, content, visibility)
	require.NoError(t, err)
	return post
}

// backdatePost pins a post's creation time so ordering assertions do not
// depend on wall-clock resolution.
func backdatePost(t *testing.T, postID uint, createdAt time.Time) {
	t.Helper()

	require.NoError(t, database.C.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("created_at", createdAt).Error)
}

func postIDs(page []models.Post) []uint {
	ids := make([]uint, len(page))
	for i, item := range page {
		ids[i] = item.ID
	}
	return ids
}
