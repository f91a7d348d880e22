package services_test

import (
	"testing"
	"time"

	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeFeed(t *testing.T) {
	setupTestDatabase(t)
	viewer := createTestAccount(t, "viewer")
	bravo := createTestAccount(t, "bravo")
	charlie := createTestAccount(t, "charlie")
	delta := createTestAccount(t, "delta")
	require.NoError(t, services.NewFollow(viewer.ID, bravo.ID))
	require.NoError(t, services.NewFollow(viewer.ID, charlie.ID))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := createTestPost(t, bravo.ID, "from bravo", models.PostVisibilityPublic)
	newer := createTestPost(t, charlie.ID, "from charlie", models.PostVisibilityFollowers)
	hidden := createTestPost(t, charlie.ID, "charlie private", models.PostVisibilityPrivate)
	outside := createTestPost(t, delta.ID, "from delta", models.PostVisibilityPublic)
	own := createTestPost(t, viewer.ID, "my own", models.PostVisibilityPrivate)
	backdatePost(t, older.ID, base)
	backdatePost(t, newer.ID, base.Add(time.Hour))
	backdatePost(t, hidden.ID, base.Add(2*time.Hour))
	backdatePost(t, outside.ID, base.Add(3*time.Hour))
	backdatePost(t, own.ID, base.Add(4*time.Hour))

	feed, err := services.HomeFeed(viewer.ID, false, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, feed.Total)
	assert.Equal(t, []uint{newer.ID, older.ID}, postIDs(feed.Items))
}

func TestHomeFeedIncludeSelf(t *testing.T) {
	setupTestDatabase(t)
	viewer := createTestAccount(t, "viewer")
	bravo := createTestAccount(t, "bravo")
	require.NoError(t, services.NewFollow(viewer.ID, bravo.ID))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	theirs := createTestPost(t, bravo.ID, "theirs", models.PostVisibilityPublic)
	mine := createTestPost(t, viewer.ID, "mine, private", models.PostVisibilityPrivate)
	backdatePost(t, theirs.ID, base)
	backdatePost(t, mine.ID, base.Add(time.Hour))

	feed, err := services.HomeFeed(viewer.ID, true, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{mine.ID, theirs.ID}, postIDs(feed.Items))
}

func TestHomeFeedEmptyFollowList(t *testing.T) {
	setupTestDatabase(t)
	viewer := createTestAccount(t, "viewer")
	other := createTestAccount(t, "other")
	createTestPost(t, other.ID, "unrelated", models.PostVisibilityPublic)

	feed, err := services.HomeFeed(viewer.ID, false, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, feed.Total)
	assert.Empty(t, feed.Items)
}

func TestExploreFeed(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := createTestPost(t, author.ID, "older", models.PostVisibilityPublic)
	newer := createTestPost(t, author.ID, "newer", models.PostVisibilityPublic)
	createTestPost(t, author.ID, "hidden", models.PostVisibilityFollowers)
	gone := createTestPost(t, author.ID, "deleted", models.PostVisibilityPublic)
	backdatePost(t, older.ID, base)
	backdatePost(t, newer.ID, base.Add(time.Hour))
	require.NoError(t, services.DeletePost(author.ID, gone.ID))

	feed, err := services.ExploreFeed(0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, feed.Total)
	assert.Equal(t, []uint{newer.ID, older.ID}, postIDs(feed.Items))
}

func TestPopularFeedOrdering(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cold := createTestPost(t, author.ID, "cold", models.PostVisibilityPublic)
	hot := createTestPost(t, author.ID, "hot", models.PostVisibilityPublic)
	warmOld := createTestPost(t, author.ID, "warm old", models.PostVisibilityPublic)
	warmNew := createTestPost(t, author.ID, "warm new", models.PostVisibilityPublic)
	backdatePost(t, cold.ID, base)
	backdatePost(t, warmOld.ID, base.Add(time.Hour))
	backdatePost(t, warmNew.ID, base.Add(2*time.Hour))
	backdatePost(t, hot.ID, base.Add(3*time.Hour))

	require.NoError(t, services.AdjustPostCounter(hot.ID, "likes", 9))
	require.NoError(t, services.AdjustPostCounter(warmOld.ID, "likes", 3))
	require.NoError(t, services.AdjustPostCounter(warmNew.ID, "likes", 3))

	feed, err := services.PopularFeed(0, 0)
	require.NoError(t, err)
	// Ties on like count fall back to recency.
	assert.Equal(t, []uint{hot.ID, warmNew.ID, warmOld.ID, cold.ID}, postIDs(feed.Items))
}

func TestViewsFeedOrdering(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	reader := createTestAccount(t, "reader")

	quiet := createTestPost(t, author.ID, "quiet", models.PostVisibilityPublic)
	seen := createTestPost(t, author.ID, "seen", models.PostVisibilityPublic)
	_, err := services.GetPost(&reader.ID, seen.ID)
	require.NoError(t, err)

	feed, err := services.ViewsFeed(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{seen.ID, quiet.ID}, postIDs(feed.Items))
}

func TestRecommendedFeed(t *testing.T) {
	setupTestDatabase(t)
	viewer := createTestAccount(t, "viewer")
	friend := createTestAccount(t, "friend")
	fresh := createTestAccount(t, "fresh")
	require.NoError(t, services.NewFollow(viewer.ID, friend.ID))

	createTestPost(t, friend.ID, "already followed", models.PostVisibilityPublic)
	createTestPost(t, viewer.ID, "my own", models.PostVisibilityPublic)
	createTestPost(t, fresh.ID, "not for you", models.PostVisibilityFollowers)
	loved := createTestPost(t, fresh.ID, "discover me", models.PostVisibilityPublic)
	other := createTestPost(t, fresh.ID, "me too", models.PostVisibilityPublic)
	require.NoError(t, services.AdjustPostCounter(loved.ID, "likes", 5))

	feed, err := services.RecommendedFeed(viewer.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, feed.Total)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, loved.ID, feed.Items[0].ID)
	assert.Equal(t, other.ID, feed.Items[1].ID)
}

func TestFeedPageSizeClamp(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		post := createTestPost(t, author.ID, "bulk", models.PostVisibilityPublic)
		backdatePost(t, post.ID, base.Add(time.Duration(i)*time.Minute))
	}

	// A page size of 1000 is served as if it were the cap.
	feed, err := services.ExploreFeed(0, 1000)
	require.NoError(t, err)
	assert.Equal(t, services.FeedMaxPageSize, feed.PageSize)
	assert.Len(t, feed.Items, services.FeedMaxPageSize)
	assert.EqualValues(t, 60, feed.Total)

	rest, err := services.ExploreFeed(1, 1000)
	require.NoError(t, err)
	assert.Len(t, rest.Items, 10)
}

func TestFeedPaginationDefaults(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	for i := 0; i < 25; i++ {
		createTestPost(t, author.ID, "bulk", models.PostVisibilityPublic)
	}

	feed, err := services.ExploreFeed(-1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Page)
	assert.Equal(t, services.FeedDefaultPageSize, feed.PageSize)
	assert.Len(t, feed.Items, services.FeedDefaultPageSize)
}
