package services_test

import (
	"testing"

	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewPost(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "author")
	follower := createTestAccount(t, "follower")
	stranger := createTestAccount(t, "stranger")
	require.NoError(t, services.NewFollow(follower.ID, author.ID))

	public := createTestPost(t, author.ID, "public", models.PostVisibilityPublic)
	followersOnly := createTestPost(t, author.ID, "followers", models.PostVisibilityFollowers)
	private := createTestPost(t, author.ID, "private", models.PostVisibilityPrivate)

	// The author always sees their own posts.
	assert.True(t, services.CanViewPost(&author.ID, public))
	assert.True(t, services.CanViewPost(&author.ID, followersOnly))
	assert.True(t, services.CanViewPost(&author.ID, private))

	// A follower sees public and followers-only, never private.
	assert.True(t, services.CanViewPost(&follower.ID, public))
	assert.True(t, services.CanViewPost(&follower.ID, followersOnly))
	assert.False(t, services.CanViewPost(&follower.ID, private))

	// A non-follower sees public only.
	assert.True(t, services.CanViewPost(&stranger.ID, public))
	assert.False(t, services.CanViewPost(&stranger.ID, followersOnly))
	assert.False(t, services.CanViewPost(&stranger.ID, private))

	// Anonymous viewers see public only.
	assert.True(t, services.CanViewPost(nil, public))
	assert.False(t, services.CanViewPost(nil, followersOnly))
	assert.False(t, services.CanViewPost(nil, private))
}
