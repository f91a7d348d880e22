package services_test

import (
	"testing"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReconcileMentionsDropsUnresolvable(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")

	// Unknown names and self-references vanish without failing the edit.
	post := createTestPost(t, author.ID, "hi @alice @nosuchuser @writer", models.PostVisibilityPublic)

	mentions, count, err := services.ListMentionsOf(alice.ID, nil, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, mentions, 1)
	assert.Equal(t, post.ID, mentions[0].TargetID)
	assert.Equal(t, author.ID, mentions[0].AuthorID)

	selfCount, err := services.CountMentionsOf(author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, selfCount)
}

func TestReconcileMentionsDeduplicates(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")

	createTestPost(t, author.ID, "@alice @alice @alice", models.PostVisibilityPublic)

	count, err := services.CountMentionsOf(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestReconcileMentionsFollowsEdits(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	post := createTestPost(t, author.ID, "ping @alice", models.PostVisibilityPublic)

	_, err := services.EditPost(author.ID, post.ID, lo.ToPtr("ping @bob instead"), nil)
	require.NoError(t, err)

	aliceCount, err := services.CountMentionsOf(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, aliceCount)

	bobCount, err := services.CountMentionsOf(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, bobCount)
}

func TestReconcileMentionsKeepsSurvivors(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")

	post := createTestPost(t, author.ID, "hey @alice", models.PostVisibilityPublic)

	var before models.Mention
	require.NoError(t, database.C.
		Where("account_id = ? AND target_id = ?", alice.ID, post.ID).
		First(&before).Error)

	// An edit that keeps the mention must not recreate its row.
	_, err := services.EditPost(author.ID, post.ID, lo.ToPtr("hey @alice again"), nil)
	require.NoError(t, err)

	var after models.Mention
	require.NoError(t, database.C.
		Where("account_id = ? AND target_id = ?", alice.ID, post.ID).
		First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
}

func TestListMentionsOfFiltersByTargetType(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")

	post := createTestPost(t, author.ID, "post for @alice", models.PostVisibilityPublic)
	require.NoError(t, database.C.Transaction(func(tx *gorm.DB) error {
		return services.ReconcileMentions(tx, models.MentionTargetComment, 77, author.ID, []string{"alice"})
	}))

	all, count, err := services.ListMentionsOf(alice.ID, nil, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Len(t, all, 2)

	posts, count, err := services.ListMentionsOf(alice.ID, lo.ToPtr(models.MentionTargetPost), 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].TargetID)

	comments, count, err := services.ListMentionsOf(alice.ID, lo.ToPtr(models.MentionTargetComment), 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, comments, 1)
	assert.EqualValues(t, 77, comments[0].TargetID)
}

func TestDeleteMentionsFor(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "writer")
	alice := createTestAccount(t, "alice")

	post := createTestPost(t, author.ID, "bye @alice", models.PostVisibilityPublic)
	require.NoError(t, services.DeleteMentionsFor(database.C, models.MentionTargetPost, post.ID))

	count, err := services.CountMentionsOf(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
