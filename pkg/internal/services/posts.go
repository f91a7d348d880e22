package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func validatePostContent(content string) error {
	if utf8.RuneCountInString(content) > models.PostMaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

func validatePostVisibility(level models.PostVisibilityLevel) error {
	switch level {
	case models.PostVisibilityPublic, models.PostVisibilityFollowers, models.PostVisibilityPrivate:
		return nil
	default:
		return ErrInvalidVisibility
	}
}

// NewPost persists a post and links the references extracted from its
// content, all inside one transaction.
func NewPost(authorID uint, content string, visibility models.PostVisibilityLevel) (models.Post, error) {
	var item models.Post

	if !Users.Exists(authorID) {
		return item, ErrAccountNotFound
	}
	if err := validatePostContent(content); err != nil {
		return item, err
	}
	if err := validatePostVisibility(visibility); err != nil {
		return item, err
	}

	item = models.Post{
		Content:    content,
		Visibility: visibility,
		AuthorID:   authorID,
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if err := ReconcilePostHashtags(tx, item.ID, ExtractHashtags(content)); err != nil {
			return err
		}
		return ReconcileMentions(tx, models.MentionTargetPost, item.ID, authorID, ExtractMentions(content))
	})
	if err != nil {
		return item, fmt.Errorf("unable to create post: %w", err)
	}

	log.Debug().Uint("id", item.ID).Uint("author", authorID).Msg("Created a new post.")
	return item, nil
}

// EditPost applies a partial update; absent fields are left untouched. A
// content change re-runs the full reference reconciliation in the same
// transaction so no stale association can survive the edit.
func EditPost(editorID, postID uint, content *string, visibility *models.PostVisibilityLevel) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrPostNotFound
		}
		return item, err
	}
	if item.AuthorID != editorID {
		return item, ErrForbidden
	}

	changes := map[string]any{}
	if content != nil {
		if err := validatePostContent(*content); err != nil {
			return item, err
		}
		changes["content"] = *content
	}
	if visibility != nil {
		if err := validatePostVisibility(*visibility); err != nil {
			return item, err
		}
		changes["visibility"] = *visibility
	}
	if len(changes) == 0 {
		return item, nil
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		// Counters are left out of the update set on purpose; they move
		// via relative updates only.
		if err := tx.Model(&item).Updates(changes).Error; err != nil {
			return err
		}
		if content != nil {
			if err := ReconcilePostHashtags(tx, item.ID, ExtractHashtags(*content)); err != nil {
				return err
			}
			if err := ReconcileMentions(tx, models.MentionTargetPost, item.ID, item.AuthorID, ExtractMentions(*content)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return item, fmt.Errorf("unable to edit post: %w", err)
	}

	return item, nil
}

// DeletePost soft-deletes a post and tears down its associations as if the
// content had become empty, keeping the hashtag usage counters truthful.
func DeletePost(requesterID, postID uint) error {
	var item models.Post
	if err := database.C.Where("id = ?", postID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if item.AuthorID != requesterID {
		return ErrForbidden
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := ReconcilePostHashtags(tx, item.ID, nil); err != nil {
			return err
		}
		if err := DeleteMentionsFor(tx, models.MentionTargetPost, item.ID); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return fmt.Errorf("unable to delete post: %w", err)
	}

	log.Debug().Uint("id", postID).Msg("Soft-deleted a post.")
	return nil
}

// GetPost loads a post for a viewer, enforcing the visibility policy and
// bumping the view counter once per non-author read, anonymous reads
// included. Self-views never count.
func GetPost(viewerID *uint, postID uint) (models.Post, error) {
	var item models.Post
	if err := database.C.
		Preload("Author").
		Preload("Hashtags").
		Where("id = ?", postID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrPostNotFound
		}
		return item, err
	}

	if !CanViewPost(viewerID, item) {
		return item, ErrForbidden
	}

	if viewerID == nil || *viewerID != item.AuthorID {
		if err := database.C.Model(&models.Post{}).
			Where("id = ?", item.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return item, err
		}
		item.ViewCount++
		// The per-account view log is the only part that needs an identity.
		if viewerID != nil {
			AddPostView(item.ID, *viewerID)
		}
	}

	return item, nil
}

// ListPostsByAuthor returns an author's live posts, newest first.
func ListPostsByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	tx := database.C.Model(&models.Post{}).Where("author_id = ?", authorID)
	return listPostPage(tx, page, pageSize, "created_at DESC, id DESC")
}

var postCounterColumns = map[string]string{
	"views":    "view_count",
	"likes":    "like_count",
	"comments": "comment_count",
}

// AdjustPostCounter applies an atomic relative update to one of the post
// counters on behalf of the like/comment subsystems. A decrement that would
// push the counter below zero is absorbed as a no-op.
func AdjustPostCounter(postID uint, counter string, delta int64) error {
	column, ok := postCounterColumns[counter]
	if !ok {
		return ErrInvalidCounter
	}

	tx := database.C.Model(&models.Post{}).Where("id = ?", postID)
	if delta < 0 {
		tx = tx.Where(column+" >= ?", -delta)
	}
	res := tx.UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Without the floor guard a missed update can only mean the row is
		// gone; with it the row may just be sitting at the floor.
		if delta >= 0 {
			return ErrPostNotFound
		}
		var count int64
		if err := database.C.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}
		log.Debug().Uint("id", postID).Str("counter", counter).Int64("delta", delta).
			Msg("Absorbed a counter decrement below zero.")
	}

	return nil
}

func FilterPostWithVisibility(tx *gorm.DB, levels ...models.PostVisibilityLevel) *gorm.DB {
	return tx.Where("visibility IN ?", levels)
}

func FilterPostWithAuthors(tx *gorm.DB, ids []uint) *gorm.DB {
	return tx.Where("author_id IN ?", ids)
}

func FilterPostWithHashtag(tx *gorm.DB, name string) *gorm.DB {
	return tx.Joins("JOIN post_hashtags ON posts.id = post_hashtags.post_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("hashtags.name = ?", name)
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]models.Post, error) {
	var items []models.Post
	if err := tx.
		Preload("Author").
		Preload("Hashtags").
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}
