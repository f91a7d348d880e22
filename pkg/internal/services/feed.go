package services

import (
	"fmt"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"gorm.io/gorm"
)

const (
	FeedMaxPageSize     = 50
	FeedDefaultPageSize = 20
)

// FeedPage is one page of an assembled feed, with enough bookkeeping for
// the caller to paginate further.
type FeedPage struct {
	Items    []models.Post `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Requests above the page size cap are clamped, not rejected.
func normalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = FeedDefaultPageSize
	}
	if pageSize > FeedMaxPageSize {
		pageSize = FeedMaxPageSize
	}
	return page, pageSize
}

func listPostPage(tx *gorm.DB, page, pageSize int, order string) ([]models.Post, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	count, err := CountPost(tx.Session(&gorm.Session{}))
	if err != nil {
		return nil, 0, err
	}

	items, err := ListPost(tx, pageSize, page*pageSize, order)
	if err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func assembleFeed(tx *gorm.DB, page, pageSize int, order string) (FeedPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	items, count, err := listPostPage(tx, page, pageSize, order)
	if err != nil {
		return FeedPage{}, err
	}

	return FeedPage{
		Items:    items,
		Total:    count,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// HomeFeed lists posts from the accounts a viewer follows, newest first,
// optionally mixed with the viewer's own.
func HomeFeed(viewerID uint, includeSelf bool, page, pageSize int) (FeedPage, error) {
	authorIDs, err := Follows.FollowingIDs(viewerID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("unable to assemble home feed: %w", err)
	}
	if includeSelf {
		authorIDs = append(authorIDs, viewerID)
	}

	tx := database.C.Model(&models.Post{})
	tx = FilterPostWithAuthors(tx, authorIDs)
	if includeSelf {
		tx = tx.Where("visibility IN ? OR author_id = ?",
			[]models.PostVisibilityLevel{models.PostVisibilityPublic, models.PostVisibilityFollowers},
			viewerID,
		)
	} else {
		tx = FilterPostWithVisibility(tx, models.PostVisibilityPublic, models.PostVisibilityFollowers)
	}

	return assembleFeed(tx, page, pageSize, "created_at DESC, id DESC")
}

// ExploreFeed lists every live public post, newest first. No viewer
// identity required.
func ExploreFeed(page, pageSize int) (FeedPage, error) {
	tx := FilterPostWithVisibility(database.C.Model(&models.Post{}), models.PostVisibilityPublic)
	return assembleFeed(tx, page, pageSize, "created_at DESC, id DESC")
}

// PopularFeed ranks public posts by like count.
func PopularFeed(page, pageSize int) (FeedPage, error) {
	tx := FilterPostWithVisibility(database.C.Model(&models.Post{}), models.PostVisibilityPublic)
	return assembleFeed(tx, page, pageSize, "like_count DESC, created_at DESC, id DESC")
}

// ViewsFeed ranks public posts by view count.
func ViewsFeed(page, pageSize int) (FeedPage, error) {
	tx := FilterPostWithVisibility(database.C.Model(&models.Post{}), models.PostVisibilityPublic)
	return assembleFeed(tx, page, pageSize, "view_count DESC, created_at DESC, id DESC")
}

// RecommendedFeed surfaces popular public posts from accounts the viewer
// does not follow yet. The ranking is a deliberately simple placeholder;
// swapping it out must not touch the pagination or visibility contract.
func RecommendedFeed(viewerID uint, page, pageSize int) (FeedPage, error) {
	followingIDs, err := Follows.FollowingIDs(viewerID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("unable to assemble recommended feed: %w", err)
	}

	tx := FilterPostWithVisibility(database.C.Model(&models.Post{}), models.PostVisibilityPublic).
		Where("author_id != ?", viewerID)
	if len(followingIDs) > 0 {
		tx = tx.Where("author_id NOT IN ?", followingIDs)
	}

	return assembleFeed(tx, page, pageSize, "like_count DESC, created_at DESC, id DESC")
}
