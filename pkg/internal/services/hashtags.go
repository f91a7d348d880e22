package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NormalizeHashtagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func GetHashtag(name string) (models.Hashtag, error) {
	var hashtag models.Hashtag
	if err := database.C.Where("name = ?", NormalizeHashtagName(name)).First(&hashtag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hashtag, ErrHashtagNotFound
		}
		return hashtag, err
	}
	return hashtag, nil
}

// GetHashtagOrCreate returns the row for a normalized name, creating it
// lazily on first use. A simultaneous first-use race lands on the unique
// name constraint; the insert absorbs the conflict so the transaction stays
// usable, and the losing writer re-reads the row the winner created.
func GetHashtagOrCreate(tx *gorm.DB, name string) (models.Hashtag, error) {
	name = NormalizeHashtagName(name)

	var hashtag models.Hashtag
	if err := tx.Where("name = ?", name).First(&hashtag).Error; err == nil {
		return hashtag, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return hashtag, err
	}

	hashtag = models.Hashtag{Name: name}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&hashtag)
	if res.Error != nil {
		return hashtag, fmt.Errorf("%w: %v", ErrHashtagConflict, res.Error)
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("name = ?", name).First(&hashtag).Error; err != nil {
			return hashtag, fmt.Errorf("%w: %v", ErrHashtagConflict, err)
		}
		return hashtag, nil
	}

	log.Debug().Str("name", name).Msg("Created a new hashtag.")
	return hashtag, nil
}

// ReconcilePostHashtags converges a post's hashtag associations to exactly
// the given token set, applying only the add/remove delta. Usage counters
// move with the associations, as atomic relative updates. Must run inside
// the transaction of the triggering edit.
func ReconcilePostHashtags(tx *gorm.DB, postID uint, tokens []string) error {
	tokens = lo.Map(tokens, func(name string, _ int) string {
		return NormalizeHashtagName(name)
	})

	type linkedHashtag struct {
		ID   uint
		Name string
	}
	var current []linkedHashtag
	if err := tx.Model(&models.PostHashtag{}).
		Select("hashtags.id, hashtags.name").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("post_hashtags.post_id = ?", postID).
		Scan(&current).Error; err != nil {
		return fmt.Errorf("unable to list current hashtag links: %w", err)
	}

	currentNames := lo.Map(current, func(row linkedHashtag, _ int) string {
		return row.Name
	})

	removed := lo.Filter(current, func(row linkedHashtag, _ int) bool {
		return !lo.Contains(tokens, row.Name)
	})
	added := lo.Filter(tokens, func(name string, _ int) bool {
		return !lo.Contains(currentNames, name)
	})

	for _, row := range removed {
		res := tx.Where("post_id = ? AND hashtag_id = ?", postID, row.ID).
			Delete(&models.PostHashtag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			if err := adjustHashtagUsage(tx, row.ID, -1); err != nil {
				return err
			}
		}
	}

	for _, name := range added {
		hashtag, err := GetHashtagOrCreate(tx, name)
		if err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.PostHashtag{PostID: postID, HashtagID: hashtag.ID})
		if res.Error != nil {
			return res.Error
		}
		// A concurrent writer may have linked the pair already; only a row
		// we actually inserted moves the counter.
		if res.RowsAffected > 0 {
			if err := adjustHashtagUsage(tx, hashtag.ID, 1); err != nil {
				return err
			}
		}
	}

	if len(removed) > 0 || len(added) > 0 {
		log.Debug().Uint("post", postID).
			Int("added", len(added)).Int("removed", len(removed)).
			Msg("Reconciled post hashtags.")
	}

	return nil
}

func adjustHashtagUsage(tx *gorm.DB, hashtagID uint, delta int64) error {
	scope := tx.Model(&models.Hashtag{}).Where("id = ?", hashtagID)
	if delta < 0 {
		scope = scope.Where("usage_count >= ?", -delta)
	}
	return scope.UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}

// TrendingHashtags ranks hashtags by live usage, ties broken by identity so
// pagination stays stable when counts tie. Zero-usage tags are left out.
func TrendingHashtags(page, pageSize int) ([]models.Hashtag, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	tx := database.C.Model(&models.Hashtag{}).Where("usage_count > 0")

	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var hashtags []models.Hashtag
	if err := tx.
		Order("usage_count DESC, id ASC").
		Limit(pageSize).Offset(page * pageSize).
		Find(&hashtags).Error; err != nil {
		return nil, 0, err
	}

	return hashtags, count, nil
}

// TopTrendingHashtags is the limit-only variant used by compact widgets.
func TopTrendingHashtags(limit int) ([]models.Hashtag, error) {
	if limit > FeedMaxPageSize {
		limit = FeedMaxPageSize
	}

	var hashtags []models.Hashtag
	if err := database.C.
		Where("usage_count > 0").
		Order("usage_count DESC, id ASC").
		Limit(limit).
		Find(&hashtags).Error; err != nil {
		return nil, err
	}

	return hashtags, nil
}

// SearchHashtags matches a keyword as a substring of the normalized name.
func SearchHashtags(keyword string, page, pageSize int) ([]models.Hashtag, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	probe := "%" + NormalizeHashtagName(keyword) + "%"
	tx := database.C.Model(&models.Hashtag{}).Where("name LIKE ?", probe)

	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var hashtags []models.Hashtag
	if err := tx.
		Order("usage_count DESC, id ASC").
		Limit(pageSize).Offset(page * pageSize).
		Find(&hashtags).Error; err != nil {
		return nil, 0, err
	}

	return hashtags, count, nil
}

// ListPostsByHashtag returns public, live posts carrying a hashtag, newest
// first. The hashtag must already exist.
func ListPostsByHashtag(name string, page, pageSize int) ([]models.Post, int64, error) {
	hashtag, err := GetHashtag(name)
	if err != nil {
		return nil, 0, err
	}

	tx := database.C.Model(&models.Post{}).
		Joins("JOIN post_hashtags ON posts.id = post_hashtags.post_id").
		Where("post_hashtags.hashtag_id = ?", hashtag.ID).
		Where("visibility = ?", models.PostVisibilityPublic)

	return listPostPage(tx, page, pageSize, "posts.created_at DESC, posts.id DESC")
}
