package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/mosaicnet/interlink/pkg/internal/cache"
	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"gorm.io/gorm"
)

// UserDirectory resolves display names to identities. The engine only ever
// reads from it; account lifecycle belongs to another subsystem.
type UserDirectory interface {
	ResolveByName(name string) (models.Account, error)
	Exists(id uint) bool
}

// FollowGraph exposes the directed follow edges consulted by the visibility
// policy and the feed assembler.
type FollowGraph interface {
	FollowingIDs(userID uint) ([]uint, error)
	IsFollowing(followerID, followeeID uint) (bool, error)
}

// Default collaborators, backed by the local database. Swappable at boot.
var (
	Users   UserDirectory = localUserDirectory{}
	Follows FollowGraph   = localFollowGraph{}
)

type localUserDirectory struct{}

func (localUserDirectory) ResolveByName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, fmt.Errorf("unable to resolve account by name: %w", err)
	}
	return account, nil
}

func (localUserDirectory) Exists(id uint) bool {
	var count int64
	database.C.Model(&models.Account{}).Where("id = ?", id).Count(&count)
	return count > 0
}

type localFollowGraph struct{}

func (localFollowGraph) FollowingIDs(userID uint) ([]uint, error) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	cacheKey := fmt.Sprintf("follow-list#%d", userID)
	if hit, err := marshal.Get(ctx, cacheKey, new([]uint)); err == nil {
		return *hit.(*[]uint), nil
	}

	var ids []uint
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("unable to list following ids: %w", err)
	}

	_ = marshal.Set(ctx, cacheKey, ids,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"follow-list", fmt.Sprintf("user#%d", userID)}),
	)

	return ids, nil
}

func (localFollowGraph) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NewFollow records a follow edge. Self-follows and duplicate edges are
// absorbed as no-ops.
func NewFollow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return nil
	}
	err := database.C.Where(models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).FirstOrCreate(&models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
	if err != nil {
		return err
	}

	invalidateFollowCache(followerID)
	return nil
}

func RemoveFollow(followerID, followeeID uint) error {
	err := database.C.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return err
	}

	invalidateFollowCache(followerID)
	return nil
}

func invalidateFollowCache(userID uint) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Invalidate(
		context.Background(),
		store.WithInvalidateTags([]string{fmt.Sprintf("user#%d", userID)}),
	)
}
