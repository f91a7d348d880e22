package services

import (
	"errors"
	"fmt"

	"github.com/mosaicnet/interlink/pkg/internal/database"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReconcileMentions converges the mention rows of one piece of content to
// the given username set. Names that do not resolve and self-references are
// dropped silently; mentioning a nonexistent user is user error, not system
// error, and must never fail the containing edit. Must run inside the
// transaction of the triggering edit.
func ReconcileMentions(tx *gorm.DB, targetType models.MentionTargetType, targetID, authorID uint, names []string) error {
	var wanted []uint
	for _, name := range lo.Uniq(names) {
		account, err := Users.ResolveByName(name)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				continue
			}
			return err
		}
		if account.ID == authorID {
			continue
		}
		wanted = append(wanted, account.ID)
	}
	wanted = lo.Uniq(wanted)

	var current []uint
	if err := tx.Model(&models.Mention{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Pluck("account_id", &current).Error; err != nil {
		return fmt.Errorf("unable to list current mentions: %w", err)
	}

	removed, added := lo.Difference(current, wanted)

	if len(removed) > 0 {
		if err := tx.
			Where("target_type = ? AND target_id = ? AND account_id IN ?", targetType, targetID, removed).
			Delete(&models.Mention{}).Error; err != nil {
			return err
		}
	}

	for _, accountID := range added {
		// The unique triple absorbs races with a concurrent edit.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Mention{
			AccountID:  accountID,
			TargetType: targetType,
			TargetID:   targetID,
			AuthorID:   authorID,
		}).Error; err != nil {
			return err
		}
	}

	if len(removed) > 0 || len(added) > 0 {
		log.Debug().Uint("target", targetID).Int8("type", targetType).
			Int("added", len(added)).Int("removed", len(removed)).
			Msg("Reconciled mentions.")
	}

	return nil
}

// DeleteMentionsFor drops every mention row of one piece of content; called
// when the content itself goes away.
func DeleteMentionsFor(tx *gorm.DB, targetType models.MentionTargetType, targetID uint) error {
	return tx.
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&models.Mention{}).Error
}

// ListMentionsOf returns where a user has been mentioned, newest first,
// optionally narrowed to one target type.
func ListMentionsOf(userID uint, targetType *models.MentionTargetType, page, pageSize int) ([]models.Mention, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	tx := database.C.Model(&models.Mention{}).Where("account_id = ?", userID)
	if targetType != nil {
		tx = tx.Where("target_type = ?", *targetType)
	}

	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var mentions []models.Mention
	if err := tx.
		Order("created_at DESC, id DESC").
		Limit(pageSize).Offset(page * pageSize).
		Find(&mentions).Error; err != nil {
		return nil, 0, err
	}

	return mentions, count, nil
}

func CountMentionsOf(userID uint) (int64, error) {
	var count int64
	err := database.C.Model(&models.Mention{}).
		Where("account_id = ?", userID).
		Count(&count).Error
	return count, err
}
