package models

import "time"

// Hashtag rows are created lazily on first use and never deleted, even when
// the usage count drops back to zero. Keeping the row avoids recreate races
// and preserves historical linkage.
type Hashtag struct {
	BaseModel

	Name string `json:"name" gorm:"uniqueIndex" validate:"lowercase"`

	// Count of live, non-deleted posts currently linked to this hashtag.
	// Moved with relative updates only, floored at zero.
	UsageCount int64 `json:"usage_count"`

	Posts []Post `json:"posts" gorm:"many2many:post_hashtags"`
}

type PostHashtag struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	HashtagID uint      `json:"hashtag_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}
