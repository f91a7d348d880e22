package models

import "time"

// PostMaxContentLength is the upper bound of a post body, counted in runes.
const PostMaxContentLength = 5000

type PostVisibilityLevel = int8

const (
	PostVisibilityPublic = PostVisibilityLevel(iota)
	PostVisibilityFollowers
	PostVisibilityPrivate
)

type Post struct {
	BaseModel

	Content    string              `json:"content" gorm:"type:text"`
	Visibility PostVisibilityLevel `json:"visibility" gorm:"index"`

	Hashtags []Hashtag `json:"hashtags" gorm:"many2many:post_hashtags"`

	// Derived counters, only ever moved with relative updates.
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`

	AuthorID uint    `json:"author_id" gorm:"index"`
	Author   Account `json:"author"`
}

// PostView records which account saw which post. The aggregate view_count on
// the post row moves synchronously on read; this table is the per-viewer log
// flushed in batches by the scheduler.
type PostView struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}
