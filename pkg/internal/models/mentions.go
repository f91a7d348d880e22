package models

import "time"

type MentionTargetType = int8

const (
	MentionTargetPost = MentionTargetType(iota)
	MentionTargetComment
)

type Mention struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	AccountID  uint              `json:"account_id" gorm:"uniqueIndex:mentions_identity"`
	TargetType MentionTargetType `json:"target_type" gorm:"uniqueIndex:mentions_identity"`
	TargetID   uint              `json:"target_id" gorm:"uniqueIndex:mentions_identity"`

	AuthorID uint `json:"author_id"`

	Account Account `json:"account"`
}
