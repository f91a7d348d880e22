package models

import "time"

// Account is the local projection of the user directory. Only the fields the
// engine reads are kept here; profile and credential data live elsewhere.
type Account struct {
	BaseModel

	Name string `json:"name" gorm:"uniqueIndex"`
	Nick string `json:"nick"`

	Posts []Post `json:"posts" gorm:"foreignKey:AuthorID"`
}

// Follow is a directed edge in the follow graph, unique per pair.
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey"`
	FolloweeID uint      `json:"followee_id" gorm:"primaryKey;index"`
	CreatedAt  time.Time `json:"created_at"`
}
