package models

import "time"

// Follow is a directed edge from the follower to the followee.
// A pair can only exist once, enforced by idx_follow_pair.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	FolloweeID uint      `json:"followee_id" gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt  time.Time `json:"created_at"`
}
