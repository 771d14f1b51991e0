package models

import "time"

const (
	PostContentMaxLength    = 1000
	CommentContentMaxLength = 500
)

type Post struct {
	BaseModel

	Content  string  `json:"content"`
	Image    *string `json:"image"`
	Language string  `json:"language"`

	Likes    []Like    `json:"likes,omitempty"`
	Comments []Comment `json:"comments,omitempty"`

	AccountID uint    `json:"account_id" gorm:"index"`
	Account   Account `json:"account"`
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"not null;uniqueIndex:idx_like_pair"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_like_pair;index"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	BaseModel

	Content string `json:"content"`

	PostID    uint    `json:"post_id" gorm:"index"`
	AccountID uint    `json:"account_id" gorm:"index"`
	Account   Account `json:"account"`
}
