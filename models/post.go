package models

import "time"

// Post represents a submission to a subreddit.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"index;not null" json:"created_at"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	SubredditID uint      `gorm:"index;not null" json:"subreddit_id"`
}
