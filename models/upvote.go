package models

// Upvote records a user's vote on a post.
// The combination of UserID and PostID is unique.
type Upvote struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index;uniqueIndex:idx_upvote_user_post" json:"post_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_upvote_user_post" json:"user_id"`
}
