package models

// Subscription links a user to a subreddit they follow.
// The combination of UserID and SubredditID is unique.
type Subscription struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_subscription_user_subreddit" json:"user_id"`
	SubredditID uint `gorm:"not null;index;uniqueIndex:idx_subscription_user_subreddit" json:"subreddit_id"`
}
