package store

import (
	"context"

	"github.com/cppla/subforum/models"
)

// SubscriptionsOf returns the user's subscriptions in creation order.
func (s *Store) SubscriptionsOf(ctx context.Context, userID uint) ([]models.Subscription, error) {
	if _, err := Get[models.User](ctx, s, userID); err != nil {
		return nil, err
	}
	return ListBy[models.Subscription](ctx, s, "user_id", userID)
}

// UpvotesOf returns the user's upvotes in creation order.
func (s *Store) UpvotesOf(ctx context.Context, userID uint) ([]models.Upvote, error) {
	if _, err := Get[models.User](ctx, s, userID); err != nil {
		return nil, err
	}
	return ListBy[models.Upvote](ctx, s, "user_id", userID)
}

// PostsOf returns a subreddit's posts. An unknown subreddit simply has none.
func (s *Store) PostsOf(ctx context.Context, subredditID uint) ([]models.Post, error) {
	return ListBy[models.Post](ctx, s, "subreddit_id", subredditID)
}

// CommentsOf returns the comments on a post in creation order.
func (s *Store) CommentsOf(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := Get[models.Post](ctx, s, postID); err != nil {
		return nil, err
	}
	return ListBy[models.Comment](ctx, s, "post_id", postID)
}

// UpvotesOfPost returns the upvotes a post has received in creation order.
func (s *Store) UpvotesOfPost(ctx context.Context, postID uint) ([]models.Upvote, error) {
	if _, err := Get[models.Post](ctx, s, postID); err != nil {
		return nil, err
	}
	return ListBy[models.Upvote](ctx, s, "post_id", postID)
}
