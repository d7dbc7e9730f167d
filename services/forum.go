package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// ForumService performs the single-record mutations and the read views
// that are not a feed or a profile.
type ForumService struct {
	store *store.Store
	cache Cache
}

// NewForumService creates a ForumService. cache may be nil.
func NewForumService(s *store.Store, cache Cache) *ForumService {
	return &ForumService{store: s, cache: orNoCache(cache)}
}

// NewUser is the input for RegisterUser.
type NewUser struct {
	Username string
	Email    string
	Password string
}

// RegisterUser hashes the password and stores a new user.
func (f *ForumService) RegisterUser(ctx context.Context, in NewUser) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := store.RequireFields(
		store.Field{Name: "username", Value: in.Username},
		store.Field{Name: "email", Value: in.Email},
		store.Field{Name: "password", Value: in.Password},
	); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := f.store.CreateUser(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	utils.Sugar.Infof("user registered id=%d username=%s", u.ID, u.Username)
	return u, nil
}

// CreateSubreddit stores a new community. The description is optional.
func (f *ForumService) CreateSubreddit(ctx context.Context, name, description string) (*models.Subreddit, error) {
	name = utils.SanitizeLine(name)
	if err := store.RequireFields(store.Field{Name: "name", Value: name}); err != nil {
		return nil, err
	}
	return f.store.CreateSubreddit(ctx, models.Subreddit{
		Name:        name,
		Description: utils.SanitizeLine(description),
	})
}

// Subscribe adds userID to the subreddit's subscribers.
func (f *ForumService) Subscribe(ctx context.Context, userID, subredditID uint) (*models.Subscription, error) {
	if err := store.RequireFields(
		store.Field{Name: "user_id", Value: userID},
		store.Field{Name: "subreddit_id", Value: subredditID},
	); err != nil {
		return nil, err
	}
	sub, err := f.store.CreateSubscription(ctx, models.Subscription{UserID: userID, SubredditID: subredditID})
	if err != nil {
		return nil, err
	}
	f.cache.InvalidateByPrefix(ctx, profileKey(userID))
	return sub, nil
}

// NewPost is the input for CreatePost.
type NewPost struct {
	SubredditID uint
	UserID      uint
	Title       string
	Content     string
}

// CreatePost sanitizes and stores a post. Text that sanitizes to nothing counts as missing.
func (f *ForumService) CreatePost(ctx context.Context, in NewPost) (*models.Post, error) {
	title := utils.SanitizeLine(in.Title)
	content := utils.SanitizeContent(in.Content)
	if err := store.RequireFields(
		store.Field{Name: "subreddit_id", Value: in.SubredditID},
		store.Field{Name: "user_id", Value: in.UserID},
		store.Field{Name: "title", Value: title},
		store.Field{Name: "content", Value: content},
	); err != nil {
		return nil, err
	}

	post, err := f.store.CreatePost(ctx, models.Post{
		Title:       title,
		Content:     content,
		UserID:      in.UserID,
		SubredditID: in.SubredditID,
	})
	if err != nil {
		return nil, err
	}
	f.cache.InvalidateByPrefix(ctx, feedPrefix(in.SubredditID))
	return post, nil
}

// Upvote records userID's vote on the post.
func (f *ForumService) Upvote(ctx context.Context, postID, userID uint) (*models.Upvote, error) {
	if err := store.RequireFields(
		store.Field{Name: "post_id", Value: postID},
		store.Field{Name: "user_id", Value: userID},
	); err != nil {
		return nil, err
	}
	vote, err := f.store.CreateUpvote(ctx, models.Upvote{PostID: postID, UserID: userID})
	if err != nil {
		return nil, err
	}
	f.cache.InvalidateByPrefix(ctx, profileKey(userID))
	return vote, nil
}

// Comment stores a sanitized comment on the post.
func (f *ForumService) Comment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	content = utils.SanitizeContent(content)
	if err := store.RequireFields(
		store.Field{Name: "post_id", Value: postID},
		store.Field{Name: "user_id", Value: userID},
		store.Field{Name: "content", Value: content},
	); err != nil {
		return nil, err
	}
	return f.store.CreateComment(ctx, models.Comment{PostID: postID, UserID: userID, Content: content})
}
