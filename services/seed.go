package services

import (
	"context"
	"fmt"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// SeedDemo fills an empty forum with two of every kind. It does nothing
// when any user already exists.
func SeedDemo(ctx context.Context, s *store.Store, f *ForumService) error {
	n, err := store.Count[models.User](ctx, s)
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Sugar.Infof("seed skipped: %d users already present", n)
		return nil
	}

	var users [2]*models.User
	var subs [2]*models.Subreddit
	var posts [2]*models.Post
	for i := 0; i < 2; i++ {
		k := i + 1
		if users[i], err = f.RegisterUser(ctx, NewUser{
			Username: fmt.Sprintf("user%d", k),
			Email:    fmt.Sprintf("user%d@example.com", k),
			Password: fmt.Sprintf("password%d", k),
		}); err != nil {
			return fmt.Errorf("seed user%d: %w", k, err)
		}
		if subs[i], err = f.CreateSubreddit(ctx, fmt.Sprintf("subreddit%d", k), fmt.Sprintf("Description of subreddit%d", k)); err != nil {
			return fmt.Errorf("seed subreddit%d: %w", k, err)
		}
	}

	titles := [2]string{"First", "Second"}
	for i := 0; i < 2; i++ {
		if posts[i], err = f.CreatePost(ctx, NewPost{
			SubredditID: subs[i].ID,
			UserID:      users[i].ID,
			Title:       titles[i] + " Post",
			Content:     "Content of the " + titles[i] + " post",
		}); err != nil {
			return fmt.Errorf("seed post %d: %w", i+1, err)
		}
	}

	// each user comments on and upvotes the other's post
	for i := 0; i < 2; i++ {
		other := users[1-i].ID
		if _, err := f.Comment(ctx, posts[i].ID, other, titles[i]+" comment"); err != nil {
			return fmt.Errorf("seed comment %d: %w", i+1, err)
		}
		if _, err := f.Upvote(ctx, posts[i].ID, other); err != nil {
			return fmt.Errorf("seed upvote %d: %w", i+1, err)
		}
		if _, err := f.Subscribe(ctx, users[i].ID, subs[i].ID); err != nil {
			return fmt.Errorf("seed subscription %d: %w", i+1, err)
		}
	}
	utils.Sugar.Info("seeded demo forum")
	return nil
}
