package services

import (
	"context"
	"time"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// CommentView is a comment with its author's username resolved.
type CommentView struct {
	models.Comment
	Author string `json:"author"`
}

// PostView is a post with its comments and upvote tally.
type PostView struct {
	models.Post
	Comments []CommentView `json:"comments"`
	Upvotes  int           `json:"upvotes"`
}

// Stats are forum-wide counters.
type Stats struct {
	Users         int64 `json:"user_count"`
	Subreddits    int64 `json:"subreddit_count"`
	Posts         int64 `json:"post_count"`
	Comments      int64 `json:"comment_count"`
	Upvotes       int64 `json:"upvote_count"`
	PageViewToday int64 `json:"daily_page_views"`
}

// Subreddits lists every community, oldest first.
func (f *ForumService) Subreddits(ctx context.Context) ([]models.Subreddit, error) {
	return store.List[models.Subreddit](ctx, f.store)
}

// Subreddit returns one community or a *store.NotFoundError.
func (f *ForumService) Subreddit(ctx context.Context, id uint) (*models.Subreddit, error) {
	return store.Get[models.Subreddit](ctx, f.store, id)
}

// Post returns the post with its comments in creation order.
func (f *ForumService) Post(ctx context.Context, postID uint) (*PostView, error) {
	post, err := store.Get[models.Post](ctx, f.store, postID)
	if err != nil {
		return nil, err
	}
	comments, err := f.store.CommentsOf(ctx, postID)
	if err != nil {
		return nil, err
	}
	votes, err := f.store.UpvotesOfPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}
	names := make(map[uint]string)
	for _, id := range utils.Unique(authorIDs) {
		u, err := store.Get[models.User](ctx, f.store, id)
		if err != nil {
			return nil, err
		}
		names[id] = u.Username
	}

	view := &PostView{Post: *post, Comments: make([]CommentView, 0, len(comments)), Upvotes: len(votes)}
	for _, c := range comments {
		view.Comments = append(view.Comments, CommentView{Comment: c, Author: names[c.UserID]})
	}
	return view, nil
}

// Stats counts every kind plus today's page views.
func (f *ForumService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	var err error
	if st.Users, err = store.Count[models.User](ctx, f.store); err != nil {
		return nil, err
	}
	if st.Subreddits, err = store.Count[models.Subreddit](ctx, f.store); err != nil {
		return nil, err
	}
	if st.Posts, err = store.Count[models.Post](ctx, f.store); err != nil {
		return nil, err
	}
	if st.Comments, err = store.Count[models.Comment](ctx, f.store); err != nil {
		return nil, err
	}
	if st.Upvotes, err = store.Count[models.Upvote](ctx, f.store); err != nil {
		return nil, err
	}
	if st.PageViewToday, err = f.store.PageViewsOn(ctx, time.Now()); err != nil {
		return nil, err
	}
	return &st, nil
}
