package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/utils"
)

// SubredditController serves communities, their feeds and subscriptions.
type SubredditController struct {
	forum *services.ForumService
	feed  *services.FeedService
}

// NewSubredditController creates a new SubredditController instance.
func NewSubredditController(forum *services.ForumService, feed *services.FeedService) *SubredditController {
	return &SubredditController{forum: forum, feed: feed}
}

// ListSubreddits returns every community.
func (s *SubredditController) ListSubreddits(ctx *gin.Context) {
	list, err := s.forum.Subreddits(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, 50010, "failed to list subreddits")
		return
	}
	utils.Success(ctx, gin.H{"items": list})
}

// CreateSubreddit creates a community with a unique name.
func (s *SubredditController) CreateSubreddit(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	sr, err := s.forum.CreateSubreddit(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(ctx, err, 50011, "failed to create subreddit")
		return
	}
	utils.Created(ctx, gin.H{"subreddit": sr})
}

// GetSubreddit returns one community.
func (s *SubredditController) GetSubreddit(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	sr, err := s.forum.Subreddit(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, 50012, "failed to load subreddit")
		return
	}
	utils.Success(ctx, gin.H{"subreddit": sr})
}

// ListPosts returns a page of the subreddit's feed, newest first.
func (s *SubredditController) ListPosts(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page := services.ParsePaging(ctx.Query("limit"), ctx.Query("offset"))
	posts, err := s.feed.Feed(ctx.Request.Context(), id, page)
	if err != nil {
		respondError(ctx, err, 50013, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{
		"items":  posts,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// CreatePost adds a post to the subreddit.
func (s *SubredditController) CreatePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		UserID  uint   `json:"user_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	post, err := s.forum.CreatePost(ctx.Request.Context(), services.NewPost{
		SubredditID: id,
		UserID:      req.UserID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		respondError(ctx, err, 50014, "failed to create post")
		return
	}
	utils.Created(ctx, gin.H{"post": post})
}

// Subscribe subscribes the given user to the subreddit.
func (s *SubredditController) Subscribe(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		UserID uint `json:"user_id"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	sub, err := s.forum.Subscribe(ctx.Request.Context(), req.UserID, id)
	if err != nil {
		respondError(ctx, err, 50015, "failed to subscribe")
		return
	}
	utils.Created(ctx, gin.H{"message": "subscribed successfully", "subscription": sub})
}
