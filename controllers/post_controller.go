package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/utils"
)

// PostController manages reads of single posts, their upvotes and comments.
type PostController struct {
	forum *services.ForumService
}

// NewPostController creates a new PostController instance.
func NewPostController(forum *services.ForumService) *PostController {
	return &PostController{forum: forum}
}

// GetPost returns a single post with comments and its upvote count.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	view, err := p.forum.Post(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, 50020, "failed to load post")
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}

// Upvote records the given user's vote on the post.
func (p *PostController) Upvote(ctx *gin.Context) {
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
	vote, err := p.forum.Upvote(ctx.Request.Context(), id, req.UserID)
	if err != nil {
		respondError(ctx, err, 50021, "failed to upvote post")
		return
	}
	utils.Created(ctx, gin.H{"message": "upvoted successfully", "upvote": vote})
}

// CreateComment adds a comment to the post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		UserID  uint   `json:"user_id"`
		Content string `json:"content"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	comment, err := p.forum.Comment(ctx.Request.Context(), id, req.UserID, req.Content)
	if err != nil {
		respondError(ctx, err, 50022, "failed to create comment")
		return
	}
	utils.Created(ctx, gin.H{"comment": comment})
}
