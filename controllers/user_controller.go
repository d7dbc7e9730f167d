package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/utils"
)

// UserController handles registration and profiles.
type UserController struct {
	forum   *services.ForumService
	profile *services.ProfileService
}

// NewUserController creates a UserController.
func NewUserController(forum *services.ForumService, profile *services.ProfileService) *UserController {
	return &UserController{forum: forum, profile: profile}
}

// Register creates a user with a bcrypt-hashed password.
func (u *UserController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	user, err := u.forum.RegisterUser(ctx.Request.Context(), services.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err, 50030, "failed to create user")
		return
	}
	utils.Created(ctx, gin.H{"user": user.Public()})
}

// GetProfile returns the user with all their subscriptions and upvotes.
func (u *UserController) GetProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	profile, err := u.profile.Profile(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, 50031, "failed to get user")
		return
	}
	utils.Success(ctx, profile)
}
