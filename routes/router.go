package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/config"
	"github.com/cppla/subforum/controllers"
	"github.com/cppla/subforum/middleware"
	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// SetupRouter wires routes, middlewares, and controllers. cache may be nil.
func SetupRouter(cfg config.AppConfig, s *store.Store, cache services.Cache) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// wildcard origins cannot carry credentials
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.PageViewRecorder(s))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	forum := services.NewForumService(s, cache)
	feed := services.NewFeedService(s, cache)
	profile := services.NewProfileService(s, cache)

	subredditController := controllers.NewSubredditController(forum, feed)
	postController := controllers.NewPostController(forum)
	userController := controllers.NewUserController(forum, profile)
	statsController := controllers.NewStatsController(forum)

	api := r.Group("/api/v1")
	limited := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute)

	subreddits := api.Group("/subreddits")
	subreddits.GET("", subredditController.ListSubreddits)
	subreddits.GET("/:id", subredditController.GetSubreddit)
	subreddits.GET("/:id/posts", subredditController.ListPosts)
	subreddits.POST("", limited, subredditController.CreateSubreddit)
	subreddits.POST("/:id/posts", limited, subredditController.CreatePost)
	subreddits.POST("/:id/subscribe", limited, subredditController.Subscribe)

	posts := api.Group("/posts")
	posts.GET("/:id", postController.GetPost)
	posts.POST("/:id/upvote", limited, postController.Upvote)
	posts.POST("/:id/comments", limited, postController.CreateComment)

	users := api.Group("/users")
	users.POST("", limited, userController.Register)
	users.GET("/:id", userController.GetProfile)

	api.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
