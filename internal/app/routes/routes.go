package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/controllers"
	"github.com/emre/inkwell/internal/middleware"
	"github.com/emre/inkwell/internal/pkg/metrics"
	"github.com/emre/inkwell/internal/pkg/pagecache"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	feedController *controllers.FeedController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	groupController *controllers.GroupController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	pageCache *pagecache.Cache,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/login", authController.LoginPrompt)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public browsing routes ---
	// The global listing is the only cached page; every other listing is
	// rendered fresh on each request.
	v1.GET("/posts", middleware.PageCache(pageCache), feedController.GetGlobalFeed)
	v1.GET("/posts/:postId", postController.GetPost)
	v1.GET("/posts/:postId/comments", commentController.ListComments)

	groups := v1.Group("/groups")
	{
		groups.GET("", groupController.GetAllGroups)
		groups.GET("/:slug", groupController.GetGroupBySlug)
		groups.GET("/:slug/posts", feedController.GetGroupFeed)
	}

	// Profiles are public but render follow state for signed-in viewers.
	profiles := v1.Group("/profiles")
	profiles.Use(authMiddleware.OptionalJWTAuth())
	{
		profiles.GET("/:username", profileController.GetProfile)
		profiles.GET("/:username/posts", feedController.GetProfileFeed)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/feed", feedController.GetFollowedFeed)

		authenticated.POST("/posts", postController.CreatePost)
		authenticated.PUT("/posts/:postId", postController.UpdatePost)
		authenticated.DELETE("/posts/:postId", postController.DeletePost)
		authenticated.POST("/posts/:postId/comments", commentController.CreateComment)
		authenticated.DELETE("/comments/:commentId", commentController.DeleteComment)

		authenticated.POST("/profiles/:username/follow", profileController.Follow)
		authenticated.DELETE("/profiles/:username/follow", profileController.Unfollow)
		authenticated.DELETE("/account", profileController.DeleteAccount)

		authenticated.DELETE("/admin/cache", adminController.ClearCache)
		authenticated.DELETE("/admin/groups/:slug", adminController.DeleteGroup)
	}
}
