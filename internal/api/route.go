package api

import (
	"Ripple/internal/api/middleware"
	"Ripple/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/:user_id", group.UserHandler.GetUserByID)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.GET("/:user_id/followers", group.UserFollowHandler.GetUserFollowers)
			userFollowGroup.GET("/:user_id/followers/count", group.UserFollowHandler.GetUserFollowersCount)
			userFollowGroup.GET("/:user_id/followings", group.UserFollowHandler.GetUserFollowings)
			userFollowGroup.GET("/:user_id/followings/count", group.UserFollowHandler.GetUserFollowingCount)

			authGroup := userFollowGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/isfollow/:following_id", group.UserFollowHandler.GetSomeoneIsFollowing)
				authGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
				authGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/feed", group.PostHandler.GetFeed)
				authOptGroup.GET("/all", group.PostHandler.GetGlobalFeed)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/likes/:post_id/count", group.PostActionHandler.GetLikeCount)
			postActionGroup.GET("/comments/:post_id", group.CommentHandler.GetComments)
			postActionGroup.GET("/comments/:post_id/count", group.CommentHandler.GetCommentCount)

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
				authActionGroup.DELETE("/likes/:post_id", group.PostActionHandler.UnlikePost)
				authActionGroup.GET("/state/:post_id", group.PostActionHandler.GetPostActionState)

				authActionGroup.POST("/comments/:post_id", group.CommentHandler.CreateComment)
				authActionGroup.PUT("/comments/:comment_id", group.CommentHandler.UpdateComment)
				authActionGroup.DELETE("/comments/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/avatar", group.MediaHandler.UploadAvatar)
			mediaGroup.POST("/post-image", group.MediaHandler.UploadPostImage)
		}
	}

	return r
}
