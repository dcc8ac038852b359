package post

import (
	"social-feed-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册 /posts 下的全部路由
func RegisterRoutes(rg *gin.RouterGroup, posts *PostHandler, engagement *EngagementHandler) {
	auth := middleware.AuthMiddleware()

	postRoutes := rg.Group("/posts")
	{
		postRoutes.GET("", middleware.OptionalAuthMiddleware(), posts.ListPosts)
		postRoutes.POST("", auth, posts.CreatePost)
		postRoutes.GET("/get-my-posts", auth, posts.ListMyPosts)
		postRoutes.GET("/likes/:postId", auth, posts.ListPostLikers)

		// GET 下 /comments/:id 与 /comments/:id/replies 共用参数名
		postRoutes.GET("/comments/:id", auth, engagement.ListPostComments)
		postRoutes.GET("/comments/:id/replies", auth, engagement.ListReplies)
		postRoutes.PUT("/comments/:commentId", auth, engagement.UpdateComment)
		postRoutes.DELETE("/comments/:commentId", auth, engagement.DeleteComment)
		postRoutes.POST("/comments/:commentId/like", auth, engagement.ToggleCommentLike)
		postRoutes.POST("/comments/:commentId/replies", auth, engagement.CreateReply)

		postRoutes.PUT("/replies/:replyId", auth, engagement.UpdateReply)
		postRoutes.DELETE("/replies/:replyId", auth, engagement.DeleteReply)
		postRoutes.POST("/replies/:replyId/like", auth, engagement.ToggleReplyLike)

		postRoutes.GET("/:postId", auth, posts.GetPost)
		postRoutes.PUT("/:postId", auth, posts.UpdatePost)
		postRoutes.DELETE("/:postId", auth, posts.DeletePost)
		postRoutes.POST("/:postId/like", auth, engagement.TogglePostLike)
		postRoutes.POST("/:postId/react", auth, engagement.React)
		postRoutes.POST("/:postId/comments", auth, engagement.CreateComment)
		postRoutes.GET("/:postId/comments", auth, engagement.ListComments)
	}
}
