package router

import (
	"vidtube/internal/api/handler"
	"vidtube/internal/api/middleware"
	"vidtube/internal/config"
	"vidtube/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// Handlers 业务路由依赖的全部 handler
type Handlers struct {
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Tweet        *handler.TweetHandler
	Playlist     *handler.PlaylistHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Search       *handler.SearchHandler
}

// Setup 注册所有业务路由
// 读接口使用 AuthOptional，写接口使用 AuthRequired 并按调用者限流
func Setup(r *gin.Engine, h Handlers, jwtCfg *config.JWTConfig, limiter *ratelimit.KeyedRateLimiter) {
	v1 := r.Group("/api/v1")

	read := middleware.AuthOptional(jwtCfg)
	write := []gin.HandlerFunc{middleware.AuthRequired(jwtCfg)}
	register := []gin.HandlerFunc{}
	if limiter != nil {
		write = append(write, middleware.RateLimit(limiter))
		register = append(register, middleware.RateLimit(limiter))
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("", append(register, h.User.Register)...)
		users.GET("/c/:username", read, h.User.ChannelProfile)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		videos.GET("", read, h.Video.List)
		videos.GET("/:videoId", read, h.Video.Detail)

		videosAuth := videos.Group("", write...)
		{
			videosAuth.POST("", h.Video.Publish)
			videosAuth.PATCH("/:videoId", h.Video.Update)
			videosAuth.DELETE("/:videoId", h.Video.Delete)
			videosAuth.PATCH("/toggle/publish/:videoId", h.Video.TogglePublish)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", read, h.Comment.ListByVideo)

		commentsAuth := comments.Group("", write...)
		{
			commentsAuth.POST("/:videoId", h.Comment.Create)
			commentsAuth.PATCH("/c/:commentId", h.Comment.Update)
			commentsAuth.DELETE("/c/:commentId", h.Comment.Delete)
		}
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("", read, h.Tweet.List)
		tweets.GET("/user/:userId", read, h.Tweet.ListByUser)

		tweetsAuth := tweets.Group("", write...)
		{
			tweetsAuth.POST("", h.Tweet.Create)
			tweetsAuth.PATCH("/:tweetId", h.Tweet.Update)
			tweetsAuth.DELETE("/:tweetId", h.Tweet.Delete)
		}
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlist")
	{
		playlists.GET("/user/:userId", read, h.Playlist.ListByUser)
		playlists.GET("/:playlistId", read, h.Playlist.Get)

		playlistsAuth := playlists.Group("", write...)
		{
			playlistsAuth.POST("", h.Playlist.Create)
			playlistsAuth.PATCH("/:playlistId", h.Playlist.Update)
			playlistsAuth.DELETE("/:playlistId", h.Playlist.Delete)
			playlistsAuth.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
			playlistsAuth.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes")
	{
		likes.GET("/videos", middleware.AuthRequired(jwtCfg), h.Like.LikedVideos)

		likesAuth := likes.Group("/toggle", write...)
		{
			likesAuth.POST("/v/:videoId", h.Like.ToggleVideo)
			likesAuth.POST("/c/:commentId", h.Like.ToggleComment)
			likesAuth.POST("/t/:tweetId", h.Like.ToggleTweet)
		}
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/c/:channelId", read, h.Subscription.Subscribers)
		subscriptions.GET("/u/:subscriberId", read, h.Subscription.SubscribedChannels)

		subscriptionsAuth := subscriptions.Group("", write...)
		{
			subscriptionsAuth.POST("/c/:channelId", h.Subscription.Toggle)
		}
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/videos", read, h.Search.SearchVideos)
	}
}
