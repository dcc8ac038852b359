package service

import (
	"context"
	"social-feed-backend/internal/model"
)

// PostServiceInterface 供 API 层依赖，便于测试时替换
type PostServiceInterface interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, authorID, postID string) error
	GetPost(ctx context.Context, postID, viewerID string) (*model.Post, error)
	ListPosts(ctx context.Context, viewerID string) ([]*model.Post, error)
	ListMyPosts(ctx context.Context, authorID string) ([]*model.Post, error)
	ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error)
}

type EngagementServiceInterface interface {
	ToggleLike(ctx context.Context, userID string, target model.LikeTarget) (bool, error)
	ToggleReaction(ctx context.Context, userID, postID, commentID, replyID string) (bool, error)
	TogglePostLike(ctx context.Context, userID, postID string) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error)
	ToggleReplyLike(ctx context.Context, userID, replyID string) (bool, error)

	CreateComment(ctx context.Context, authorID, postID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, postID, viewerID string, page, limit int) (*model.CommentPage, error)
	ListPostComments(ctx context.Context, postID, viewerID string) ([]*model.Comment, error)
	UpdateComment(ctx context.Context, authorID, commentID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, authorID, commentID string) error

	CreateReply(ctx context.Context, authorID, commentID, content string) (*model.Reply, error)
	ListReplies(ctx context.Context, commentID, viewerID string) ([]*model.Reply, error)
	UpdateReply(ctx context.Context, authorID, replyID, content string) (*model.Reply, error)
	DeleteReply(ctx context.Context, authorID, replyID string) error
}

var (
	_ PostServiceInterface       = (*PostService)(nil)
	_ EngagementServiceInterface = (*EngagementService)(nil)
)
