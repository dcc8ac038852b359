package interfaces

import (
	"context"
	"errors"
	"social-feed-backend/internal/model"
)

// ErrDuplicateLike 同一用户对同一对象重复点赞（唯一索引冲突）
var ErrDuplicateLike = errors.New("like already exists")

// EngagementRepository 定义了评论、回复和点赞的数据库操作接口
type EngagementRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	// GetCommentDetail 加载评论、作者、点赞和回复
	GetCommentDetail(ctx context.Context, id string) (*model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error)
	CountCommentsByPost(ctx context.Context, postID string) (int, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id string) error

	CreateReply(ctx context.Context, reply *model.Reply) error
	GetReplyByID(ctx context.Context, id string) (*model.Reply, error)
	GetReplyDetail(ctx context.Context, id string) (*model.Reply, error)
	ListRepliesByComment(ctx context.Context, commentID string) ([]*model.Reply, error)
	UpdateReply(ctx context.Context, reply *model.Reply) error
	DeleteReply(ctx context.Context, id string) error

	FindLike(ctx context.Context, userID string, target model.LikeTarget) (*model.Like, error)
	// CreateLike 违反唯一约束时返回 ErrDuplicateLike
	CreateLike(ctx context.Context, like *model.Like) error
	// DeleteLike 返回是否真的删除了记录
	DeleteLike(ctx context.Context, id string) (bool, error)
}
