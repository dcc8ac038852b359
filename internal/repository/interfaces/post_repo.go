package interfaces

import (
	"context"
	"social-feed-backend/internal/model"
)

// PostRepository 定义了帖子及其媒体的数据库操作接口。
// Get 系列方法在记录不存在时返回 (nil, nil)。
type PostRepository interface {
	// WithTx 在一个事务中执行 fn，fn 返回错误时回滚
	WithTx(ctx context.Context, fn func(tx PostRepository) error) error

	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
	// GetPostDetail 加载帖子、媒体和作者投影
	GetPostDetail(ctx context.Context, id string) (*model.Post, error)
	// GetPostAggregate 加载完整聚合：媒体、作者、点赞、评论及其回复
	GetPostAggregate(ctx context.Context, id string) (*model.Post, error)
	ListPostAggregates(ctx context.Context, filter model.PostFilter) ([]*model.Post, error)
	PostExists(ctx context.Context, id string) (bool, error)

	CreateMedia(ctx context.Context, media *model.PostMedia) error
	DeleteMediaByIDs(ctx context.Context, ids []string) error
	DeleteMediaByPostID(ctx context.Context, postID string) error

	ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error)
}
