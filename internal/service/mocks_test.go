package service

import (
	"context"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"social-feed-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

// WithTx 直接在 mock 自身上执行 fn
func (m *MockPostRepository) WithTx(ctx context.Context, fn func(tx interfaces.PostRepository) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostDetail(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostAggregate(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListPostAggregates(ctx context.Context, filter model.PostFilter) ([]*model.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) PostExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CreateMedia(ctx context.Context, media *model.PostMedia) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteMediaByIDs(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteMediaByPostID(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Author), args.Error(1)
}

// MockEngagementRepository 是 EngagementRepository 接口的模拟实现
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockEngagementRepository) GetCommentDetail(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockEngagementRepository) ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error) {
	args := m.Called(ctx, postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockEngagementRepository) CountCommentsByPost(ctx context.Context, postID string) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockEngagementRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteComment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEngagementRepository) CreateReply(ctx context.Context, reply *model.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockEngagementRepository) GetReplyByID(ctx context.Context, id string) (*model.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reply), args.Error(1)
}

func (m *MockEngagementRepository) GetReplyDetail(ctx context.Context, id string) (*model.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reply), args.Error(1)
}

func (m *MockEngagementRepository) ListRepliesByComment(ctx context.Context, commentID string) ([]*model.Reply, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reply), args.Error(1)
}

func (m *MockEngagementRepository) UpdateReply(ctx context.Context, reply *model.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteReply(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEngagementRepository) FindLike(ctx context.Context, userID string, target model.LikeTarget) (*model.Like, error) {
	args := m.Called(ctx, userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Like), args.Error(1)
}

func (m *MockEngagementRepository) CreateLike(ctx context.Context, like *model.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteLike(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMediaStore 是 storage.MediaStore 接口的模拟实现
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, obj *storage.Object) (*storage.UploadResult, error) {
	args := m.Called(ctx, obj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// deletedIDs 按调用顺序返回 Delete 的参数
func (m *MockMediaStore) deletedIDs() []string {
	var ids []string
	for _, call := range m.Calls {
		if call.Method == "Delete" {
			ids = append(ids, call.Arguments.String(1))
		}
	}
	return ids
}
