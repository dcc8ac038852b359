package post

import (
	"context"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockPostService 是 PostServiceInterface 的模拟实现
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, input service.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, input service.UpdatePostInput) (*model.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, authorID, postID string) error {
	args := m.Called(ctx, authorID, postID)
	return args.Error(0)
}

func (m *MockPostService) GetPost(ctx context.Context, postID, viewerID string) (*model.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, viewerID string) ([]*model.Post, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostService) ListMyPosts(ctx context.Context, authorID string) ([]*model.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostService) ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]*model.Author), args.Error(1)
}

// MockEngagementService 是 EngagementServiceInterface 的模拟实现
type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, userID string, target model.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) ToggleReaction(ctx context.Context, userID, postID, commentID, replyID string) (bool, error) {
	args := m.Called(ctx, userID, postID, commentID, replyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) TogglePostLike(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) ToggleReplyLike(ctx context.Context, userID, replyID string) (bool, error) {
	args := m.Called(ctx, userID, replyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) CreateComment(ctx context.Context, authorID, postID, content string) (*model.Comment, error) {
	args := m.Called(ctx, authorID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockEngagementService) ListComments(ctx context.Context, postID, viewerID string, page, limit int) (*model.CommentPage, error) {
	args := m.Called(ctx, postID, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommentPage), args.Error(1)
}

func (m *MockEngagementService) ListPostComments(ctx context.Context, postID, viewerID string) ([]*model.Comment, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockEngagementService) UpdateComment(ctx context.Context, authorID, commentID, content string) (*model.Comment, error) {
	args := m.Called(ctx, authorID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockEngagementService) DeleteComment(ctx context.Context, authorID, commentID string) error {
	args := m.Called(ctx, authorID, commentID)
	return args.Error(0)
}

func (m *MockEngagementService) CreateReply(ctx context.Context, authorID, commentID, content string) (*model.Reply, error) {
	args := m.Called(ctx, authorID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reply), args.Error(1)
}

func (m *MockEngagementService) ListReplies(ctx context.Context, commentID, viewerID string) ([]*model.Reply, error) {
	args := m.Called(ctx, commentID, viewerID)
	return args.Get(0).([]*model.Reply), args.Error(1)
}

func (m *MockEngagementService) UpdateReply(ctx context.Context, authorID, replyID, content string) (*model.Reply, error) {
	args := m.Called(ctx, authorID, replyID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reply), args.Error(1)
}

func (m *MockEngagementService) DeleteReply(ctx context.Context, authorID, replyID string) error {
	args := m.Called(ctx, authorID, replyID)
	return args.Error(0)
}

// 确保模拟实现了服务接口
var (
	_ service.PostServiceInterface       = (*MockPostService)(nil)
	_ service.EngagementServiceInterface = (*MockEngagementService)(nil)
)
