package service

import (
	"context"
	stderrors "errors"
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"social-feed-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultCommentPage  = 1
	DefaultCommentLimit = 10
	MaxCommentLimit     = 100
)

// EngagementService 处理评论、回复和点赞
type EngagementService struct {
	repo  interfaces.EngagementRepository
	posts interfaces.PostRepository
}

// NewEngagementService 创建一个新的 EngagementService 实例
func NewEngagementService(repo interfaces.EngagementRepository, posts interfaces.PostRepository) *EngagementService {
	return &EngagementService{repo: repo, posts: posts}
}

func requiredContent(content, what string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", errors.New(errors.ErrValidation, what+" content is required")
	}
	return trimmed, nil
}

func dbError(message string, err error) error {
	util.Logger.Error(message, zap.Error(err))
	return errors.Wrap(errors.ErrDatabase, message, err)
}

// ---------- 点赞 ----------

// ToggleLike 已点赞则取消，否则点赞。返回操作后的状态
func (s *EngagementService) ToggleLike(ctx context.Context, userID string, target model.LikeTarget) (bool, error) {
	if target.IsZero() {
		return false, errors.New(errors.ErrValidation, "Provide exactly one target: postId, commentId, or replyId")
	}

	existing, err := s.repo.FindLike(ctx, userID, target)
	if err != nil {
		return false, dbError("Failed to toggle like", err)
	}

	if existing != nil {
		// 并发请求已经删除时同样视为未点赞
		if _, err := s.repo.DeleteLike(ctx, existing.ID); err != nil {
			return false, dbError("Failed to toggle like", err)
		}
		util.Logger.Info("取消点赞",
			zap.String("user_id", userID),
			zap.String("kind", string(target.Kind())),
			zap.String("target_id", target.ID()))
		return false, nil
	}

	err = s.repo.CreateLike(ctx, &model.Like{UserID: userID, Target: target})
	if err != nil && !stderrors.Is(err, interfaces.ErrDuplicateLike) {
		return false, dbError("Failed to toggle like", err)
	}
	util.Logger.Info("点赞",
		zap.String("user_id", userID),
		zap.String("kind", string(target.Kind())),
		zap.String("target_id", target.ID()))
	return true, nil
}

// ToggleReaction 通用入口，不检查对象是否存在
func (s *EngagementService) ToggleReaction(ctx context.Context, userID, postID, commentID, replyID string) (bool, error) {
	target, err := model.NewLikeTarget(postID, commentID, replyID)
	if err != nil {
		return false, errors.New(errors.ErrValidation, "Provide exactly one target: postId, commentId, or replyId")
	}
	return s.ToggleLike(ctx, userID, target)
}

func (s *EngagementService) TogglePostLike(ctx context.Context, userID, postID string) (bool, error) {
	return s.ToggleLike(ctx, userID, model.PostTarget(postID))
}

func (s *EngagementService) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return false, err
	}
	return s.ToggleLike(ctx, userID, model.CommentTarget(commentID))
}

func (s *EngagementService) ToggleReplyLike(ctx context.Context, userID, replyID string) (bool, error) {
	if _, err := s.getReply(ctx, replyID); err != nil {
		return false, err
	}
	return s.ToggleLike(ctx, userID, model.ReplyTarget(replyID))
}

// ---------- 评论 ----------

func (s *EngagementService) requirePost(ctx context.Context, postID string) error {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return dbError("Failed to load post", err)
	}
	if !exists {
		return errors.New(errors.ErrResourceNotFound, "Post not found")
	}
	return nil
}

func (s *EngagementService) getComment(ctx context.Context, commentID string) (*model.Comment, error) {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, dbError("Failed to load comment", err)
	}
	if comment == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Comment not found")
	}
	return comment, nil
}

func (s *EngagementService) ownComment(ctx context.Context, authorID, commentID string) (*model.Comment, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != authorID {
		return nil, errors.New(errors.ErrForbidden, "You can only modify your own comments")
	}
	return comment, nil
}

func (s *EngagementService) CreateComment(ctx context.Context, authorID, postID, content string) (*model.Comment, error) {
	content, err := requiredContent(content, "Comment")
	if err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, dbError("Failed to create comment", err)
	}

	created, err := s.getComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	created.Annotate(authorID)
	return created, nil
}

// ListComments 分页返回评论，page、limit 非正数时使用默认值，limit 最大为 MaxCommentLimit
func (s *EngagementService) ListComments(ctx context.Context, postID, viewerID string, page, limit int) (*model.CommentPage, error) {
	if page <= 0 {
		page = DefaultCommentPage
	}
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	total, err := s.repo.CountCommentsByPost(ctx, postID)
	if err != nil {
		return nil, dbError("Failed to fetch comments", err)
	}

	var comments []*model.Comment
	// 超出最后一页时不再查询，offset 也就不会溢出
	if page-1 <= total/limit {
		comments, err = s.repo.ListCommentsByPost(ctx, postID, (page-1)*limit, limit)
		if err != nil {
			return nil, dbError("Failed to fetch comments", err)
		}
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	for _, c := range comments {
		c.Annotate(viewerID)
	}

	return &model.CommentPage{
		Comments:   comments,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: model.TotalPages(total, limit),
	}, nil
}

// ListPostComments 不分页，返回帖子的全部评论及回复
func (s *EngagementService) ListPostComments(ctx context.Context, postID, viewerID string) ([]*model.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListCommentsByPost(ctx, postID, 0, 0)
	if err != nil {
		return nil, dbError("Failed to fetch comments", err)
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	for _, c := range comments {
		c.Annotate(viewerID)
	}
	return comments, nil
}

func (s *EngagementService) UpdateComment(ctx context.Context, authorID, commentID, content string) (*model.Comment, error) {
	content, err := requiredContent(content, "Comment")
	if err != nil {
		return nil, err
	}
	comment, err := s.ownComment(ctx, authorID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, dbError("Failed to update comment", err)
	}

	updated, err := s.repo.GetCommentDetail(ctx, commentID)
	if err != nil {
		return nil, dbError("Failed to load comment", err)
	}
	if updated == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Comment not found")
	}
	updated.Annotate(authorID)
	return updated, nil
}

// DeleteComment 回复和点赞随评论一起删除
func (s *EngagementService) DeleteComment(ctx context.Context, authorID, commentID string) error {
	if _, err := s.ownComment(ctx, authorID, commentID); err != nil {
		return err
	}
	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return dbError("Failed to delete comment", err)
	}
	return nil
}

// ---------- 回复 ----------

func (s *EngagementService) getReply(ctx context.Context, replyID string) (*model.Reply, error) {
	reply, err := s.repo.GetReplyByID(ctx, replyID)
	if err != nil {
		return nil, dbError("Failed to load reply", err)
	}
	if reply == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Reply not found")
	}
	return reply, nil
}

func (s *EngagementService) ownReply(ctx context.Context, authorID, replyID string) (*model.Reply, error) {
	reply, err := s.getReply(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply.AuthorID != authorID {
		return nil, errors.New(errors.ErrForbidden, "You can only modify your own replies")
	}
	return reply, nil
}

func (s *EngagementService) CreateReply(ctx context.Context, authorID, commentID, content string) (*model.Reply, error) {
	content, err := requiredContent(content, "Reply")
	if err != nil {
		return nil, err
	}
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	reply := &model.Reply{CommentID: commentID, AuthorID: authorID, Content: content}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, dbError("Failed to create reply", err)
	}

	created, err := s.getReply(ctx, reply.ID)
	if err != nil {
		return nil, err
	}
	created.Annotate(authorID)
	return created, nil
}

// ListReplies 按创建时间正序返回全部回复
func (s *EngagementService) ListReplies(ctx context.Context, commentID, viewerID string) ([]*model.Reply, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}
	replies, err := s.repo.ListRepliesByComment(ctx, commentID)
	if err != nil {
		return nil, dbError("Failed to fetch replies", err)
	}
	if replies == nil {
		replies = []*model.Reply{}
	}
	for _, r := range replies {
		r.Annotate(viewerID)
	}
	return replies, nil
}

func (s *EngagementService) UpdateReply(ctx context.Context, authorID, replyID, content string) (*model.Reply, error) {
	content, err := requiredContent(content, "Reply")
	if err != nil {
		return nil, err
	}
	reply, err := s.ownReply(ctx, authorID, replyID)
	if err != nil {
		return nil, err
	}

	reply.Content = content
	if err := s.repo.UpdateReply(ctx, reply); err != nil {
		return nil, dbError("Failed to update reply", err)
	}

	updated, err := s.repo.GetReplyDetail(ctx, replyID)
	if err != nil {
		return nil, dbError("Failed to load reply", err)
	}
	if updated == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Reply not found")
	}
	updated.Annotate(authorID)
	return updated, nil
}

func (s *EngagementService) DeleteReply(ctx context.Context, authorID, replyID string) error {
	if _, err := s.ownReply(ctx, authorID, replyID); err != nil {
		return err
	}
	if err := s.repo.DeleteReply(ctx, replyID); err != nil {
		return dbError("Failed to delete reply", err)
	}
	return nil
}
