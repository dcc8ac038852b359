package mysql

import (
	"context"
	"database/sql"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"social-feed-backend/internal/util"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ interfaces.EngagementRepository = (*engagementRepository)(nil)

type engagementRepository struct {
	db *sql.DB
}

func NewEngagementRepository(db *sql.DB) *engagementRepository {
	return &engagementRepository{db: db}
}

// ---------- 评论 ----------

func (r *engagementRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	comment.CreatedAt, comment.UpdatedAt = now, now

	query := `INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.String("post_id", comment.PostID))
		return err
	}

	util.Logger.Info("评论创建成功", zap.String("comment_id", comment.ID))
	return nil
}

func (r *engagementRepository) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, commentSelect+` WHERE c.id = ?`, id)
	if err != nil {
		return nil, err
	}
	comments, err := scanComments(rows)
	if err != nil || len(comments) == 0 {
		return nil, err
	}
	return comments[0], nil
}

func (r *engagementRepository) GetCommentDetail(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := r.GetCommentByID(ctx, id)
	if err != nil || comment == nil {
		return comment, err
	}
	if err := attachCommentTree(ctx, r.db, []*model.Comment{comment}); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsByPost limit <= 0 时返回全部评论
func (r *engagementRepository) ListCommentsByPost(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error) {
	query := commentSelect + `
        WHERE c.post_id = ?
        ORDER BY c.created_at DESC, c.id DESC`
	args := []any{postID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	comments, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	if err := attachCommentTree(ctx, r.db, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *engagementRepository) CountCommentsByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}

func (r *engagementRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	comment.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		comment.Content, comment.UpdatedAt, comment.ID)
	if err != nil {
		util.Logger.Error("更新评论失败", zap.Error(err), zap.String("comment_id", comment.ID))
	}
	return err
}

// DeleteComment 回复和点赞由外键级联删除
func (r *engagementRepository) DeleteComment(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.String("comment_id", id))
		return err
	}
	util.Logger.Info("评论删除成功", zap.String("comment_id", id))
	return nil
}

// ---------- 回复 ----------

func (r *engagementRepository) CreateReply(ctx context.Context, reply *model.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	reply.CreatedAt, reply.UpdatedAt = now, now

	query := `INSERT INTO replies (id, comment_id, author_id, content, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		reply.ID, reply.CommentID, reply.AuthorID, reply.Content, reply.CreatedAt, reply.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建回复失败", zap.Error(err), zap.String("comment_id", reply.CommentID))
		return err
	}

	util.Logger.Info("回复创建成功", zap.String("reply_id", reply.ID), zap.String("comment_id", reply.CommentID))
	return nil
}

func (r *engagementRepository) GetReplyByID(ctx context.Context, id string) (*model.Reply, error) {
	rows, err := r.db.QueryContext(ctx, replySelect+` WHERE r.id = ?`, id)
	if err != nil {
		return nil, err
	}
	replies, err := scanReplies(rows)
	if err != nil || len(replies) == 0 {
		return nil, err
	}
	return replies[0], nil
}

func (r *engagementRepository) GetReplyDetail(ctx context.Context, id string) (*model.Reply, error) {
	reply, err := r.GetReplyByID(ctx, id)
	if err != nil || reply == nil {
		return reply, err
	}
	if err := attachReplyLikes(ctx, r.db, []*model.Reply{reply}); err != nil {
		return nil, err
	}
	return reply, nil
}

func (r *engagementRepository) ListRepliesByComment(ctx context.Context, commentID string) ([]*model.Reply, error) {
	rows, err := r.db.QueryContext(ctx, replySelect+`
        WHERE r.comment_id = ?
        ORDER BY r.created_at ASC, r.id ASC`, commentID)
	if err != nil {
		return nil, err
	}
	replies, err := scanReplies(rows)
	if err != nil {
		return nil, err
	}
	if err := attachReplyLikes(ctx, r.db, replies); err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *engagementRepository) UpdateReply(ctx context.Context, reply *model.Reply) error {
	reply.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE replies SET content = ?, updated_at = ? WHERE id = ?`,
		reply.Content, reply.UpdatedAt, reply.ID)
	if err != nil {
		util.Logger.Error("更新回复失败", zap.Error(err), zap.String("reply_id", reply.ID))
	}
	return err
}

func (r *engagementRepository) DeleteReply(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM replies WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除回复失败", zap.Error(err), zap.String("reply_id", id))
	}
	return err
}

// ---------- 点赞 ----------

func (r *engagementRepository) FindLike(ctx context.Context, userID string, target model.LikeTarget) (*model.Like, error) {
	column := likeColumnByKind[target.Kind()]
	var (
		like                       model.Like
		postID, commentID, replyID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, post_id, comment_id, reply_id, created_at
        FROM likes
        WHERE user_id = ? AND `+column+` = ?
        LIMIT 1`, userID, target.ID()).Scan(
		&like.ID, &like.UserID, &postID, &commentID, &replyID, &like.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if like.Target, err = scanLikeTarget(postID, commentID, replyID); err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *engagementRepository) CreateLike(ctx context.Context, like *model.Like) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	like.CreatedAt = time.Now().UTC()
	postID, commentID, replyID := like.Target.Columns()

	query := `INSERT INTO likes (id, user_id, post_id, comment_id, reply_id, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		like.ID, like.UserID, nullableString(postID), nullableString(commentID), nullableString(replyID), like.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return interfaces.ErrDuplicateLike
		}
		util.Logger.Error("创建点赞失败", zap.Error(err), zap.String("user_id", like.UserID))
		return err
	}
	return nil
}

func (r *engagementRepository) DeleteLike(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
