package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"social-feed-backend/internal/util"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ interfaces.PostRepository = (*postRepository)(nil)

type postRepository struct {
	db *sql.DB
	q  querier
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db, q: db}
}

func (r *postRepository) WithTx(ctx context.Context, fn func(tx interfaces.PostRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开始事务失败: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postRepository{db: r.db, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

func (r *postRepository) CreatePost(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now

	query := `INSERT INTO posts (id, author_id, content, is_private, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		post.ID, post.AuthorID, nullableString(post.Content), post.IsPrivate, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err), zap.String("author_id", post.AuthorID))
		return err
	}
	return nil
}

func (r *postRepository) UpdatePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now().UTC()
	query := `UPDATE posts SET content = ?, is_private = ?, updated_at = ? WHERE id = ?`
	_, err := r.q.ExecContext(ctx, query, nullableString(post.Content), post.IsPrivate, post.UpdatedAt, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.String("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.String("post_id", id))
		return err
	}
	util.Logger.Info("帖子删除成功", zap.String("post_id", id))
	return nil
}

const postSelect = `
        SELECT p.id, p.author_id, p.content, p.is_private, p.created_at, p.updated_at, ` + authorColumns + `
        FROM posts p
        LEFT JOIN users u ON u.id = p.author_id`

func scanPost(scan func(dest ...any) error) (*model.Post, error) {
	var (
		post    model.Post
		content sql.NullString
		a       authorScan
	)
	dest := append([]any{&post.ID, &post.AuthorID, &content, &post.IsPrivate, &post.CreatedAt, &post.UpdatedAt}, a.dest()...)
	if err := scan(dest...); err != nil {
		return nil, err
	}
	if content.Valid {
		post.Content = &content.String
	}
	post.Author = a.author()
	return &post, nil
}

func (r *postRepository) getPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := scanPost(r.q.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetPostDetail(ctx context.Context, id string) (*model.Post, error) {
	post, err := r.getPost(ctx, id)
	if err != nil || post == nil {
		return post, err
	}
	media, err := loadMedia(ctx, r.q, []string{id})
	if err != nil {
		return nil, err
	}
	post.Media = media[id]
	return post, nil
}

func (r *postRepository) GetPostAggregate(ctx context.Context, id string) (*model.Post, error) {
	post, err := r.getPost(ctx, id)
	if err != nil || post == nil {
		return post, err
	}
	if err := attachPostTree(ctx, r.q, []*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// postWhere 按可见性规则生成查询条件
func postWhere(filter model.PostFilter) (string, []any) {
	switch {
	case filter.AuthorID != "":
		return "p.author_id = ?", []any{filter.AuthorID}
	case filter.ViewerID != "":
		return "(p.is_private = FALSE OR p.author_id = ?)", []any{filter.ViewerID}
	default:
		return "p.is_private = FALSE", nil
	}
}

func (r *postRepository) ListPostAggregates(ctx context.Context, filter model.PostFilter) ([]*model.Post, error) {
	where, args := postWhere(filter)
	rows, err := r.q.QueryContext(ctx, postSelect+`
        WHERE `+where+`
        ORDER BY p.created_at DESC, p.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachPostTree(ctx, r.q, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) PostExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (r *postRepository) CreateMedia(ctx context.Context, media *model.PostMedia) error {
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	media.CreatedAt = time.Now().UTC()

	query := `INSERT INTO post_media (id, post_id, url, type, position, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query, media.ID, media.PostID, media.URL, media.Type, media.Position, media.CreatedAt)
	if err != nil {
		util.Logger.Error("插入帖子媒体失败", zap.Error(err), zap.String("post_id", media.PostID))
		return err
	}
	return nil
}

func (r *postRepository) DeleteMediaByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	in, args := inClause(ids)
	_, err := r.q.ExecContext(ctx, `DELETE FROM post_media WHERE id IN (`+in+`)`, args...)
	return err
}

func (r *postRepository) DeleteMediaByPostID(ctx context.Context, postID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM post_media WHERE post_id = ?`, postID)
	return err
}

func (r *postRepository) ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error) {
	rows, err := r.q.QueryContext(ctx, `
        SELECT `+authorColumns+`
        FROM likes l
        JOIN users u ON u.id = l.user_id
        WHERE l.post_id = ?
        ORDER BY l.created_at DESC, l.id DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.Author
	for rows.Next() {
		var a authorScan
		if err := rows.Scan(a.dest()...); err != nil {
			return nil, err
		}
		users = append(users, a.author())
	}
	return users, rows.Err()
}
