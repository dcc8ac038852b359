package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"social-feed-backend/internal/model"
)

// 聚合查询拆成若干条 IN 查询，再在内存中按外键拼装

const authorColumns = `u.id, u.first_name, u.last_name, u.email, u.profile_image, u.cover_image`

type authorScan struct {
	id, firstName, lastName, email, profileImage, coverImage sql.NullString
}

func (a *authorScan) dest() []any {
	return []any{&a.id, &a.firstName, &a.lastName, &a.email, &a.profileImage, &a.coverImage}
}

func (a *authorScan) author() *model.Author {
	if !a.id.Valid {
		return nil
	}
	return &model.Author{
		ID:           a.id.String,
		FirstName:    nullString(a.firstName),
		LastName:     nullString(a.lastName),
		Email:        nullString(a.email),
		ProfileImage: nullString(a.profileImage),
		CoverImage:   nullString(a.coverImage),
	}
}

func loadMedia(ctx context.Context, q querier, postIDs []string) (map[string][]*model.PostMedia, error) {
	result := make(map[string][]*model.PostMedia)
	if len(postIDs) == 0 {
		return result, nil
	}

	in, args := inClause(postIDs)
	rows, err := q.QueryContext(ctx, `
        SELECT id, post_id, url, type, position, created_at
        FROM post_media
        WHERE post_id IN (`+in+`)
        ORDER BY position ASC, created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.PostMedia
		if err := rows.Scan(&m.ID, &m.PostID, &m.URL, &m.Type, &m.Position, &m.CreatedAt); err != nil {
			return nil, err
		}
		result[m.PostID] = append(result[m.PostID], &m)
	}
	return result, rows.Err()
}

var likeColumnByKind = map[model.LikeTargetKind]string{
	model.LikeTargetPost:    "post_id",
	model.LikeTargetComment: "comment_id",
	model.LikeTargetReply:   "reply_id",
}

func scanLikeTarget(postID, commentID, replyID sql.NullString) (model.LikeTarget, error) {
	return model.NewLikeTarget(nullString(postID), nullString(commentID), nullString(replyID))
}

// loadLikes 按对象ID分组返回点赞，包含点赞用户的投影
func loadLikes(ctx context.Context, q querier, kind model.LikeTargetKind, targetIDs []string) (map[string][]*model.Like, error) {
	result := make(map[string][]*model.Like)
	if len(targetIDs) == 0 {
		return result, nil
	}
	column, ok := likeColumnByKind[kind]
	if !ok {
		return nil, fmt.Errorf("unknown like target kind %q", kind)
	}

	in, args := inClause(targetIDs)
	rows, err := q.QueryContext(ctx, `
        SELECT l.id, l.user_id, l.post_id, l.comment_id, l.reply_id, l.created_at, `+authorColumns+`
        FROM likes l
        LEFT JOIN users u ON u.id = l.user_id
        WHERE l.`+column+` IN (`+in+`)
        ORDER BY l.created_at DESC, l.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			like                       model.Like
			postID, commentID, replyID sql.NullString
			a                          authorScan
		)
		dest := append([]any{&like.ID, &like.UserID, &postID, &commentID, &replyID, &like.CreatedAt}, a.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		target, err := scanLikeTarget(postID, commentID, replyID)
		if err != nil {
			return nil, fmt.Errorf("like %s: %w", like.ID, err)
		}
		like.Target = target
		like.User = a.author()
		result[target.ID()] = append(result[target.ID()], &like)
	}
	return result, rows.Err()
}

const commentSelect = `
        SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, ` + authorColumns + `
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id`

func scanComments(rows *sql.Rows) ([]*model.Comment, error) {
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var (
			c model.Comment
			a authorScan
		)
		dest := append([]any{&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt}, a.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		c.Author = a.author()
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

const replySelect = `
        SELECT r.id, r.comment_id, r.author_id, r.content, r.created_at, r.updated_at, ` + authorColumns + `
        FROM replies r
        LEFT JOIN users u ON u.id = r.author_id`

func scanReplies(rows *sql.Rows) ([]*model.Reply, error) {
	defer rows.Close()

	var replies []*model.Reply
	for rows.Next() {
		var (
			r model.Reply
			a authorScan
		)
		dest := append([]any{&r.ID, &r.CommentID, &r.AuthorID, &r.Content, &r.CreatedAt, &r.UpdatedAt}, a.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r.Author = a.author()
		replies = append(replies, &r)
	}
	return replies, rows.Err()
}

func loadRepliesForComments(ctx context.Context, q querier, commentIDs []string) (map[string][]*model.Reply, error) {
	result := make(map[string][]*model.Reply)
	if len(commentIDs) == 0 {
		return result, nil
	}

	in, args := inClause(commentIDs)
	rows, err := q.QueryContext(ctx, replySelect+`
        WHERE r.comment_id IN (`+in+`)
        ORDER BY r.created_at ASC, r.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	replies, err := scanReplies(rows)
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		result[r.CommentID] = append(result[r.CommentID], r)
	}
	return result, nil
}

// attachReplyLikes 为回复挂上点赞
func attachReplyLikes(ctx context.Context, q querier, replies []*model.Reply) error {
	ids := make([]string, len(replies))
	for i, r := range replies {
		ids[i] = r.ID
	}
	likes, err := loadLikes(ctx, q, model.LikeTargetReply, ids)
	if err != nil {
		return err
	}
	for _, r := range replies {
		r.Likes = likes[r.ID]
	}
	return nil
}

// attachCommentTree 为评论挂上点赞、回复以及回复的点赞
func attachCommentTree(ctx context.Context, q querier, comments []*model.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	likes, err := loadLikes(ctx, q, model.LikeTargetComment, ids)
	if err != nil {
		return err
	}
	replies, err := loadRepliesForComments(ctx, q, ids)
	if err != nil {
		return err
	}

	var allReplies []*model.Reply
	for _, c := range comments {
		c.Likes = likes[c.ID]
		c.Replies = replies[c.ID]
		allReplies = append(allReplies, c.Replies...)
	}
	if len(allReplies) == 0 {
		return nil
	}
	return attachReplyLikes(ctx, q, allReplies)
}

// attachPostTree 为帖子挂上媒体、点赞、评论树
func attachPostTree(ctx context.Context, q querier, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	media, err := loadMedia(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("加载帖子媒体失败: %w", err)
	}
	likes, err := loadLikes(ctx, q, model.LikeTargetPost, ids)
	if err != nil {
		return fmt.Errorf("加载帖子点赞失败: %w", err)
	}

	in, args := inClause(ids)
	rows, err := q.QueryContext(ctx, commentSelect+`
        WHERE c.post_id IN (`+in+`)
        ORDER BY c.created_at DESC, c.id DESC`, args...)
	if err != nil {
		return fmt.Errorf("加载评论失败: %w", err)
	}
	comments, err := scanComments(rows)
	if err != nil {
		return fmt.Errorf("加载评论失败: %w", err)
	}
	if err := attachCommentTree(ctx, q, comments); err != nil {
		return fmt.Errorf("加载评论回复失败: %w", err)
	}

	byPost := make(map[string][]*model.Comment)
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	for _, p := range posts {
		p.Media = media[p.ID]
		p.Likes = likes[p.ID]
		p.Comments = byPost[p.ID]
	}
	return nil
}
