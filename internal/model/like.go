package model

import (
	"encoding/json"
	"errors"
	"time"
)

// LikeTargetKind 点赞对象的类型
type LikeTargetKind string

const (
	LikeTargetPost    LikeTargetKind = "post"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetReply   LikeTargetKind = "reply"
)

// ErrInvalidLikeTarget postId/commentId/replyId 必须且只能提供一个
var ErrInvalidLikeTarget = errors.New("provide exactly one target: postId, commentId, or replyId")

// LikeTarget 点赞对象：帖子、评论、回复三选一。
// 字段不导出，只能通过下面的构造函数创建，零值无效。
type LikeTarget struct {
	kind LikeTargetKind
	id   string
}

func PostTarget(postID string) LikeTarget {
	return LikeTarget{kind: LikeTargetPost, id: postID}
}

func CommentTarget(commentID string) LikeTarget {
	return LikeTarget{kind: LikeTargetComment, id: commentID}
}

func ReplyTarget(replyID string) LikeTarget {
	return LikeTarget{kind: LikeTargetReply, id: replyID}
}

// NewLikeTarget 从三个可选字段构造点赞对象，要求恰好一个非空
func NewLikeTarget(postID, commentID, replyID string) (LikeTarget, error) {
	var targets []LikeTarget
	if postID != "" {
		targets = append(targets, PostTarget(postID))
	}
	if commentID != "" {
		targets = append(targets, CommentTarget(commentID))
	}
	if replyID != "" {
		targets = append(targets, ReplyTarget(replyID))
	}
	if len(targets) != 1 {
		return LikeTarget{}, ErrInvalidLikeTarget
	}
	return targets[0], nil
}

func (t LikeTarget) Kind() LikeTargetKind { return t.kind }
func (t LikeTarget) ID() string           { return t.id }
func (t LikeTarget) IsZero() bool         { return t.kind == "" || t.id == "" }

// Columns 返回 post_id、comment_id、reply_id 三列的值，未使用的为 nil
func (t LikeTarget) Columns() (postID, commentID, replyID *string) {
	id := t.id
	switch t.kind {
	case LikeTargetPost:
		postID = &id
	case LikeTargetComment:
		commentID = &id
	case LikeTargetReply:
		replyID = &id
	}
	return
}

type Like struct {
	ID        string
	UserID    string
	Target    LikeTarget
	CreatedAt time.Time
	User      *Author
}

type likeJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    *string   `json:"postId"`
	CommentID *string   `json:"commentId"`
	ReplyID   *string   `json:"replyId"`
	CreatedAt time.Time `json:"createdAt"`
	User      *Author   `json:"user,omitempty"`
}

// MarshalJSON 输出与关系表一致的三个外键字段
func (l *Like) MarshalJSON() ([]byte, error) {
	postID, commentID, replyID := l.Target.Columns()
	return json.Marshal(likeJSON{
		ID:        l.ID,
		UserID:    l.UserID,
		PostID:    postID,
		CommentID: commentID,
		ReplyID:   replyID,
		CreatedAt: l.CreatedAt,
		User:      l.User,
	})
}
