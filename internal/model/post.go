package model

import "time"

// MaxPostMedia 每个帖子最多的媒体数量
const MaxPostMedia = 4

// Author 作者信息投影，只暴露固定的字段子集
type Author struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage"`
	CoverImage   string `json:"coverImage"`
}

type Post struct {
	ID        string       `json:"id"`
	AuthorID  string       `json:"authorId"`
	Content   *string      `json:"content"`
	IsPrivate bool         `json:"isPrivate"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Author    *Author      `json:"author,omitempty"`
	Media     []*PostMedia `json:"media"`
	Likes     []*Like      `json:"likes"`
	Comments  []*Comment   `json:"comments"`

	LikesCount    int  `json:"likesCount"`
	CommentsCount int  `json:"commentsCount"`
	IsLikedByMe   bool `json:"isLikedByMe"`
}

type PostMedia struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty"`
	Likes     []*Like   `json:"likes"`
	Replies   []*Reply  `json:"replies"`

	LikesCount   int  `json:"likesCount"`
	RepliesCount int  `json:"repliesCount"`
	IsLikedByMe  bool `json:"isLikedByMe"`
}

type Reply struct {
	ID        string    `json:"id"`
	CommentID string    `json:"commentId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *Author   `json:"author,omitempty"`
	Likes     []*Like   `json:"likes"`

	LikesCount  int  `json:"likesCount"`
	IsLikedByMe bool `json:"isLikedByMe"`
}

// PostFilter 列表查询条件
type PostFilter struct {
	// ViewerID 为空表示匿名访问，只能看到公开帖子
	ViewerID string
	// AuthorID 不为空时只返回该作者的帖子（包括私密帖子）
	AuthorID string
}

// MediaFile 待上传的文件
type MediaFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CommentPage 评论分页结果
type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
