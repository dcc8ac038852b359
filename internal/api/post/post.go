package post

import (
	"net/http"
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/middleware"
	"social-feed-backend/internal/service"
	"social-feed-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理与帖子相关的HTTP请求
type PostHandler struct {
	postService    service.PostServiceInterface
	maxUploadBytes int64
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface, maxUploadBytes int64) *PostHandler {
	return &PostHandler{postService: postService, maxUploadBytes: maxUploadBytes}
}

// CreatePost 处理创建帖子的请求（multipart）
func (h *PostHandler) CreatePost(c *gin.Context) {
	if err := parsePostForm(c, h.maxUploadBytes); err != nil {
		errors.HandleError(c, err)
		return
	}
	files, err := formFiles(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), service.CreatePostInput{
		AuthorID:  middleware.CurrentUserID(c),
		Content:   c.PostForm("content"),
		IsPrivate: formBool(c, "isPrivate"),
		Files:     files,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusCreated, "Post created successfully", gin.H{"post": post})
}

// UpdatePost 处理更新帖子的请求（multipart）
func (h *PostHandler) UpdatePost(c *gin.Context) {
	if err := parsePostForm(c, h.maxUploadBytes); err != nil {
		errors.HandleError(c, err)
		return
	}
	files, err := formFiles(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), service.UpdatePostInput{
		AuthorID:     middleware.CurrentUserID(c),
		PostID:       c.Param("postId"),
		Content:      c.PostForm("content"),
		IsPrivate:    formBool(c, "isPrivate"),
		KeepMediaIDs: keepMediaIDs(c),
		Files:        files,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, "Post updated successfully", gin.H{"post": post})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("postId")
	if err := h.postService.DeletePost(c.Request.Context(), middleware.CurrentUserID(c), postID); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("帖子已删除", zap.String("post_id", postID))
	errors.HandleSuccess(c, http.StatusOK, "Post deleted successfully", nil)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("postId"), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Post fetched successfully", gin.H{"post": post})
}

// ListPosts 匿名访问只返回公开帖子
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Posts fetched successfully", gin.H{"posts": posts})
}

func (h *PostHandler) ListMyPosts(c *gin.Context) {
	posts, err := h.postService.ListMyPosts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Posts fetched successfully", gin.H{"posts": posts})
}

// ListPostLikers 点赞该帖子的用户
func (h *PostHandler) ListPostLikers(c *gin.Context) {
	users, err := h.postService.ListPostLikers(c.Request.Context(), param(c, "postId", "id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "", gin.H{
		"total": len(users),
		"users": users,
	})
}
