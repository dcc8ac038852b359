package post

import (
	"net/http"
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/middleware"
	"social-feed-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// EngagementHandler 处理评论、回复和点赞请求
type EngagementHandler struct {
	engagementService service.EngagementServiceInterface
}

func NewEngagementHandler(engagementService service.EngagementServiceInterface) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

type contentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type reactRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	ReplyID   string `json:"replyId"`
}

func bindContent(c *gin.Context, what string) (string, bool) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, what+" content is required", err))
		return "", false
	}
	return req.Content, true
}

func likeMessage(what string, liked bool) string {
	if liked {
		return what + " liked"
	}
	return what + " unliked"
}

func (h *EngagementHandler) respondToggle(c *gin.Context, what string, liked bool, err error) {
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, likeMessage(what, liked), gin.H{"liked": liked})
}

// ---------- 点赞 ----------

// TogglePostLike 路径指定帖子，不检查帖子是否存在
func (h *EngagementHandler) TogglePostLike(c *gin.Context) {
	liked, err := h.engagementService.TogglePostLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"))
	h.respondToggle(c, "Post", liked, err)
}

// React 通用点赞入口，请求体中恰好提供 postId、commentId、replyId 之一
func (h *EngagementHandler) React(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Provide exactly one target: postId, commentId, or replyId", err))
		return
	}
	liked, err := h.engagementService.ToggleReaction(c.Request.Context(), middleware.CurrentUserID(c),
		req.PostID, req.CommentID, req.ReplyID)
	h.respondToggle(c, "Target", liked, err)
}

func (h *EngagementHandler) ToggleCommentLike(c *gin.Context) {
	liked, err := h.engagementService.ToggleCommentLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId"))
	h.respondToggle(c, "Comment", liked, err)
}

func (h *EngagementHandler) ToggleReplyLike(c *gin.Context) {
	liked, err := h.engagementService.ToggleReplyLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("replyId"))
	h.respondToggle(c, "Reply", liked, err)
}

// ---------- 评论 ----------

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	content, ok := bindContent(c, "Comment")
	if !ok {
		return
	}
	comment, err := h.engagementService.CreateComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"), content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}

// ListComments 分页参数 page、limit
func (h *EngagementHandler) ListComments(c *gin.Context) {
	page, err := h.engagementService.ListComments(c.Request.Context(), c.Param("postId"), middleware.CurrentUserID(c),
		queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "", gin.H{
		"comments":   page.Comments,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
	})
}

// ListPostComments 返回帖子全部评论，不分页
func (h *EngagementHandler) ListPostComments(c *gin.Context) {
	comments, err := h.engagementService.ListPostComments(c.Request.Context(), param(c, "postId", "id"), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "", gin.H{
		"comments":      comments,
		"totalComments": len(comments),
	})
}

func (h *EngagementHandler) UpdateComment(c *gin.Context) {
	content, ok := bindContent(c, "Comment")
	if !ok {
		return
	}
	comment, err := h.engagementService.UpdateComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId"), content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": comment})
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	if err := h.engagementService.DeleteComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}

// ---------- 回复 ----------

func (h *EngagementHandler) CreateReply(c *gin.Context) {
	content, ok := bindContent(c, "Reply")
	if !ok {
		return
	}
	reply, err := h.engagementService.CreateReply(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId"), content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusCreated, "Reply added successfully", gin.H{"reply": reply})
}

func (h *EngagementHandler) ListReplies(c *gin.Context) {
	replies, err := h.engagementService.ListReplies(c.Request.Context(), param(c, "commentId", "id"), middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "", gin.H{
		"replies":      replies,
		"totalReplies": len(replies),
	})
}

func (h *EngagementHandler) UpdateReply(c *gin.Context) {
	content, ok := bindContent(c, "Reply")
	if !ok {
		return
	}
	reply, err := h.engagementService.UpdateReply(c.Request.Context(), middleware.CurrentUserID(c), c.Param("replyId"), content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Reply updated successfully", gin.H{"reply": reply})
}

func (h *EngagementHandler) DeleteReply(c *gin.Context) {
	if err := h.engagementService.DeleteReply(c.Request.Context(), middleware.CurrentUserID(c), c.Param("replyId")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, http.StatusOK, "Reply deleted successfully", nil)
}
