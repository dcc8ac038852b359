package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Success bool      `json:"success"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	ErrInternal:     http.StatusInternalServerError,
	ErrDatabase:     http.StatusInternalServerError,
	ErrTimeout:      http.StatusRequestTimeout,
	ErrUploadFailed: http.StatusInternalServerError,

	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrInvalidToken: http.StatusUnauthorized,

	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
}

// StatusOf 返回错误码对应的 HTTP 状态码
func StatusOf(code ErrorCode) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	// 交给 ErrorMonitor 统计
	_ = c.Error(err)

	if appErr, ok := As(err); ok {
		resp := ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
		c.JSON(StatusOf(appErr.Code), resp)
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    ErrInternal,
		Message: "Internal Server Error",
		Error:   err.Error(),
	})
}

// HandleSuccess 统一处理成功响应，payload 中的字段平铺到响应体
func HandleSuccess(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}
