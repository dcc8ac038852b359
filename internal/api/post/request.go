package post

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/util"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// formFilesField 上传图片使用的表单字段
const formFilesField = "files"

// param 依次读取路由参数，返回第一个非空值。
// GET 路由在同一位置共用 :id，其余方法使用具名参数。
func param(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.Param(name); v != "" {
			return v
		}
	}
	return ""
}

// parsePostForm 解析 multipart 表单。非 multipart 的普通表单同样接受
func parsePostForm(c *gin.Context, maxBytes int64) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	err := c.Request.ParseMultipartForm(maxBytes)
	if err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		util.Logger.Warn("解析多部分表单失败", zap.Error(err))
		return errors.Wrap(errors.ErrBadRequest, "Invalid form data", err)
	}
	return nil
}

// formFiles 读取上传的文件内容
func formFiles(c *gin.Context) ([]*model.MediaFile, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, nil
	}

	headers := form.File[formFilesField]
	files := make([]*model.MediaFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFormFile(fh)
		if err != nil {
			util.Logger.Warn("读取上传文件失败", zap.Error(err), zap.String("filename", fh.Filename))
			return nil, errors.Wrap(errors.ErrBadRequest, "Invalid file upload", err)
		}
		files = append(files, &model.MediaFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formBool "true"/"1" 为真，其他值为假
func formBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.PostForm(key)))
	return err == nil && v
}

// keepMediaIDs 支持重复字段、带 [] 的字段以及 JSON 数组字符串
func keepMediaIDs(c *gin.Context) []string {
	values := append(c.PostFormArray("keepMediaIds"), c.PostFormArray("keepMediaIds[]")...)

	var ids []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				ids = append(ids, decoded...)
				continue
			}
		}
		if v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

// queryInt 无法解析时返回 0，交给服务层使用默认值
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
