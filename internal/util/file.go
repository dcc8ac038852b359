package util

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMediaType 无法从文件名或存储服务得到格式时使用
const DefaultMediaType = "jpg"

// GenerateObjectKey 生成对象存储的 key：<folder>/<uuid>。
// key 不带扩展名，这样可以从访问 URL 反推出 public id。
func GenerateObjectKey(folder string) string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// MediaTypeFromFilename 返回小写的扩展名，其次是存储服务返回的格式，最后是 jpg
func MediaTypeFromFilename(filename, reportedFormat string) string {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if reportedFormat != "" {
		return strings.ToLower(reportedFormat)
	}
	return DefaultMediaType
}

// FormatFromContentType image/png -> png
func FormatFromContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	_, sub, ok := strings.Cut(strings.TrimSpace(contentType), "/")
	if !ok {
		return ""
	}
	return strings.ToLower(sub)
}

// PublicIDFromURL 取 URL 最后一段，去掉扩展名，再拼上 folder 前缀
func PublicIDFromURL(rawURL, folder string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	name := path.Base(rawURL)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// IsImageContentType 判断声明的类型是否为图片
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
