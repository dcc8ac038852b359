package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound 删除不存在的对象时返回
var ErrObjectNotFound = errors.New("storage: object not found")

// Object 待上传的对象
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// UploadResult 上传结果。PublicID 用于之后删除对象
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
}

// MediaStore 媒体存储，上传和按 public id 删除
type MediaStore interface {
	Upload(ctx context.Context, obj *Object) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
