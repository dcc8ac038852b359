package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"social-feed-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage 本地磁盘存储，文件通过 /uploads 静态路由对外提供
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, obj *Object) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(obj.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}
	if err := os.WriteFile(fullPath, obj.Data, 0644); err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	util.Logger.Info("文件上传成功", zap.String("fullPath", fullPath))
	return &UploadResult{
		URL:      s.baseURL + "/uploads/" + obj.Key,
		PublicID: obj.Key,
		Format:   util.FormatFromContentType(obj.ContentType),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("删除文件失败: %w", err)
	}

	util.Logger.Info("文件删除成功", zap.String("fullPath", fullPath))
	return nil
}

// resolve 防止 key 逃出存储目录
func (s *LocalStorage) resolve(key string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("非法的对象 key: %q", key)
	}
	return fullPath, nil
}
