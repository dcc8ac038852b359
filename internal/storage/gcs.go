package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"social-feed-backend/internal/util"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// gcsAPI GCSClient 用到的对象操作
type gcsAPI interface {
	NewWriter(ctx context.Context, bucket, key, contentType string) io.WriteCloser
	Delete(ctx context.Context, bucket, key string) error
	Close() error
}

type gcsSDK struct {
	client *storage.Client
}

func (g *gcsSDK) NewWriter(ctx context.Context, bucket, key, contentType string) io.WriteCloser {
	writer := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	return writer
}

func (g *gcsSDK) Delete(ctx context.Context, bucket, key string) error {
	return g.client.Bucket(bucket).Object(key).Delete(ctx)
}

func (g *gcsSDK) Close() error {
	return g.client.Close()
}

type GCSClient struct {
	gcs        gcsAPI
	bucketName string
}

func NewGCSClient(ctx context.Context, bucketName, credentialsFile string) (*GCSClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		gcs:        &gcsSDK{client: client},
		bucketName: bucketName,
	}, nil
}

func (c *GCSClient) Upload(ctx context.Context, obj *Object) (*UploadResult, error) {
	writer := c.gcs.NewWriter(ctx, c.bucketName, obj.Key, obj.ContentType)

	if _, err := io.Copy(writer, bytes.NewReader(obj.Data)); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("gcs write %s: %w", obj.Key, err)
	}
	// 数据在 Close 时才真正提交
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("gcs close %s: %w", obj.Key, err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, obj.Key),
		PublicID: obj.Key,
		Format:   util.FormatFromContentType(obj.ContentType),
	}, nil
}

func (c *GCSClient) Delete(ctx context.Context, publicID string) error {
	err := c.gcs.Delete(ctx, c.bucketName, publicID)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (c *GCSClient) Close() error {
	return c.gcs.Close()
}
