package storage

import (
	"bytes"
	"context"
	"fmt"
	"social-feed-backend/internal/util"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Client struct {
	s3     s3iface.S3API
	bucket string
}

func NewS3Client(region, bucket string) (*S3Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3Client{
		s3:     s3.New(sess),
		bucket: bucket,
	}, nil
}

func (c *S3Client) Upload(ctx context.Context, obj *Object) (*UploadResult, error) {
	_, err := c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(obj.Data),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		ContentType:   aws.String(obj.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", obj.Key, err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, obj.Key),
		PublicID: obj.Key,
		Format:   util.FormatFromContentType(obj.ContentType),
	}, nil
}

func (c *S3Client) Delete(ctx context.Context, publicID string) error {
	_, err := c.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", publicID, err)
	}
	return nil
}
