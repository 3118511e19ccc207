package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保媒体 Bucket 存在且公开可读
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	// 媒体 bucket 需要公开读，供前端直接播放视频和展示封面
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// PublicURL 生成公开访问 URL（需要 Bucket 设置为 public-read）
// base 非空时使用 base 作为前缀（例如 CDN 地址）
func PublicURL(base, endpoint string, useSSL bool, bucket, objectName string) string {
	if base != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, objectName)
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}

// BlobStore 媒体对象存储
type BlobStore struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// NewBlobStore 基于已初始化的全局客户端创建
func NewBlobStore(cfg config.MinIOConfig) *BlobStore {
	return &BlobStore{client: client, cfg: cfg}
}

// Put 上传对象并返回公开 URL
func (s *BlobStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return PublicURL(s.cfg.PublicURL, s.cfg.Endpoint, s.cfg.UseSSL, s.cfg.Bucket, objectName), nil
}

// Remove 删除对象，对象不存在不视为错误
func (s *BlobStore) Remove(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s from minio: %w", objectName, err)
	}
	return nil
}
