package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinioStore 基于 MinIO/S3 的对象存储实现
type MinioStore struct {
	client *minio.Client
	bucket string
	base   string // 公网 URL 前缀，如 https://endpoint/bucket
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, content []byte, contentType string, allowOverwrite bool) (string, error) {
	if !allowOverwrite {
		key = randomizeKey(key)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.base + "/" + key, nil
}

func (s *MinioStore) Remove(ctx context.Context, publicURL string) error {
	key, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStore) keyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(u.Path, "/"+s.bucket+"/")
	if key == "" || key == u.Path {
		return "", fmt.Errorf("url %q does not belong to bucket %q", publicURL, s.bucket)
	}
	return key, nil
}

// randomizeKey 在扩展名前插入随机段，等价于“不允许覆盖”的语义
func randomizeKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "-" + uuid.NewString()[:8] + ext
}
