package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store keeps knowledge-bank photos in a MinIO/S3 bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Put uploads r under key and returns the object URL.
func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

// Remove deletes the object behind a URL returned by Put. URLs from other
// hosts or buckets are ignored.
func (s *Store) Remove(ctx context.Context, objectURL string) error {
	key, ok := s.keyOf(objectURL)
	if !ok {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
}

// URL publik (jika bucket public), kalau private harus generate presigned URL
func (s *Store) objectURL(key string) string {
	ep := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", ep.Scheme, ep.Host, s.bucketName, key)
}

func (s *Store) keyOf(objectURL string) (string, bool) {
	u, err := url.Parse(objectURL)
	if err != nil || u.Host != s.client.EndpointURL().Host {
		return "", false
	}
	prefix := "/" + s.bucketName + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	return strings.TrimPrefix(u.Path, prefix), true
}
