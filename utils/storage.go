package utils

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LocalBackups keeps backup files where BackupDatabase wrote them.
type LocalBackups struct{}

func (LocalBackups) Store(path string) (string, error) {
	return path, nil
}

// S3Backups uploads backup files to an S3-compatible bucket.
type S3Backups struct {
	client *minio.Client
	bucket string
}

func NewS3Backups(endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*S3Backups, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &S3Backups{client: client, bucket: bucket}, nil
}

// Store uploads the backup file and returns its object location.
func (s *S3Backups) Store(path string) (string, error) {
	object := filepath.Base(path)
	_, err := s.client.FPutObject(context.Background(), s.bucket, object, path,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("uploading backup %s: %w", object, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, object), nil
}
