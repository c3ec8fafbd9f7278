// Package storage keeps copies of uploaded documents in object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const pdfContentType = "application/pdf"

// objectPutter is the subset of *minio.Client used for archiving.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioArchive stores documents in an S3-compatible bucket.
type MinioArchive struct {
	client objectPutter
	bucket string
}

// NewMinioArchive connects to the configured endpoint and makes sure the bucket exists.
func NewMinioArchive(ctx context.Context, cfg config.ArchiveConfig) (*MinioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey returns the object name a document is archived under.
func ObjectKey(quizID, filename string) string {
	return path.Join("quizzes", quizID, path.Base(filename))
}

func (a *MinioArchive) Store(ctx context.Context, quizID, filename string, content []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, ObjectKey(quizID, filename),
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: pdfContentType})
	if err != nil {
		return fmt.Errorf("failed to archive document for quiz %s: %w", quizID, err)
	}
	return nil
}

// NoopArchive discards documents. It is used when archiving is disabled.
type NoopArchive struct{}

func (NoopArchive) Store(ctx context.Context, quizID, filename string, content []byte) error {
	return nil
}

var (
	_ domain.DocumentArchive = (*MinioArchive)(nil)
	_ domain.DocumentArchive = NoopArchive{}
)
