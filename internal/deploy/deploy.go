// Package deploy uploads a build output directory to S3 for static
// hosting.
package deploy

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/veld-dev/veld/internal/errors"
)

// ObjectPutter is the slice of the S3 client the uploader needs. Tests
// substitute an in-memory implementation.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader pushes files to an S3 bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *log.Logger
}

// Summary reports what an upload did.
type Summary struct {
	Files int
	Bytes int64
}

// New creates an uploader over an existing client.
func New(client ObjectPutter, bucket, prefix string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log.New(os.Stderr, "veld: ", log.LstdFlags),
	}
}

// NewFromConfig creates an uploader using the default AWS credential
// chain.
func NewFromConfig(ctx context.Context, region, bucket, prefix string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	return New(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// UploadDir uploads every file under dir, keyed by its path relative to
// dir (with the configured prefix prepended).
func (u *Uploader) UploadDir(ctx context.Context, dir string) (*Summary, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New("E100").
			WithDetail(fmt.Sprintf("%s does not exist or is not a directory", dir))
	}

	summary := &Summary{}
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if err := u.uploadFile(ctx, p, filepath.ToSlash(rel)); err != nil {
			return err
		}

		summary.Files++
		summary.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}

	u.logger.Printf("uploaded %d files (%d bytes) to s3://%s/%s",
		summary.Files, summary.Bytes, u.bucket, u.prefix)
	return summary, nil
}

func (u *Uploader) uploadFile(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if u.prefix != "" {
		key = u.prefix + "/" + key
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// contentType resolves a file's MIME type from its extension, defaulting
// to application/octet-stream.
func contentType(p string) string {
	if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
