package pkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// sniffLen is how many leading bytes are inspected to detect a content type.
const sniffLen = 3072

// FileStore is object storage addressed by key that serves objects publicly.
type FileStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64) error
	PublicURL(key string) string
}

// SniffContentType detects the MIME type of body and returns a reader that
// still yields the whole content.
func SniffContentType(body io.Reader) (string, io.Reader, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(body, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	header = header[:n]
	return mimetype.Detect(header).String(), io.MultiReader(bytes.NewReader(header), body), nil
}

func validKey(key string) error {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || key == "." || key == ".." {
		return fmt.Errorf("invalid object key %q", key)
	}
	return nil
}

// LocalFileStore keeps objects on disk under root/bucket. URLs point at
// urlPrefix/bucket/key, which the HTTP server exposes as static files.
type LocalFileStore struct {
	root      string
	bucket    string
	urlPrefix string
	logger    zerolog.Logger
}

func NewLocalFileStore(root string, bucket string, urlPrefix string, logger zerolog.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalFileStore{root: root, bucket: bucket, urlPrefix: strings.TrimSuffix(urlPrefix, "/"), logger: logger}, nil
}

// Dir is the directory holding the bucket's objects.
func (slf *LocalFileStore) Dir() string {
	return filepath.Join(slf.root, slf.bucket)
}

func (slf *LocalFileStore) Upload(ctx context.Context, key string, body io.Reader, size int64) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType, body, err := SniffContentType(body)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	target := filepath.Join(slf.Dir(), key)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.New("the resource already exists")
		}
		return fmt.Errorf("open %s: %w", key, err)
	}

	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("write %s: %w", key, err)
	}

	slf.logger.Debug().Str("key", key).Int64("size", written).Str("contentType", contentType).Msg("Stored object on disk")
	return nil
}

func (slf *LocalFileStore) PublicURL(key string) string {
	return slf.urlPrefix + "/" + slf.bucket + "/" + url.PathEscape(key)
}

// S3FileStore stores objects in an S3 compatible bucket.
type S3FileStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	logger        zerolog.Logger
}

type S3Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Region        string
	Bucket        string
	PublicBaseURL string
}

func NewS3FileStore(opts S3Options, logger zerolog.Logger) (*S3FileStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	base := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + opts.Endpoint + "/" + opts.Bucket
	}

	return &S3FileStore{client: client, bucket: opts.Bucket, publicBaseURL: base, logger: logger}, nil
}

func (slf *S3FileStore) Upload(ctx context.Context, key string, body io.Reader, size int64) error {
	if err := validKey(key); err != nil {
		return err
	}
	contentType, body, err := SniffContentType(body)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	info, err := slf.client.PutObject(ctx, slf.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return err
	}

	slf.logger.Debug().Str("key", key).Str("bucket", slf.bucket).Int64("size", info.Size).Str("contentType", contentType).Msg("Stored object in bucket")
	return nil
}

func (slf *S3FileStore) PublicURL(key string) string {
	return slf.publicBaseURL + "/" + url.PathEscape(key)
}
