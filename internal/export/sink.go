package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Sink persists rendered artifacts. Put returns where the artifact ended
// up. Implementations must be safe for concurrent use.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*S3Sink)(nil)
	_ Sink = (*ManifestMirror)(nil)
)

// FileSink writes artifacts into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink returns a sink rooted at dir. The directory is created on the
// first write.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Dir returns the root directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Put writes data to dir/name.
func (s *FileSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	p := filepath.Join(s.dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p, nil
}

// S3Config describes an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"useSSL"`
}

// Enabled reports whether an endpoint and bucket are configured.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.Bucket) != ""
}

// S3Sink uploads artifacts to an S3-compatible bucket.
type S3Sink struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	mu       sync.Mutex
	bucketOK bool
}

// NewS3Sink validates cfg and creates the client. No request is made until
// the first Put.
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Sink{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
	}, nil
}

// ensureBucket checks for the bucket, creating it when missing. Only
// success is remembered; a failed check is retried by the next Put.
func (s *S3Sink) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketOK {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.bucketOK = true
	return nil
}

// Key returns the object key used for name.
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads data and returns its s3:// location.
func (s *S3Sink) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}
	key := s.Key(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// ManifestMirror forwards every artifact to Remote and keeps a copy of the
// run manifest in Local, so runs written to a bucket still show up in the
// local run status.
type ManifestMirror struct {
	Remote Sink
	Local  *FileSink
}

// Put writes to Remote, then mirrors the manifest into Local.
func (m *ManifestMirror) Put(ctx context.Context, name string, data []byte) (string, error) {
	loc, err := m.Remote.Put(ctx, name, data)
	if err != nil || name != ManifestName {
		return loc, err
	}
	if _, err := m.Local.Put(ctx, name, data); err != nil {
		return loc, fmt.Errorf("mirror manifest: %w", err)
	}
	return loc, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json", ".canvas":
		return "application/json"
	case ".mmd":
		return "text/vnd.mermaid"
	default:
		return "application/octet-stream"
	}
}
