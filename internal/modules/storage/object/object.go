package object

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/BuildLoopLLC/clearview-core/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store wraps the bucket that holds uploaded site assets (gallery images,
// staff photos). All keys are namespaced under the configured prefix.
type Store struct {
	cfg    config.ObjectStorageConfig
	client *s3.Client
	log    *zap.Logger
}

func New(cfg config.ObjectStorageConfig, log *zap.Logger) (*Store, error) {
	if !cfg.Enable {
		return &Store{cfg: cfg, log: log}, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("object storage: bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyleAccess
	})

	return &Store{cfg: cfg, client: client, log: log}, nil
}

func (s *Store) Enabled() bool { return s.cfg.Enable }

// Private reports whether objects should be served through the proxy
// endpoint instead of linked directly.
func (s *Store) Private() bool { return s.cfg.Private }

// NewKey builds a collision-free object key for an uploaded file,
// keeping the original extension so content type sniffing stays sane.
func (s *Store) NewKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)
	if folder != "" {
		name = folder + "/" + name
	}
	if s.cfg.Prefix != "" {
		name = strings.Trim(s.cfg.Prefix, "/") + "/" + name
	}
	return name
}

// Put uploads an object and returns its public URL (empty when the
// bucket is private and objects go through the proxy).
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if !s.cfg.Enable {
		return "", fmt.Errorf("object storage: disabled")
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("object storage: put %s: %w", key, err)
	}
	s.log.Info("object stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return s.URL(key), nil
}

// Get streams an object back. The caller owns the reader.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !s.cfg.Enable {
		return nil, "", fmt.Errorf("object storage: disabled")
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("object storage: get %s: %w", key, err)
	}
	return out.Body, aws.ToString(out.ContentType), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.cfg.Enable {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("object storage: delete %s: %w", key, err)
	}
	return nil
}

// URL returns the address a browser can fetch the object from.
func (s *Store) URL(key string) string {
	if s.cfg.Private {
		return ""
	}
	if s.cfg.CustomDomain != "" {
		return strings.TrimRight(s.cfg.CustomDomain, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		base := strings.TrimRight(s.cfg.Endpoint, "/")
		if s.cfg.PathStyleAccess {
			return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", base, key)
	}
	region := s.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, region, key)
}
