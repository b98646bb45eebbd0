// Package objstore provides S3-compatible object storage access: the
// lightweight metadata probe used during enrichment and the key-value
// operations backing the repository cache.
package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/chrisns/govreposcrape-sub006/pkg/core"
)

// ErrNotFound is returned when a requested object or cache key does not exist.
var ErrNotFound = errors.New("object not found")

// Object user-metadata keys carrying auxiliary repository metadata. The SDK
// exposes them lowercased.
const (
	metaLastPushed   = "last-pushed"
	metaCanonicalURL = "canonical-url"
	metaProcessedAt  = "processed-at"
)

const defaultCachePrefix = "cache/"

// Config holds configuration for the object store client. Endpoint and
// path-style addressing support S3-compatible stores.
type Config struct {
	Bucket      string `mapstructure:"bucket"`
	Region      string `mapstructure:"region"`
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"` //nolint:gosec // config field, not a secret value
	PathStyle   bool   `mapstructure:"path_style"`
	CachePrefix string `mapstructure:"cache_prefix"`
}

// Store implements the metadata probe and the cache's key-value contract
// over an S3-compatible bucket.
type Store struct {
	client      *s3.Client
	bucket      string
	cachePrefix string
}

// New creates an object store client for the configured bucket.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket must be specified")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.PathStyle
	})

	prefix := cfg.CachePrefix
	if prefix == "" {
		prefix = defaultCachePrefix
	}

	return &Store{client: client, bucket: cfg.Bucket, cachePrefix: prefix}, nil
}

// Head probes an object and returns the auxiliary repository metadata from
// its user metadata. Missing or malformed metadata values are returned as
// zero values; a missing object returns ErrNotFound.
func (s *Store) Head(ctx context.Context, key string) (core.AuxMetadata, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return core.AuxMetadata{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return core.AuxMetadata{}, fmt.Errorf("failed to probe object %s: %w", key, err)
	}

	return core.AuxMetadata{
		LastPushed:   parseTimestamp(out.Metadata[metaLastPushed]),
		CanonicalURL: out.Metadata[metaCanonicalURL],
		ProcessedAt:  parseTimestamp(out.Metadata[metaProcessedAt]),
	}, nil
}

// Get reads a cache value by key. Returns ErrNotFound when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.cacheKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache value for %s: %w", key, err)
	}

	return data, nil
}

// Put writes a cache value under the cache prefix.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.cacheKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}

	return nil
}

func (s *Store) cacheKey(key string) string {
	return s.cachePrefix + key
}

// parseTimestamp parses an RFC3339 user-metadata value, returning the zero
// time for absent or malformed values so callers degrade instead of failing.
func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}

	return t
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()

		return code == "NotFound" || code == "NoSuchKey"
	}

	return false
}
