// Package s3sink stores uploaded files in an S3 bucket.
package s3sink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PutObjectAPI is the part of *s3.Client the sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures a [Sink].
type Config struct {
	Client    PutObjectAPI
	Bucket    string
	KeyPrefix string       // Optional prefix for object keys (e.g., "uploads")
	Logger    *slog.Logger // Defaults to slog.Default()
}

// Sink writes every upload to a new object named by a random UUID. It
// implements multiform.FileSink.
type Sink struct {
	client    PutObjectAPI
	bucket    string
	keyPrefix string
	logger    *slog.Logger
	newID     func() string
}

// New creates a Sink.
func New(config Config) *Sink {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Sink{
		client:    config.Client,
		bucket:    config.Bucket,
		keyPrefix: config.KeyPrefix,
		logger:    config.Logger,
		newID:     uuid.NewString,
	}
}

// Store uploads body and returns its location as "s3://bucket/key". The
// location is returned even when the upload fails.
func (s *Sink) Store(ctx context.Context, body []byte) (string, int64, error) {
	key := s.key(s.newID())
	location := "s3://" + s.bucket + "/" + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return location, 0, fmt.Errorf("s3sink: put %s: %w", location, err)
	}

	s.logger.Debug("stored upload in S3",
		slog.String("bucket", s.bucket),
		slog.String("key", key),
		slog.Int("size", len(body)))

	return location, int64(len(body)), nil
}

func (s *Sink) key(id string) string {
	if s.keyPrefix == "" {
		return id
	}
	return path.Join(s.keyPrefix, id)
}
