package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/pkg/models"
)

// objectPutter is the part of *s3.Client the store uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores each result as a JSON object; overwriting the object is the upsert.
type S3 struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3 builds a client from the default AWS credential chain with the
// configured region, profile and endpoint overrides.
func NewS3(ctx context.Context, cfg config.S3Config) (*S3, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Upsert writes the result to <prefix>/<TICKER>/<period_end>.json.
func (s *S3) Upsert(ctx context.Context, r *models.AnalysisResult) error {
	if r == nil {
		return ErrNilResult
	}
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	key := s.objectKey(r)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3) objectKey(r *models.AnalysisResult) string {
	period := periodKey(r)
	if period == "" {
		period = "unknown"
	}
	return path.Join(s.prefix, strings.ToUpper(r.Meta.Ticker), sanitizeKey(period)+".json")
}

// sanitizeKey turns "June 28, 2025" into "June-28-2025".
func sanitizeKey(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/'
	}), "-")
}

func (s *S3) Name() string { return BackendS3 }

func (s *S3) Close(context.Context) error { return nil }
