package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"feedcurator/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3 keeps the ledger as a single newline-delimited object, for runs on
// ephemeral hosts (CI jobs, spot instances) with no persistent disk.
// Appends rewrite the whole object; the run is the single writer, so a
// cached copy of the body stays authoritative for its duration.
type S3 struct {
	client *s3.Client
	bucket string
	key    string

	lines  []string
	set    map[string]struct{}
	loaded bool
}

// NewS3 builds an S3-backed ledger using the default AWS configuration
// chain, with optional region/profile overrides.
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
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

func (s *S3) Load(ctx context.Context) (map[string]struct{}, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	links := make(map[string]struct{}, len(s.set))
	for link := range s.set {
		links[link] = struct{}{}
	}
	return links, nil
}

func (s *S3) Contains(ctx context.Context, link string) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	_, ok := s.set[link]
	return ok, nil
}

func (s *S3) Append(ctx context.Context, link string) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.lines = append(s.lines, link)
	s.set[link] = struct{}{}

	body := strings.Join(s.lines, "\n") + "\n"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("write ledger object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func (s *S3) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			s.lines = nil
			s.set = map[string]struct{}{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read ledger object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("read ledger object s3://%s/%s: %w", s.bucket, s.key, err)
	}

	s.set = parseLinks(data)
	s.lines = s.lines[:0]
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			s.lines = append(s.lines, line)
		}
	}
	s.loaded = true
	return nil
}

// isNotFound treats a missing object as an empty ledger (first run).
func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
