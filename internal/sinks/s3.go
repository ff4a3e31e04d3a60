package sinks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/config"
	"github.com/wonny/marketdesk/pkg/logger"
)

const uploadTimeout = 60 * time.Second

// Uploader pushes local files to the configured bucket
// ⭐ SSOT: S3 업로드는 여기서만
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
	logger *logger.Logger
}

// NewUploader builds an S3 uploader from config. A missing bucket means
// uploads are disabled and (nil, nil) is returned: the nil Uploader is a
// no-op everywhere.
func NewUploader(ctx context.Context, cfg config.S3Config, log *logger.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: log,
	}, nil
}

// UploadFile uploads a local file under {prefix}{key}
func (u *Uploader) UploadFile(ctx context.Context, key, path string) error {
	if u == nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s for upload: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	fullKey := u.prefix + key
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", u.bucket, fullKey, err)
	}

	u.logger.WithFields(map[string]interface{}{
		"bucket": u.bucket,
		"key":    fullKey,
		"bytes":  len(data),
	}).Info("Uploaded to S3")

	return nil
}

// S3Sink uploads the run artifacts (results CSV + watchlist CSV) under
// dated keys. Runs after the local CSV sinks.
type S3Sink struct {
	uploader      *Uploader
	resultsPath   string
	watchlistPath string
}

// NewS3Sink creates the upload sink; nil uploader yields a nil sink,
// which the pipeline skips
func NewS3Sink(uploader *Uploader, resultsPath, watchlistPath string) *S3Sink {
	if uploader == nil {
		return nil
	}

	return &S3Sink{
		uploader:      uploader,
		resultsPath:   resultsPath,
		watchlistPath: watchlistPath,
	}
}

// Name identifies the sink in logs
func (s *S3Sink) Name() string { return "s3" }

// Emit uploads both artifacts under their dated keys
func (s *S3Sink) Emit(ctx context.Context, _ []contracts.Row, date time.Time) error {
	day := date.Format("2006-01-02")

	if err := s.uploader.UploadFile(ctx, fmt.Sprintf("screening_results_%s.csv", day), s.resultsPath); err != nil {
		return err
	}

	return s.uploader.UploadFile(ctx, fmt.Sprintf("watchlist_%s.csv", day), s.watchlistPath)
}
