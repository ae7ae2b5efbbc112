package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	cfg "github.com/ksjang99-lgtm/langchain-rag/internal/config"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
)

// deleteBatchSize caps keys per DeleteObjects call.
const deleteBatchSize = 100

type S3Client struct {
	client *s3.Client
	region string
	bucket string
	log    zerolog.Logger
}

func NewS3Client(ctx context.Context, cfg *cfg.Config, log zerolog.Logger) (*S3Client, error) {
	if cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" {
		return nil, fmt.Errorf("AWS credentials not set")
	}
	if cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.AwsRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Client{
		client: s3.NewFromConfig(awsCfg),
		region: cfg.AwsRegion,
		bucket: cfg.BucketName,
		log:    log,
	}, nil
}

// ensureBucket creates the bucket when it does not exist yet. Owning the
// bucket already is not an error.
func (c *S3Client) ensureBucket(ctx context.Context) error {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(c.bucket)}
	if c.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}
	_, err = c.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// UploadFile uploads an object and returns its public URL. A failed upload
// is retried exactly once after re-ensuring the bucket exists; a second
// failure is surfaced to the caller.
func (c *S3Client) UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	uploader := manager.NewUploader(c.client)

	put := func() error {
		ctxUpload, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		_, err := uploader.Upload(ctxUpload, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return err
	}

	if err := put(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("upload failed, re-ensuring bucket and retrying once")
		if err := c.ensureBucket(ctx); err != nil {
			return "", err
		}
		if err := put(); err != nil {
			return "", fmt.Errorf("s3 upload failed: %w", err)
		}
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key), nil
}

// DeleteFiles removes objects in batches of 100. Best-effort: a failed
// batch contributes its keys to the failed list and deletion continues.
func (c *S3Client) DeleteFiles(ctx context.Context, keys []string) (deleted int, failed []string) {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		objects := make([]types.ObjectIdentifier, 0, len(batch))
		for _, k := range batch {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}

		ctxDel, cancel := context.WithTimeout(ctx, 30*time.Second)
		out, err := c.client.DeleteObjects(ctxDel, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		cancel()

		if err != nil {
			c.log.Warn().Err(err).Int("batch", len(batch)).Msg("delete batch failed")
			failed = append(failed, batch...)
			continue
		}

		batchFailed := make(map[string]bool)
		for _, e := range out.Errors {
			if e.Key != nil {
				batchFailed[*e.Key] = true
				failed = append(failed, *e.Key)
			}
		}
		deleted += len(batch) - len(batchFailed)
	}
	return deleted, failed
}

var _ core.ObjectClient = (*S3Client)(nil)
