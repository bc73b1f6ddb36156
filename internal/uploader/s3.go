package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

// S3 stores images in an S3-compatible bucket (AWS S3 or Cloudflare R2)
// and returns URLs under the bucket's public base URL.
type S3 struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3(cfg config.S3Config) (*S3, error) {
	if cfg.BucketName == "" || cfg.PublicBaseURL == "" {
		return nil, errors.New("s3 provider requires S3_BUCKET_NAME and S3_PUBLIC_BASE_URL")
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client:        client,
		bucket:        cfg.BucketName,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *S3) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (*Result, error) {
	key := folder + "/" + uuid.New().String() + "_" + filename

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return &Result{
		URL:    s.publicBaseURL + "/" + key,
		FileID: key,
	}, nil
}
