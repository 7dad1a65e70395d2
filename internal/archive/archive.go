// Package archive keeps a copy of every generated resume PDF in S3.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/isdelr/resume-builder-be/internal/config"
)

// Archiver stores a generated PDF for an account.
type Archiver interface {
	Put(ctx context.Context, email string, pdf []byte) error
}

// putObjectAPI is the slice of the S3 client the archive needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 archives PDFs under resumes/<email>/resume_professional.pdf.
type S3 struct {
	client putObjectAPI
	bucket string
}

// NewS3 builds an S3 archiver from the default AWS credential chain, or from
// static keys when configured. A custom endpoint enables S3-compatible stores such as MinIO.
func NewS3(ctx context.Context, cfg config.S3Config) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// Key returns the object key for an account's PDF.
func Key(email string) string {
	return "resumes/" + url.PathEscape(email) + "/resume_professional.pdf"
}

func (a *S3) Put(ctx context.Context, email string, pdf []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(Key(email)),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", Key(email), err)
	}
	return nil
}
