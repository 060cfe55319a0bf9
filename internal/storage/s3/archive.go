package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"medibill/internal/config"
	"medibill/internal/domain"
	"medibill/internal/port"
)

type archive struct {
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewArchive creates an S3-backed archive for exported invoices.
func NewArchive(cfg *config.S3Config) (port.ExportArchive, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO and localstack need path-style addressing.
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &archive{
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

func (a *archive) Put(ctx context.Context, obj port.ArchiveObject) (*port.ArchiveReceipt, error) {
	result, err := a.uploader.Upload(ctx, putInput(obj))
	if err != nil {
		return nil, fmt.Errorf("archiving %s: %w", obj.Key, err)
	}
	return &port.ArchiveReceipt{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

func (a *archive) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	result, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("signing %s: %w", key, err)
	}
	return result.URL, nil
}

func putInput(obj port.ArchiveObject) *s3.PutObjectInput {
	doc := obj.Document
	if doc == nil {
		doc = &domain.ExportDocument{}
	}
	put := &s3.PutObjectInput{
		Bucket:        aws.String(obj.Bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(doc.Data),
		ContentLength: aws.Int64(int64(len(doc.Data))),
	}
	if doc.ContentType != "" {
		put.ContentType = aws.String(doc.ContentType)
	}
	if doc.Filename != "" {
		put.ContentDisposition = aws.String(doc.ContentDisposition())
	}
	return put
}
