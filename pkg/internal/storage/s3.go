package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	if len(c.Bucket) == 0 {
		return nil, fmt.Errorf("bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if len(c.AccessKey) > 0 {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretKey,
			"",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Custom endpoints are MinIO-alikes which only serve path style buckets
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if len(c.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := c.PublicURL
	if len(publicURL) == 0 && len(c.Endpoint) > 0 {
		publicURL = strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	} else if len(publicURL) == 0 {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}

	return &S3Storage{
		client:    client,
		bucket:    c.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (v *S3Storage) Put(ctx context.Context, path string, body io.Reader, size int64, contentType string) error {
	_, err := v.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(v.bucket),
		Key:           aws.String(path),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("unable to upload object: %v", err)
	}
	return nil
}

func (v *S3Storage) Delete(ctx context.Context, path string) error {
	_, err := v.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("unable to delete object: %v", err)
	}
	return nil
}

func (v *S3Storage) URL(path string) string {
	return v.publicURL + "/" + strings.TrimLeft(path, "/")
}
