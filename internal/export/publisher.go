package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Publisher copies a written export file somewhere else and returns where.
type Publisher interface {
	Publish(ctx context.Context, path string) (string, error)
}

// PutObjectAPI is the part of *s3.Client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Publisher uploads export files to an S3-compatible bucket.
type S3Publisher struct {
	client PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewS3Publisher(client PutObjectAPI, bucket string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, now: time.Now}
}

// NewS3Client builds a path-style S3 client with static credentials.
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}

func (p *S3Publisher) objectKey(name string) string {
	d := p.now()
	return fmt.Sprintf("exports/%d/%d/%d/%v/%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}

func (p *S3Publisher) Publish(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := p.objectKey(filepath.Base(path))
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", p.bucket, key, err)
	}
	return key, nil
}
