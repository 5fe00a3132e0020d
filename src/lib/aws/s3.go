package aws

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the slice of the object store this service needs:
// durable per-key puts and deletes plus time-limited read URLs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

var store ObjectStore

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// GetObjectStore returns the shared store, creating the S3-backed one on
// first use.
func GetObjectStore() ObjectStore {
	if store != nil {
		return store
	}
	store = &s3Store{client: GetS3Client()}
	return store
}

// NewObjectStore replaces the shared store, used by tests to inject a fake.
func NewObjectStore(s ObjectStore) ObjectStore {
	store = s
	return store
}

type s3Store struct {
	client *s3.Client
}

func (s *s3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	bucket := os.Getenv("S3_ASSETS_BUCKET")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object [%s] to S3 bucket: %s\n", key, err.Error())
		return err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, bucket)
	return nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	bucket := os.Getenv("S3_ASSETS_BUCKET")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Could not delete object [%s] from S3 bucket: %s\n", key, err.Error())
		return err
	}
	return nil
}

func (s *s3Store) SignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	bucket := os.Getenv("S3_ASSETS_BUCKET")
	pre := s3.NewPresignClient(s.client)
	r, err := pre.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = expires
	})
	if err != nil {
		log.Printf("Could not generate presigned URL for object [%s]: %s\n", key, err.Error())
		return "", err
	}
	return r.URL, nil
}
