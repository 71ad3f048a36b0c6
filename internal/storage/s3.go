// Package storage provides blob storage for user-uploaded media, backed by
// S3.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3 creates an S3 blob storage client that writes into the passed bucket.
func NewS3(client *s3.Client, bucket, region string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		region: region,
	}
}

// S3 stores blobs in a single S3 bucket. Objects are publicly readable; the
// bucket policy is expected to allow anonymous GET.
type S3 struct {
	client *s3.Client
	bucket string
	region string
}

// Put writes b to the specified key and returns the object's public URL.
func (s S3) Put(ctx context.Context, key string, b []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object; key: %s, error: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
