// internal/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Issuer signs upload and download URLs directly against S3, for
// deployments that hold AWS credentials instead of calling the gateway.
// Object keys follow the gateway's convention: "<uuid><ext>".
type S3Issuer struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewS3Issuer(ctx context.Context, region, bucket string, expiry time.Duration) (*S3Issuer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Issuer{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    expiry,
	}, nil
}

func (i *S3Issuer) IssueWrite(ctx context.Context, filename, contentType string) (*WriteCredential, error) {
	id := uuid.NewString()
	key := id + strings.ToLower(filepath.Ext(filename))

	out, err := i.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(i.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(i.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign put object: %w", err)
	}

	return &WriteCredential{
		PresignedURL: out.URL,
		S3Key:        key,
		UUID:         id,
	}, nil
}

func (i *S3Issuer) IssueDownload(ctx context.Context, s3Key string) (string, error) {
	out, err := i.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(i.bucket),
		Key:    aws.String(s3Key),
	}, s3.WithPresignExpires(i.expiry))
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return out.URL, nil
}
