package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/utils"
)

// s3KeyPrefix is the bucket folder holding attachments
const s3KeyPrefix = "uploads/"

// presignExpiry is how long a download URL stays valid
const presignExpiry = time.Hour

// S3FileStore keeps attachments in an S3 bucket
type S3FileStore struct {
	client *s3.Client
	bucket string
}

// NewS3FileStore creates an S3 client from the AWS settings in cfg.
// Without explicit keys the default AWS credential chain is used.
func NewS3FileStore(cfg *config.Config) (*S3FileStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3FileStore{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}, nil
}

func s3Key(name string) string {
	return s3KeyPrefix + name
}

// Save uploads the file to S3 under a new storage name
func (s *S3FileStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	name := newStoredName(fileHeader.Filename)
	contentType := utils.ContentType(fileHeader)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s3Key(name)),
		Body:          file,
		ContentLength: aws.Int64(fileHeader.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredFile{
		Name:         name,
		Path:         s3Key(name),
		OriginalName: filepath.Base(fileHeader.Filename),
		Size:         fileHeader.Size,
		ContentType:  contentType,
	}, nil
}

// Open streams an object from S3
func (s *S3FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validStoredName(name) {
		return nil, ErrFileNotFound
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key(name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	return out.Body, nil
}

// Delete removes an object from S3. S3 does not fail for missing keys.
func (s *S3FileStore) Delete(ctx context.Context, name string) error {
	if !validStoredName(name) {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// URL generates a presigned GET URL valid for one hour
func (s *S3FileStore) URL(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key(name)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}
