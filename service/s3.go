package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/aarsh-studio/portfolio-backend/imaging"
)

const (
	photoPrefix       = "photos/"
	placeholderPrefix = "photos/placeholders/"
)

// S3Service implements BlobStore on top of an S3 bucket with public-read
// objects. Alongside each original it stores a tiny placeholder variant and
// reports the derived metadata back to the caller.
type S3Service struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Service(ctx context.Context, bucket, region, accessKeyID, secretAccessKey string) (*S3Service, error) {
	if bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &S3Service{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// UploadImage stores the original image and its placeholder variant, probing
// dimensions and dominant color on the way.
func (s *S3Service) UploadImage(ctx context.Context, filename string, data []byte, contentType string) (*UploadedImage, error) {
	width, height, err := imaging.Dimensions(data)
	if err != nil {
		return nil, err
	}

	name := uuid.New().String()
	key := photoPrefix + name + objectExt(filename, contentType)
	if err := s.put(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	out := &UploadedImage{
		URL:    s.objectURL(key),
		Key:    key,
		Width:  width,
		Height: height,
	}

	placeholder, err := imaging.Placeholder(data)
	if err != nil {
		// The original is already stored; ship without a placeholder rather
		// than failing the whole upload.
		return out, nil
	}
	placeholderKey := placeholderPrefix + name + ".jpg"
	if err := s.put(ctx, placeholderKey, placeholder, "image/jpeg"); err != nil {
		return out, nil
	}
	out.PlaceholderKey = placeholderKey
	out.PlaceholderURL = s.objectURL(placeholderKey)
	if color, err := imaging.DominantColor(placeholder); err == nil {
		out.DominantColor = color
	}
	return out, nil
}

// DeleteImage removes an object from the bucket.
func (s *S3Service) DeleteImage(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Service) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Service) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// objectExt picks a file extension from the original filename, falling back
// to the content type.
func objectExt(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
