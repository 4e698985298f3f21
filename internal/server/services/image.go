package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	sc "github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

var allowedImageTypes = []string{"image/jpeg", "image/png"}

// ImageService stores profile images in an S3-compatible bucket.
type ImageService struct {
	config *sc.Config
	now    func() time.Time
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{config: config, now: time.Now}
}

// GetRandomStorageKey builds users/YYYY/M/D/<uuid><ext> for the given day.
func GetRandomStorageKey(d time.Time, ext string) string {
	return fmt.Sprintf("users/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *ImageService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload validates r as a JPEG or PNG no larger than MaxImageSize, stores
// it and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.config.MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("error reading upload: %w", err)
	}
	if len(data) == 0 {
		return "", common.ErrorNoFile
	}
	if int64(len(data)) > s.config.MaxImageSize {
		return "", common.ErrorFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", common.ErrorUnsupportedMedia, mtype.String())
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(s.now(), mtype.Extension())
	contentType := mtype.String()

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentType:   &contentType,
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("error storing image: %w", err)
	}

	return publicURL(s.config.S3PublicBaseURL, key), nil
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
