package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// AllowedScreenshotTypes maps the image types accepted as payment proof to their key extension.
var AllowedScreenshotTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// ErrUnsupportedScreenshot is returned when the bytes of an upload are not an allowed image.
var ErrUnsupportedScreenshot = errors.New("unsupported screenshot type")

// ErrInvalidTTL is returned when a signed URL is requested with a non-positive lifetime.
var ErrInvalidTTL = errors.New("signed url ttl must be positive")

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UsePathStyle    bool
}

// S3 stores payment screenshots in a private bucket and signs short-lived read URLs.
type S3 struct {
	client   *s3.Client
	presign  *s3.PresignClient
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 client. A custom endpoint (R2, MinIO) is used when configured.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
		logger.Info("S3 client using static credentials", zap.String("region", cfg.Region), zap.String("bucket", cfg.Bucket))
	} else {
		logger.Warn("S3 client using default credential chain")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3{
		client:   client,
		presign:  s3.NewPresignClient(client),
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// DetectScreenshotType identifies an upload from its leading bytes, ignoring the client's filename and
// Content-Type. It returns the detected type and a reader that replays the whole body.
// Anything other than an allowed image yields ErrUnsupportedScreenshot.
func DetectScreenshotType(body io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read screenshot: %w", err)
	}
	head = head[:n]
	detected := mimetype.Detect(head).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	if _, ok := AllowedScreenshotTypes[detected]; !ok {
		return detected, nil, fmt.Errorf("%w: %s", ErrUnsupportedScreenshot, detected)
	}
	return detected, io.MultiReader(bytes.NewReader(head), body), nil
}

// ScreenshotKey builds a collision-resistant object key: <unix millis>_<random base36><ext>.
// The extension follows the detected content type.
func ScreenshotKey(contentType string, now time.Time) (string, error) {
	ext, ok := AllowedScreenshotTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScreenshot, contentType)
	}
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("random key: %w", err)
	}
	random := strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), random, ext), nil
}

// IsAbsoluteURL reports whether a stored screenshot value is already a full URL rather than a key.
func IsAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// Bucket returns the screenshot bucket name.
func (s *S3) Bucket() string { return s.cfg.Bucket }

// UploadScreenshot streams body to the bucket under a freshly generated key and returns the key.
// contentType must be a type returned by DetectScreenshotType; it is stored as the object's Content-Type.
func (s *S3) UploadScreenshot(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	key, err := ScreenshotKey(contentType, time.Now())
	if err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.logger.Debug("screenshot uploaded", zap.String("key", key), zap.String("content_type", contentType), zap.Int64("size", size))
	return key, nil
}

// DeleteScreenshot removes a screenshot object.
func (s *S3) DeleteScreenshot(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// SignedScreenshotURL returns a pre-signed GET URL valid for ttl.
func (s *S3) SignedScreenshotURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
