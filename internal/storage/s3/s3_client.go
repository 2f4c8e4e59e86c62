// Package s3 stores templates and batch bundles in Amazon S3 or any
// S3-compatible endpoint.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/port"
)

// Client implements port.ObjectStorage.
type Client struct {
	api        *s3.Client
	presigner  *s3.PresignClient
	uploader   *manager.Uploader
	downloader *manager.Downloader
}

// NewS3Client builds a Client from cfg. Static keys are optional; without them
// the default AWS credential chain applies. A custom endpoint switches to
// path-style addressing for MinIO and LocalStack.
func NewS3Client(cfg *config.S3Config) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Client{
		api:        api,
		presigner:  s3.NewPresignClient(api),
		uploader:   manager.NewUploader(api),
		downloader: manager.NewDownloader(api),
	}, nil
}

// Put stores obj, setting a Content-Disposition when it carries a file name.
func (c *Client) Put(ctx context.Context, obj port.Object) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(obj.Ref.Bucket),
		Key:         aws.String(obj.Ref.Key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
	}
	if obj.FileName != "" {
		in.ContentDisposition = aws.String(mime.FormatMediaType("attachment", map[string]string{"filename": obj.FileName}))
	}
	if _, err := c.uploader.Upload(ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", obj.Ref, err)
	}
	return nil
}

// Get reads a whole object into memory through the ranged downloader.
func (c *Client) Get(ctx context.Context, ref port.ObjectRef) ([]byte, error) {
	head, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 head %s: %w", ref, notFound(err))
	}

	buf := manager.NewWriteAtBuffer(make([]byte, 0, aws.ToInt64(head.ContentLength)))
	n, err := c.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", ref, notFound(err))
	}
	return buf.Bytes()[:n], nil
}

// PresignGet returns a time-limited download link for ref.
func (c *Client) PresignGet(ctx context.Context, ref port.ObjectRef, ttl time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", ref, err)
	}
	return req.URL, nil
}

// notFound replaces the SDK's missing-key errors with port.ErrObjectNotFound.
func notFound(err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return port.ErrObjectNotFound
	}
	return err
}
