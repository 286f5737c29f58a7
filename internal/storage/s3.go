package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the requested object key does not exist.
var ErrNotFound = errors.New("object not found")

// Object is a streamed blob with the metadata needed to serve it.
type Object struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
	ContentLength      int64
}

// Client wraps the S3 API for the site's object store (datasheet PDFs and
// uploaded resumes). An endpoint override points it at R2 or MinIO.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient builds an S3 client from the default AWS credential chain.
func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.StorageRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().
		Str("bucket", cfg.StorageBucket).
		Str("endpoint", cfg.StorageEndpoint).
		Msg("Object storage configured")

	return &Client{s3: client, bucket: cfg.StorageBucket}, nil
}

// Put uploads a blob under key.
func (c *Client) Put(ctx context.Context, key, contentType, contentDisposition string, body io.Reader) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(c.bucket),
		Key:                aws.String(key),
		Body:               body,
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(contentDisposition),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Get streams a blob. The caller must close Object.Body.
func (c *Client) Get(ctx context.Context, key string) (*Object, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	obj := &Object{
		Body:               out.Body,
		ContentType:        aws.ToString(out.ContentType),
		ContentDisposition: aws.ToString(out.ContentDisposition),
		ContentLength:      aws.ToInt64(out.ContentLength),
	}
	if obj.ContentType == "" {
		obj.ContentType = "application/pdf"
	}
	if obj.ContentDisposition == "" {
		obj.ContentDisposition = "inline"
	}
	return obj, nil
}

// Delete removes a blob. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
