// Package upload pushes poster images to an S3-compatible object
// store and hands back a public URL. Deleting a movie never removes
// its poster object; orphans are accepted.
package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Gateway interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type Options struct {
	Endpoint      string // MinIO-compatible base endpoint, empty for real AWS
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type S3Gateway struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3Gateway(ctx context.Context, opts Options) (*S3Gateway, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Gateway{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

func (g *S3Gateway) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", err
	}
	return g.publicBaseURL + "/" + key, nil
}

// PosterKey builds a collision-free object key, keeping the original
// file extension.
func PosterKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	d := time.Now().UTC()
	return fmt.Sprintf("posters/%d/%02d/%s%s", d.Year(), int(d.Month()), uuid.New(), ext)
}
