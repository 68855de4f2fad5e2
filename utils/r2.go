// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"game-catalog/config"
	"game-catalog/workers"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ObjectPutter is the slice of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotUploader stores catalog snapshots as JSON objects in R2.
type SnapshotUploader struct {
	client     ObjectPutter
	bucket     string
	cdnBaseURL string
	prefix     string
	newID      func() string

	// LastURL is the public URL of the most recent upload.
	LastURL string
}

// NewR2Client builds an S3 client pointed at the R2 account endpoint.
func NewR2Client(ctx context.Context, r2 config.R2Config) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r2.AccessKeyID, r2.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r2.Endpoint())
		o.UsePathStyle = true
	}), nil
}

// NewSnapshotUploader writes objects under snapshots/<slug of service>/.
func NewSnapshotUploader(client ObjectPutter, r2 config.R2Config, service string) *SnapshotUploader {
	return &SnapshotUploader{
		client:     client,
		bucket:     r2.Bucket,
		cdnBaseURL: r2.PublicBaseURL(),
		prefix:     "snapshots/" + slug.Make(service),
		newID:      uuid.NewString,
	}
}

func (u *SnapshotUploader) Name() string {
	return "r2"
}

// Key returns the object key for a snapshot taken at t.
func (u *SnapshotUploader) Key(t time.Time) string {
	return fmt.Sprintf("%s/%s-%s.json", u.prefix, t.UTC().Format("20060102T150405Z"), u.newID())
}

// Write uploads snap encoded exactly like the GET /games response.
func (u *SnapshotUploader) Write(ctx context.Context, snap workers.Snapshot) error {
	for _, g := range snap.Games {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("game %d: %w", g.ID, err)
		}
	}

	body, err := json.Marshal(snap.Games)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := u.Key(snap.TakenAt)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	u.LastURL = fmt.Sprintf("%s/%s", u.cdnBaseURL, key)
	return nil
}
