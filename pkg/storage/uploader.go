package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores uploaded files in an S3-compatible bucket and hands
// back a public URL. The rest of the application only ever sees the
// URL string, never the storage mechanism.
type Uploader struct {
	client *s3.Client
	cfg    ClientConfig
}

func NewUploader(client *s3.Client, cfg ClientConfig) *Uploader {
	return &Uploader{client: client, cfg: cfg}
}

// Upload writes data under folder/<uuid>_<sanitized-name> and returns
// the public URL of the stored object.
func (u *Uploader) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	key := path.Join(folder, uuid.NewString()+"_"+SanitizeFilename(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return u.cfg.PublicURL(key), nil
}

// HealthCheck verifies the bucket is reachable.
func (u *Uploader) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(u.cfg.Bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", u.cfg.Bucket, err)
	}
	return nil
}

// SanitizeFilename replaces spaces with underscores and strips
// everything outside ASCII alphanumerics, dashes and underscores.
// Object stores choke on exotic key characters.
func SanitizeFilename(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := strings.TrimSuffix(filename, path.Ext(filename))
	base = strings.ReplaceAll(base, " ", "_")

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("file")
	}
	return b.String() + ext
}
