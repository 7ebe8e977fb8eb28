package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// ClientConfig holds configuration for S3-compatible storage
type ClientConfig struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific settings
	WasabiEndpoint string // e.g., "s3.ap-southeast-1.wasabisys.com"
}

// wasabiEndpoints maps regions to Wasabi endpoints
var wasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-northeast-2": "s3.ap-northeast-2.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// NewClientConfigFromEnv creates storage config from environment variables
func NewClientConfigFromEnv() ClientConfig {
	provider := ProviderAWS
	if os.Getenv("S3_PROVIDER") == "wasabi" {
		provider = ProviderWasabi
	}

	cfg := ClientConfig{
		Provider:        provider,
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("S3_REGION"),
		Bucket:          os.Getenv("S3_UPLOAD_BUCKET"),
	}

	if provider == ProviderWasabi {
		if endpoint := os.Getenv("WASABI_ENDPOINT"); endpoint != "" {
			cfg.WasabiEndpoint = endpoint
		} else if endpoint, ok := wasabiEndpoints[cfg.Region]; ok {
			cfg.WasabiEndpoint = endpoint
		} else {
			cfg.WasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"
		}
	}

	return cfg
}

// IsConfigured reports whether enough settings are present to upload.
func (c ClientConfig) IsConfigured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Region != "" && c.Bucket != ""
}

// NewS3Client creates an S3 client with the given config.
// Supports both AWS S3 and Wasabi.
func NewS3Client(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	switch cfg.Provider {
	case ProviderWasabi:
		// Wasabi requires custom endpoint and path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		})
	default:
		client = s3.NewFromConfig(awsCfg)
	}

	return client, nil
}

// PublicURL builds the public object URL for a stored key.
func (c ClientConfig) PublicURL(key string) string {
	if c.Provider == ProviderWasabi {
		return fmt.Sprintf("https://%s/%s/%s", c.WasabiEndpoint, c.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}
