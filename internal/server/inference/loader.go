package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options points the loader at a model artifact in an S3-compatible
// object store (MinIO in dev deployments).
type S3Options struct {
	RootUser     string
	RootPassword string
	Region       string
	Bucket       string
	Key          string
	BaseEndpoint string
}

// LoadFile reads and parses a model artifact from the local filesystem.
func LoadFile(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening model artifact: %w", err)
	}
	defer f.Close()
	return load(f)
}

// LoadS3 fetches the model artifact from object storage and parses it.
// Credentials and endpoint follow the deployment config.
func LoadS3(ctx context.Context, opts S3Options) (*Classifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser,
			opts.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
	})

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &opts.Bucket,
		Key:    &opts.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching model artifact: %w", err)
	}
	defer out.Body.Close()

	return load(out.Body)
}

func load(r io.Reader) (*Classifier, error) {
	var model Model
	if err := json.NewDecoder(r).Decode(&model); err != nil {
		return nil, fmt.Errorf("error parsing model artifact: %w", err)
	}
	return NewClassifier(model)
}
