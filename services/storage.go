package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/komunitas-muda/backoffice/config"
)

// Upload folders, one per asset kind.
const (
	StorageFolderClubLogos      = "club-logos"
	StorageFolderClubMedia      = "club-media"
	StorageFolderActivityImages = "activity-images"
	StorageFolderProofs         = "achievement-proofs"
	StorageFolderCertificates   = "certificate-backgrounds"
)

// StorageService stores uploaded assets in a DigitalOcean Space (S3
// compatible). Objects are public-read; the returned URL is what gets
// persisted on the owning row.
type StorageService struct {
	client *s3.Client
	bucket string
	region string
	root   string
}

func NewStorageService(cfg config.SpacesConfig) (*StorageService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &StorageService{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
		root:   strings.Trim(cfg.Root, "/"),
	}, nil
}

// Upload writes data under folder with a generated name and returns the
// public URL. The original filename only contributes its extension.
func (s *StorageService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	key := s.objectKey(folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

func (s *StorageService) Delete(ctx context.Context, fileURL string) error {
	key := s.keyFromURL(fileURL)
	if key == "" {
		return fmt.Errorf("url %q does not belong to this bucket", fileURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *StorageService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func (s *StorageService) objectKey(folder, filename string) string {
	name := fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString(), path.Ext(filename))
	if s.root == "" {
		return path.Join(folder, name)
	}
	return path.Join(s.root, folder, name)
}

func (s *StorageService) keyFromURL(fileURL string) string {
	prefix := fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/", s.bucket, s.region)
	if !strings.HasPrefix(fileURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(fileURL, prefix)
}
