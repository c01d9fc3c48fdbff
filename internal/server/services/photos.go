package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkhromov/fittrack/internal/dbx"
	sc "github.com/dkhromov/fittrack/internal/server/config"
	"github.com/dkhromov/fittrack/internal/server/models"
	"github.com/dkhromov/fittrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignValidity bounds how long issued upload/download URLs stay usable.
const presignValidity = 15 * time.Minute

// Seams for testing AWS SDK calls without a live endpoint.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PhotoService manages progress photos: metadata rows in Postgres, bytes
// in an S3-compatible object store reached through presigned URLs so the
// server never proxies image data.
type PhotoService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	config       *sc.Config
	queryTimeout time.Duration
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *PhotoService {
	return &PhotoService{db: db, repomanager: m, config: cfg, queryTimeout: cfg.QueryTimeout}
}

// storageKeyFor spreads objects by date and keeps keys unguessable.
func storageKeyFor(userID string) string {
	d := time.Now()
	return fmt.Sprintf("photos/%s/%d/%d/%d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *PhotoService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUpload records a pending photo for the user and returns its id
// together with a presigned PUT URL the client uploads to directly.
func (s *PhotoService) RequestUpload(ctx context.Context, userID string) (*models.ProgressPhoto, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.config.S3Bucket
	key := storageKeyFor(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, "", err
	}

	repo := s.repomanager.Photos(s.db)
	photo := &models.ProgressPhoto{UserID: userID, StorageKey: key}
	err = dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		photo, err = repo.Create(ctx, photo)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating photo: %w", err)
	}

	return photo, req.URL, nil
}

// MarkUploaded flips the uploaded flag once the client confirms the PUT
// completed.
func (s *PhotoService) MarkUploaded(ctx context.Context, userID, photoID string) error {
	repo := s.repomanager.Photos(s.db)

	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.MarkUploaded(ctx, userID, photoID)
	})
	if err != nil {
		return fmt.Errorf("error updating photo: %w", err)
	}
	return nil
}

// DownloadURL returns a presigned GET URL for one of the user's photos.
func (s *PhotoService) DownloadURL(ctx context.Context, userID, photoID string) (string, error) {
	repo := s.repomanager.Photos(s.db)

	var photo *models.ProgressPhoto
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		photo, err = repo.Get(ctx, userID, photoID)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("error getting photo: %w", err)
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &photo.StorageKey,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
