package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/brainly/internal/common"
	sc "github.com/dmitrijs2005/brainly/internal/server/config"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExportURLValidity is how long a presigned export download link stays valid.
const ExportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportResult points at an uploaded export.
type ExportResult struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type exportOwner struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type exportItem struct {
	ID        string      `json:"_id"`
	Title     string      `json:"title"`
	Link      string      `json:"link"`
	Type      string      `json:"type"`
	Tags      []string    `json:"tags"`
	User      exportOwner `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type exportDocument struct {
	UserID     string       `json:"userId"`
	ExportedAt time.Time    `json:"exportedAt"`
	Content    []exportItem `json:"content"`
}

// ExportService writes a user's content to S3 as a JSON document and hands
// back a presigned download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewExportService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		now:         time.Now,
	}
}

// ExportStorageKey returns exports/<userID>/<yyyy>/<mm>/<dd>/<uuid>.json.
func ExportStorageKey(userID string, d time.Time) string {
	d = d.UTC()
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.json", userID, d.Year(), int(d.Month()), d.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.config.S3Region)}
	if s.config.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Export uploads userID's content and returns a presigned GET for it.
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	items, err := s.repomanager.Contents(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.Internal("Something went wrong while exporting content", err)
	}

	now := s.now()
	doc := exportDocument{UserID: userID, ExportedAt: now.UTC(), Content: make([]exportItem, 0, len(items))}
	for _, c := range items {
		doc.Content = append(doc.Content, exportItem{
			ID:        c.ID,
			Title:     c.Title,
			Link:      c.Link,
			Type:      c.Type,
			Tags:      c.Tags,
			User:      exportOwner{ID: c.UserID, Username: c.OwnerUsername},
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, common.Internal("Something went wrong while exporting content", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, common.Internal("Something went wrong while exporting content", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(userID, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, common.Internal("Something went wrong while exporting content", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportURLValidity))
	if err != nil {
		return nil, common.Internal("Something went wrong while exporting content", err)
	}

	return &ExportResult{Key: key, URL: req.URL, ExpiresAt: now.Add(ExportURLValidity)}, nil
}
