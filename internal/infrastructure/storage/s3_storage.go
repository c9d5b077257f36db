// Package storage armazenamento de documentos em serviços compatíveis com S3 (AWS S3, MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

var _ ports.ObjectStorage = (*S3Storage)(nil)

// S3Storage implementa ports.ObjectStorage com o SDK v2 da AWS.
type S3Storage struct {
	client            *s3.Client
	presign           *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	log               *logger.Logger
}

// NewS3Storage cria o cliente a partir da configuração. Credenciais estáticas; endpoint customizado para MinIO.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket não configurado")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage: credenciais não configuradas")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: config aws: %w", err)
	}

	endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	if log == nil {
		log = logger.Nop()
	}
	exp := cfg.PresignExpiration
	if exp <= 0 {
		exp = 15 * time.Minute
	}
	return &S3Storage{
		client:            client,
		presign:           s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: exp,
		log:               log.Named("storage"),
	}, nil
}

// normalizeEndpoint acrescenta o esquema quando o endpoint vem só com host:porta. Vazio usa o endpoint da AWS.
func normalizeEndpoint(endpoint string, useSSL bool) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// EnsureBucket cria o bucket se não existir. Chamado na subida da API.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("storage: verificar bucket: %w", err)
	}

	s.log.Info().Str("bucket", s.bucket).Msg("criando bucket")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("storage: criar bucket: %w", err)
	}
	return nil
}

// GenerateUploadURL URL pré-assinada de PUT.
func (s *S3Storage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage: chave vazia")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}
	in := &s3.PutObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	req, err := s.presign.PresignPutObject(ctx, in, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("storage: presign put: %w", err)
	}
	return req.URL, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL URL pré-assinada de GET.
func (s *S3Storage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage: chave vazia")
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("storage: presign get: %w", err)
	}
	return req.URL, time.Now().Add(expiresIn), nil
}

// Upload envia o conteúdo diretamente (upload pela API).
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if key == "" {
		return errors.New("storage: chave vazia")
	}
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("storage: put object: %w", err)
	}
	s.log.Debug().Str("key", key).Int64("size", size).Msg("documento enviado")
	return nil
}
