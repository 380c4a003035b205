package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// StorageProvider 原始文件归档存储
// 价格表导入后把原始文件留档，排查"这列当时到底是什么"时有据可查
type StorageProvider interface {
	// Upload 上传文件，返回访问 URL
	Upload(ctx context.Context, filename string, data []byte) (url string, err error)

	// GetSignedURL 获取限时下载链接（私有存储时使用）
	GetSignedURL(ctx context.Context, url string, expires time.Duration) (signedURL string, err error)
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点（MinIO 等 S3 兼容存储）
	BasePath  string // 基础路径前缀
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== StorageService 包装层 ====================

// StorageService 存储服务，包装 StorageProvider
type StorageService struct {
	provider StorageProvider
	config   *StorageConfig
}

func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	provider, err := NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &StorageService{
		provider: provider,
		config:   cfg,
	}, nil
}

func (s *StorageService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	return s.provider.Upload(ctx, filename, data)
}

func (s *StorageService) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return s.provider.GetSignedURL(ctx, url, expires)
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	basePath string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		basePath: cfg.BasePath,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key := s.generateKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Storage) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if len(url) <= len(prefix) {
		return "", fmt.Errorf("无法解析文件路径")
	}
	key := url[len(prefix):]

	presignClient := s3.NewPresignClient(s.client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}

// generateKey 文件名用 uuid 重命名，按日期分目录，避免同名覆盖
func (s *S3Storage) generateKey(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".xlsx"
	}
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	if s.basePath != "" {
		return fmt.Sprintf("%s/%s/%s", s.basePath, datePath, newFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, newFilename)
}

// ==================== 本地存储 (开发测试用) ====================

type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	dir := filepath.Join(s.basePath, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, newFilename), data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, time.Now().Format("2006-01-02"), newFilename), nil
}

func (s *LocalStorage) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return url, nil // 本地存储无需签名
}
