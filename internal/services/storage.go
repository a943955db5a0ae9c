package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/fitzone/fitzone-backend/internal/config"
)

// Storage keeps uploaded images (trainer photos, service pictures) and
// returns their public URL.
type Storage interface {
	UploadImage(file *multipart.FileHeader, folder string) (string, error)
	DeleteImage(imageURL string) error
}

// imageExtensions maps accepted sniffed content types to the extension
// files are stored under.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

const maxImageSize = 5 << 20

// NewStorage returns S3 storage when AWS is configured and local disk
// storage otherwise.
func NewStorage(cfg *config.Config) (Storage, error) {
	if cfg.UseS3() {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		return &S3Storage{
			client:   s3.New(sess),
			uploader: s3manager.NewUploader(sess),
			bucket:   cfg.S3Bucket,
			region:   cfg.AWSRegion,
		}, nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: cfg.UploadDir, baseURL: strings.TrimRight(cfg.BaseURL, "/")}, nil
}

// readImage loads an upload into memory and checks its size and type.
func readImage(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > maxImageSize {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, io.LimitReader(src, maxImageSize+1)); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if buffer.Len() > maxImageSize {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	contentType := http.DetectContentType(buffer.Bytes())
	if _, ok := imageExtensions[contentType]; !ok {
		return nil, "", fmt.Errorf("unsupported image type %s", contentType)
	}
	return buffer.Bytes(), contentType, nil
}

// uniqueName names a stored file after its detected type, never the
// client's file name.
func uniqueName(contentType string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), imageExtensions[contentType])
}

type S3Storage struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	region   string
}

func (s *S3Storage) UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	data, contentType, err := readImage(file)
	if err != nil {
		return "", err
	}

	key := folder + "/" + uniqueName(contentType)
	_, err = s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Storage) DeleteImage(imageURL string) error {
	key, err := objectKey(imageURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

type LocalStorage struct {
	dir     string
	baseURL string
}

func (s *LocalStorage) UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	data, contentType, err := readImage(file)
	if err != nil {
		return "", err
	}

	folderPath := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %w", err)
	}

	name := uniqueName(contentType)
	if err := os.WriteFile(filepath.Join(folderPath, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}

func (s *LocalStorage) DeleteImage(imageURL string) error {
	key, err := objectKey(imageURL)
	if err != nil {
		return err
	}
	key = strings.TrimPrefix(key, "uploads/")
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid image path %q", key)
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// objectKey extracts the path of imageURL without its leading slash.
func objectKey(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("invalid image URL %q", imageURL)
	}
	return key, nil
}
