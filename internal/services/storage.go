package services

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/travelnest/backend/internal/config"
)

// Storage saves uploaded files (avatars, KYC documents, listing photos) to
// S3 when AWS credentials are configured, otherwise to the local upload
// directory served under /uploads.
type Storage struct {
	useS3     bool
	uploader  *s3manager.Uploader
	s3Client  *s3.S3
	bucket    string
	uploadDir string
	baseURL   string
	maxBytes  int64
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	st := &Storage{
		uploadDir: cfg.UploadDir,
		baseURL:   cfg.BaseURL,
		maxBytes:  cfg.MaxUploadMB * 1024 * 1024,
	}

	if cfg.AWSRegion != "" && cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}

		st.useS3 = true
		st.s3Client = s3.New(sess)
		st.uploader = s3manager.NewUploader(sess)
		st.bucket = cfg.AWSBucket
		return st, nil
	}

	for _, folder := range []string{"profiles", "kyc", "properties"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, folder), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %v", err)
		}
	}

	log.Println("AWS S3 not configured, using local file storage")
	return st, nil
}

// SaveUpload stores the file under the given folder and returns the public
// URL path clients use to fetch it.
func (st *Storage) SaveUpload(file *multipart.FileHeader, folder string) (string, error) {
	if file.Size > st.maxBytes {
		return "", fmt.Errorf("file exceeds upload limit of %d bytes", st.maxBytes)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))

	if st.useS3 {
		return st.saveToS3(file, folder, filename)
	}
	return st.saveLocally(file, folder, filename)
}

func (st *Storage) saveToS3(file *multipart.FileHeader, folder, filename string) (string, error) {
	if st.bucket == "" {
		return "", fmt.Errorf("S3 bucket name not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	key := folder + "/" + filename
	result, err := st.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
		Body:   src,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return result.Location, nil
}

func (st *Storage) saveLocally(file *multipart.FileHeader, folder, filename string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	dstPath := filepath.Join(st.uploadDir, folder, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return "/uploads/" + folder + "/" + filename, nil
}

// Delete removes a previously stored file by its public URL path. Missing
// files are not an error.
func (st *Storage) Delete(urlPath string) error {
	if st.useS3 {
		key := strings.TrimPrefix(urlPath, "/")
		if idx := strings.Index(urlPath, st.bucket+"/"); idx >= 0 {
			key = urlPath[idx+len(st.bucket)+1:]
		}
		_, err := st.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(st.bucket),
			Key:    aws.String(key),
		})
		return err
	}

	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == urlPath {
		return nil
	}
	err := os.Remove(filepath.Join(st.uploadDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
