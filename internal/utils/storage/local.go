package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// PublicPrefix is the route local uploads are served from.
const PublicPrefix = "/uploads"

type localStorage struct {
	uploadDir string
}

// NewLocalStorage keeps uploads on disk under uploadDir. It is used when no
// S3 bucket is configured.
func NewLocalStorage(uploadDir string) FileStorage {
	return &localStorage{uploadDir: uploadDir}
}

func (l *localStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext, err := checkExtension(file, allowed)
	if err != nil {
		return "", err
	}

	key := objectKey(folder, fileName, ext)
	path := filepath.Join(l.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return key, nil
}

func (l *localStorage) GetPublicLinkKey(key string) string {
	return PublicPrefix + "/" + key
}
