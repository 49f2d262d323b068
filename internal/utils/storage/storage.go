package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileStorage stores uploaded files under a folder and hands back an
// object key that GetPublicLinkKey turns into a URL.
type FileStorage interface {
	UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	GetPublicLinkKey(key string) string
}

func checkExtension(file *multipart.FileHeader, allowed []string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) == 0 {
		return ext, nil
	}
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, ext)
}

// objectKey builds folder/name.ext with name reduced to safe characters.
func objectKey(folder, fileName, ext string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = unsafeChars.ReplaceAllString(strings.ReplaceAll(base, " ", "_"), "")
	if base == "" {
		base = "file"
	}
	return strings.Trim(folder, "/") + "/" + base + ext
}

func contentType(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
