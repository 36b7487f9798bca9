package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// IsImageFile reports whether the upload has an image extension
func IsImageFile(file *multipart.FileHeader) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(file.Filename))]
}

// UniqueFilename prefixes a sanitized original name with a date and a uuid
func UniqueFilename(original string) string {
	safe := unsafeFilename.ReplaceAllString(filepath.Base(original), "_")
	return fmt.Sprintf("%s-%s-%s", time.Now().Format("20060102"), uuid.NewString(), safe)
}

// SaveUploadedFile stores the upload under destDir and returns the new file name
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	name := UniqueFilename(file.Filename)
	dst, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveUploadedFile deletes a stored upload; a missing file is not an error
func RemoveUploadedFile(destDir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(destDir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetFileURL is the public path of a stored upload
func GetFileURL(name string) string {
	if name == "" {
		return ""
	}
	return "/uploads/" + name
}
