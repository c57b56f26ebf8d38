package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

const defaultUploadRoot = "uploads"

// UploadRoot returns the local directory images are written to:
// UPLOAD_DIR, or ./uploads when unset.
func UploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return defaultUploadRoot
}

// EnsureUploadDir creates the upload root if it doesn't exist.
func EnsureUploadDir() error {
	return os.MkdirAll(UploadRoot(), os.ModePerm)
}

// SaveFile writes the uploaded file to destPath, creating any missing
// parent directories on the way.
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// GetUploadPath returns the path of a file inside the upload root.
func GetUploadPath(filename string) string {
	return filepath.Join(UploadRoot(), filename)
}
