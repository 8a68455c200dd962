package utils

import (
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 50MB in bytes
	MaxFileSize = 50 * 1024 * 1024
	// MaxFiles is the number of attachments accepted per order
	MaxFiles = 5
)

// AllowedExtensions lists the attachment formats accepted with an order
var AllowedExtensions = []string{".stl", ".3mf", ".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateAttachments checks the file count and then every file
func ValidateAttachments(files []*multipart.FileHeader) error {
	if len(files) > MaxFiles {
		return &FileUploadError{
			Code:    "TOO_MANY_FILES",
			Message: fmt.Sprintf("A maximum of %d files can be attached", MaxFiles),
		}
	}
	for _, fh := range files {
		if err := ValidateAttachment(fh); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAttachment validates the uploaded file format and size
func ValidateAttachment(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File %s exceeds maximum allowed size of %d MB", fileHeader.Filename, MaxFileSize/(1024*1024)),
		}
	}

	if !IsAllowedExtension(fileHeader.Filename) {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Invalid file type: %s. Allowed: %s", fileHeader.Filename, strings.Join(AllowedExtensions, ", ")),
		}
	}

	return nil
}

// IsAllowedExtension reports whether filename ends in an accepted extension
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ContentType returns the multipart content type, or one derived from the extension
func ContentType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// SaveUploadedFile copies the uploaded file to uploadDir/name
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, name string) (err error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close source file: %v", closeErr)
		}
	}()

	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// GetUploadURL returns the API path serving a stored attachment
func GetUploadURL(name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", name)
}
