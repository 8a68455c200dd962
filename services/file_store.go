package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/utils"
)

// ErrFileNotFound is returned when a stored attachment does not exist
var ErrFileNotFound = errors.New("file not found")

// StoredFile describes an attachment after it was written to storage
type StoredFile struct {
	Name         string // storage name, <unix-millis>-<uuid><ext>
	Path         string // backend location (local path or S3 key)
	OriginalName string
	Size         int64
	ContentType  string
}

// FileStore defines the storage operations for order attachments
type FileStore interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredFile, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	URL(ctx context.Context, name string) (string, error)
}

var fileStoreInstance FileStore

// InitFileStore creates the store selected by STORAGE_BACKEND
func InitFileStore(cfg *config.Config) (FileStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		store, err := NewS3FileStore(cfg)
		if err != nil {
			return nil, err
		}
		fileStoreInstance = store
	default:
		fileStoreInstance = NewLocalFileStore(cfg.UploadDir())
	}
	log.Printf("File storage initialized (%s)", cfg.StorageBackend)
	return fileStoreInstance, nil
}

// GetFileStore returns the initialized file store
func GetFileStore() FileStore {
	return fileStoreInstance
}

// SetFileStore sets the file store instance (primarily for testing)
func SetFileStore(store FileStore) {
	fileStoreInstance = store
}

// newStoredName builds a collision-free storage name keeping the original extension
func newStoredName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// validStoredName rejects anything that is not a bare file name
func validStoredName(name string) bool {
	return name != "" && name != "." && name != ".." && name == filepath.Base(name) && !strings.ContainsAny(name, `/\`)
}

// LocalFileStore keeps attachments on the local filesystem
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore creates a store rooted at dir
func NewLocalFileStore(dir string) *LocalFileStore {
	return &LocalFileStore{dir: dir}
}

// Dir returns the directory files are written to
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a new storage name
func (s *LocalFileStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	name := newStoredName(fileHeader.Filename)
	if err := utils.SaveUploadedFile(fileHeader, s.dir, name); err != nil {
		return nil, err
	}
	return &StoredFile{
		Name:         name,
		Path:         filepath.Join(s.dir, name),
		OriginalName: filepath.Base(fileHeader.Filename),
		Size:         fileHeader.Size,
		ContentType:  utils.ContentType(fileHeader),
	}, nil
}

// Open returns a reader for a stored file
func (s *LocalFileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validStoredName(name) {
		return nil, ErrFileNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalFileStore) Delete(ctx context.Context, name string) error {
	if !validStoredName(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns the admin download path for a stored file
func (s *LocalFileStore) URL(ctx context.Context, name string) (string, error) {
	return utils.GetUploadURL(name), nil
}
