package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/utils"
)

// AttachmentService validates and stores the files sent with an order
type AttachmentService struct {
	store FileStore
}

// NewAttachmentService creates an attachment service on top of a file store
func NewAttachmentService(store FileStore) *AttachmentService {
	return &AttachmentService{store: store}
}

// StoreAll validates every file and saves them. If any save fails the files
// already written are removed again.
func (s *AttachmentService) StoreAll(ctx context.Context, files []*multipart.FileHeader) ([]*StoredFile, error) {
	if err := utils.ValidateAttachments(files); err != nil {
		return nil, err
	}

	stored := make([]*StoredFile, 0, len(files))
	for _, fh := range files {
		sf, err := s.store.Save(ctx, fh)
		if err != nil {
			s.Discard(ctx, stored)
			return nil, fmt.Errorf("failed to store %s: %w", fh.Filename, err)
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

// Discard removes stored files, logging failures
func (s *AttachmentService) Discard(ctx context.Context, stored []*StoredFile) {
	for _, sf := range stored {
		if err := s.store.Delete(ctx, sf.Name); err != nil {
			log.Printf("warning: failed to remove stored file %s: %v", sf.Name, err)
		}
	}
}

// RemoveAll deletes the stored objects of the given files. Every file is
// attempted; the failures are joined.
func (s *AttachmentService) RemoveAll(ctx context.Context, files []models.UploadedFile) error {
	var errs []error
	for _, f := range files {
		if err := s.store.Delete(ctx, f.Filename); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete attachment %s: %w", f.Filename, err))
		}
	}
	return errors.Join(errs...)
}

// Link fills the download URL of each file
func (s *AttachmentService) Link(ctx context.Context, files []models.UploadedFile) {
	for i := range files {
		url, err := s.store.URL(ctx, files[i].Filename)
		if err != nil {
			log.Printf("warning: failed to build URL for %s: %v", files[i].Filename, err)
			continue
		}
		files[i].URL = url
	}
}

// Records converts stored files into rows for an order
func Records(orderID uint, stored []*StoredFile) []models.UploadedFile {
	rows := make([]models.UploadedFile, 0, len(stored))
	for _, sf := range stored {
		rows = append(rows, models.UploadedFile{
			OrderID:      orderID,
			Filename:     sf.Name,
			OriginalName: sf.OriginalName,
			FilePath:     sf.Path,
			Size:         sf.Size,
			ContentType:  sf.ContentType,
		})
	}
	return rows
}
