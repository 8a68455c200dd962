package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"

	"github.com/ohm-hive/orders-api/utils"
)

// MockFileStore is an in-memory FileStore for testing
type MockFileStore struct {
	files map[string][]byte
	mu    sync.RWMutex

	// SaveErr, when set, is returned by Save after FailAfter successful saves
	SaveErr   error
	FailAfter int
	saves     int

	// DeleteErr, when set, is returned by Delete and the file is kept
	DeleteErr error
}

// NewMockFileStore creates an empty mock store
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global file store
func (m *MockFileStore) SetAsMockForTesting() {
	SetFileStore(m)
}

// Save reads the upload into memory
func (m *MockFileStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil && m.saves >= m.FailAfter {
		return nil, m.SaveErr
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := newStoredName(fileHeader.Filename)
	m.files[name] = content
	m.saves++

	return &StoredFile{
		Name:         name,
		Path:         "mock/" + name,
		OriginalName: filepath.Base(fileHeader.Filename),
		Size:         fileHeader.Size,
		ContentType:  utils.ContentType(fileHeader),
	}, nil
}

// Open returns the stored content
func (m *MockFileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[name]
	if !ok {
		return nil, ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Delete removes a file; missing files are ignored
func (m *MockFileStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.files, name)
	return nil
}

// URL returns a fake download URL
func (m *MockFileStore) URL(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	return fmt.Sprintf("https://files.test/%s?mock=true", name), nil
}

// Put stores content directly (for testing assertions)
func (m *MockFileStore) Put(name string, content []byte) {
	m.mu.Lock()
	m.files[name] = content
	m.mu.Unlock()
}

// FileExists checks if a file exists in mock storage
func (m *MockFileStore) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[name]
	return exists
}

// Count returns the number of stored files
func (m *MockFileStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Clear removes all files from mock storage
func (m *MockFileStore) Clear() {
	m.mu.Lock()
	m.files = make(map[string][]byte)
	m.mu.Unlock()
}
