package client

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type mockObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// MockS3Client is an in-memory S3ClientInterface for tests and local runs without a bucket
type MockS3Client struct {
	mu      sync.Mutex
	objects map[string]mockObject
	Now     func() time.Time

	// Optional function overrides for custom test behavior
	UploadFileFunc func(ctx context.Context, key string, file io.Reader, contentType string) error
	GetFileFunc    func(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFileFunc func(ctx context.Context, key string) error
}

// NewMockS3Client creates an empty in-memory bucket
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{objects: map[string]mockObject{}, Now: time.Now}
}

func (m *MockS3Client) ArtifactKey(prefix, name string) string {
	return artifactKey(prefix, name)
}

func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = mockObject{data: data, contentType: contentType, lastModified: m.Now()}
	return nil
}

func (m *MockS3Client) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.GetFileFunc != nil {
		return m.GetFileFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MockS3Client) ListKeysOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key, obj := range m.objects {
		if strings.HasPrefix(key, strings.Trim(prefix, "/")) && obj.lastModified.Before(cutoff) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Keys lists the stored keys in order
func (m *MockS3Client) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Ensure the clients implement S3ClientInterface
var (
	_ S3ClientInterface = (*S3Client)(nil)
	_ S3ClientInterface = (*MockS3Client)(nil)
)
