package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"form-service/internal/client"
	"form-service/internal/domain"
	"form-service/internal/permission"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	CreateFunc             func(ctx context.Context, form *domain.Form) error
	UpdateFunc             func(ctx context.Context, form *domain.Form) error
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Form, error)
	FindByIDWithFieldsFunc func(ctx context.Context, id uint) (*domain.Form, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.Form, error)
	CountFunc              func(ctx context.Context) (int64, error)
}

func (m *MockFormRepository) Create(ctx context.Context, form *domain.Form) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, form)
	}
	return nil
}

func (m *MockFormRepository) Update(ctx context.Context, form *domain.Form) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, form)
	}
	return nil
}

func (m *MockFormRepository) FindByID(ctx context.Context, id uint) (*domain.Form, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFormRepository) FindByIDWithFields(ctx context.Context, id uint) (*domain.Form, error) {
	if m.FindByIDWithFieldsFunc != nil {
		return m.FindByIDWithFieldsFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFormRepository) FindAll(ctx context.Context) ([]*domain.Form, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockFormRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockFieldRepository is a mock implementation of FieldRepository
type MockFieldRepository struct {
	CreateFunc           func(ctx context.Context, field *domain.FormField) error
	UpdateFunc           func(ctx context.Context, field *domain.FormField) error
	FindByFormAndIDFunc  func(ctx context.Context, formID, id uint) (*domain.FormField, error)
	FindIDsByFormFunc    func(ctx context.Context, formID uint) ([]uint, error)
	FindByFormFunc       func(ctx context.Context, formID uint) ([]*domain.FormField, error)
	FindActiveByFormFunc func(ctx context.Context, formID uint) ([]*domain.FormField, error)
	FindByIDsFunc        func(ctx context.Context, ids []uint) ([]*domain.FormField, error)
	SoftDeleteBatchFunc  func(ctx context.Context, formID uint, ids []uint) (int64, error)
}

func (m *MockFieldRepository) Create(ctx context.Context, field *domain.FormField) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, field)
	}
	return nil
}

func (m *MockFieldRepository) Update(ctx context.Context, field *domain.FormField) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, field)
	}
	return nil
}

func (m *MockFieldRepository) FindByFormAndID(ctx context.Context, formID, id uint) (*domain.FormField, error) {
	if m.FindByFormAndIDFunc != nil {
		return m.FindByFormAndIDFunc(ctx, formID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFieldRepository) FindIDsByForm(ctx context.Context, formID uint) ([]uint, error) {
	if m.FindIDsByFormFunc != nil {
		return m.FindIDsByFormFunc(ctx, formID)
	}
	return nil, nil
}

func (m *MockFieldRepository) FindByForm(ctx context.Context, formID uint) ([]*domain.FormField, error) {
	if m.FindByFormFunc != nil {
		return m.FindByFormFunc(ctx, formID)
	}
	return nil, nil
}

func (m *MockFieldRepository) FindActiveByForm(ctx context.Context, formID uint) ([]*domain.FormField, error) {
	if m.FindActiveByFormFunc != nil {
		return m.FindActiveByFormFunc(ctx, formID)
	}
	return nil, nil
}

func (m *MockFieldRepository) FindByIDs(ctx context.Context, ids []uint) ([]*domain.FormField, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockFieldRepository) SoftDeleteBatch(ctx context.Context, formID uint, ids []uint) (int64, error) {
	if m.SoftDeleteBatchFunc != nil {
		return m.SoftDeleteBatchFunc(ctx, formID, ids)
	}
	return int64(len(ids)), nil
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	CreateFunc          func(ctx context.Context, message *domain.Message) error
	FindByFormFunc      func(ctx context.Context, formID uint, offset int, limit *int) ([]*domain.Message, error)
	FindByFormAndIDFunc func(ctx context.Context, formID, id uint) (*domain.Message, error)
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	return nil
}

func (m *MockMessageRepository) FindByForm(ctx context.Context, formID uint, offset int, limit *int) ([]*domain.Message, error) {
	if m.FindByFormFunc != nil {
		return m.FindByFormFunc(ctx, formID, offset, limit)
	}
	return nil, nil
}

func (m *MockMessageRepository) FindByFormAndID(ctx context.Context, formID, id uint) (*domain.Message, error) {
	if m.FindByFormAndIDFunc != nil {
		return m.FindByFormAndIDFunc(ctx, formID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMessageRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockNotificationClient records the events it was asked to deliver
type MockNotificationClient struct {
	mu     sync.Mutex
	Events []client.SubmissionEvent
}

func (m *MockNotificationClient) NotifySubmission(ctx context.Context, event client.SubmissionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

// MockFormCache is an in-memory FormCache that counts invalidations
type MockFormCache struct {
	Data        map[uint][]byte
	Invalidated []uint
}

func (m *MockFormCache) Get(ctx context.Context, formID uint) ([]byte, bool) {
	data, ok := m.Data[formID]
	return data, ok
}

func (m *MockFormCache) Set(ctx context.Context, formID uint, data []byte) {
	if m.Data == nil {
		m.Data = map[uint][]byte{}
	}
	m.Data[formID] = data
}

func (m *MockFormCache) Invalidate(ctx context.Context, formID uint) {
	delete(m.Data, formID)
	m.Invalidated = append(m.Invalidated, formID)
}

// adminCtx carries the grant that passes every permission gate
func adminCtx() context.Context {
	return permission.WithGrants(context.Background(), []string{permission.GrantAdmin})
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Form{}, &domain.FormField{}, &domain.Message{}, &domain.MessageValue{}))
	return db
}

func boolPtr(b bool) *bool { return &b }
