package repository

import (
	"context"

	"gorm.io/gorm"

	"form-service/internal/domain"
)

// FieldRepository defines the interface for form field data access
type FieldRepository interface {
	Create(ctx context.Context, field *domain.FormField) error
	Update(ctx context.Context, field *domain.FormField) error
	FindByFormAndID(ctx context.Context, formID, id uint) (*domain.FormField, error)
	FindIDsByForm(ctx context.Context, formID uint) ([]uint, error)
	FindByForm(ctx context.Context, formID uint) ([]*domain.FormField, error)
	FindActiveByForm(ctx context.Context, formID uint) ([]*domain.FormField, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*domain.FormField, error)
	SoftDeleteBatch(ctx context.Context, formID uint, ids []uint) (int64, error)
}

// fieldRepositoryImpl is the GORM implementation of FieldRepository
type fieldRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldRepository creates a new instance of FieldRepository
func NewFieldRepository(db *gorm.DB) FieldRepository {
	return &fieldRepositoryImpl{db: db}
}

// Create inserts a new field
func (r *fieldRepositoryImpl) Create(ctx context.Context, field *domain.FormField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

// Update writes every column of an existing field
func (r *fieldRepositoryImpl) Update(ctx context.Context, field *domain.FormField) error {
	return r.db.WithContext(ctx).Save(field).Error
}

// FindByFormAndID finds a field by ID within one form
func (r *fieldRepositoryImpl) FindByFormAndID(ctx context.Context, formID, id uint) (*domain.FormField, error) {
	var field domain.FormField
	if err := r.db.WithContext(ctx).
		Where("id = ? AND form_id = ?", id, formID).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// FindIDsByForm returns the IDs of every field of a form, active or not
func (r *fieldRepositoryImpl) FindIDsByForm(ctx context.Context, formID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&domain.FormField{}).
		Where("form_id = ?", formID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindByForm returns every field of a form in render order
func (r *fieldRepositoryImpl) FindByForm(ctx context.Context, formID uint) ([]*domain.FormField, error) {
	var fields []*domain.FormField
	if err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("field_order ASC, id ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindActiveByForm returns the active fields of a form ordered by field_order, ties by insertion
func (r *fieldRepositoryImpl) FindActiveByForm(ctx context.Context, formID uint) ([]*domain.FormField, error) {
	var fields []*domain.FormField
	if err := r.db.WithContext(ctx).
		Where("form_id = ? AND active = ?", formID, true).
		Order("field_order ASC, id ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindByIDs loads fields by ID regardless of their active state
func (r *fieldRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*domain.FormField, error) {
	if len(ids) == 0 {
		return []*domain.FormField{}, nil
	}

	var fields []*domain.FormField
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// SoftDeleteBatch deactivates the given fields of a form in a single UPDATE statement
func (r *fieldRepositoryImpl) SoftDeleteBatch(ctx context.Context, formID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&domain.FormField{}).
		Where("id IN ? AND form_id = ?", ids, formID).
		Updates(map[string]interface{}{
			"active":     false,
			"required":   false,
			"index_view": false,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
