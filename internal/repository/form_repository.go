package repository

import (
	"context"

	"gorm.io/gorm"

	"form-service/internal/domain"
)

// FormRepository defines the interface for form data access
type FormRepository interface {
	Create(ctx context.Context, form *domain.Form) error
	Update(ctx context.Context, form *domain.Form) error
	FindByID(ctx context.Context, id uint) (*domain.Form, error)
	FindByIDWithFields(ctx context.Context, id uint) (*domain.Form, error)
	FindAll(ctx context.Context) ([]*domain.Form, error)
	Count(ctx context.Context) (int64, error)
}

// formRepositoryImpl is the GORM implementation of FormRepository
type formRepositoryImpl struct {
	db *gorm.DB
}

// NewFormRepository creates a new instance of FormRepository
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepositoryImpl{db: db}
}

// Create inserts a new form
func (r *formRepositoryImpl) Create(ctx context.Context, form *domain.Form) error {
	return r.db.WithContext(ctx).Omit("Fields").Create(form).Error
}

// Update writes every form column; fields are never touched here
func (r *formRepositoryImpl) Update(ctx context.Context, form *domain.Form) error {
	return r.db.WithContext(ctx).Omit("Fields").Save(form).Error
}

// FindByID finds a form by ID, returning gorm.ErrRecordNotFound when absent
func (r *formRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Form, error) {
	var form domain.Form
	if err := r.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// FindByIDWithFields loads a form together with all of its fields, active or not, in render order
func (r *formRepositoryImpl) FindByIDWithFields(ctx context.Context, id uint) (*domain.Form, error) {
	var form domain.Form
	if err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("field_order ASC, id ASC")
		}).
		First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// FindAll returns every form, oldest first
func (r *formRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Form, error) {
	var forms []*domain.Form
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// Count returns the number of forms
func (r *formRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Form{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
