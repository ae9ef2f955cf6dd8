package repository

import (
	"context"

	"gorm.io/gorm"

	"form-service/internal/domain"
)

// MessageRepository defines the interface for submission data access
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	FindByForm(ctx context.Context, formID uint, offset int, limit *int) ([]*domain.Message, error)
	FindByFormAndID(ctx context.Context, formID, id uint) (*domain.Message, error)
	Count(ctx context.Context) (int64, error)
}

// messageRepositoryImpl is the GORM implementation of MessageRepository
type messageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func withValues(db *gorm.DB) *gorm.DB {
	return db.Preload("Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// Create inserts a message and its values
func (r *messageRepositoryImpl) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByForm lists the messages of a form, newest first.
// offset is only applied together with a non-nil limit.
func (r *messageRepositoryImpl) FindByForm(ctx context.Context, formID uint, offset int, limit *int) ([]*domain.Message, error) {
	query := withValues(r.db.WithContext(ctx)).
		Where("form_id = ?", formID).
		Order("created_at DESC, id DESC")

	if limit != nil {
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(*limit)
	}

	var messages []*domain.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// FindByFormAndID finds one message scoped to its owning form
func (r *messageRepositoryImpl) FindByFormAndID(ctx context.Context, formID, id uint) (*domain.Message, error) {
	var message domain.Message
	if err := withValues(r.db.WithContext(ctx)).
		Where("form_id = ? AND id = ?", formID, id).
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Count returns the number of stored messages
func (r *messageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
