package database

import (
	"fmt"
	"time"

	"form-service/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modelInfo struct {
	model     interface{}
	tableName string
}

func models() []modelInfo {
	return []modelInfo{
		{&domain.Form{}, domain.Form{}.TableName()},
		{&domain.FormField{}, domain.FormField{}.TableName()},
		{&domain.Message{}, domain.Message{}.TableName()},
		{&domain.MessageValue{}, domain.MessageValue{}.TableName()},
	}
}

// AutoMigrate creates or updates the form, field and message tables
func AutoMigrate(db *gorm.DB) error {
	for _, m := range models() {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}
	}
	return nil
}

// SafeAutoMigrate migrates table by table and logs whether each one existed
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	list := models()

	logger.Info("Starting auto-migration", zap.Int("total_models", len(list)))

	for _, m := range list {
		existed := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", existed),
		)
	}

	return nil
}

// SafeAutoMigrateWithRetry retries SafeAutoMigrate with a linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
