package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the form and message gauges periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(interval),
		done:    make(chan bool),
	}
}

// Start collects once immediately, then on every tick
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var formCount int64
	if err := c.db.WithContext(ctx).Table("forms").Count(&formCount).Error; err != nil {
		c.logger.Error("Failed to count forms", zap.Error(err))
	} else {
		c.metrics.SetFormsTotal(formCount)
	}

	var messageCount int64
	if err := c.db.WithContext(ctx).Table("messages").Count(&messageCount).Error; err != nil {
		c.logger.Error("Failed to count messages", zap.Error(err))
	} else {
		c.metrics.SetMessagesTotal(messageCount)
	}
}
