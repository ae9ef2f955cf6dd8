package database

import (
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func recordWith(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		started, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(started.(time.Time)), db.Error)
	}
}

// RegisterMetricsCallbacks times every select, insert, update, delete and raw statement
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()

	_ = cb.Query().Before("gorm:query").Register("metrics:query_before", startTimer)
	_ = cb.Query().After("gorm:query").Register("metrics:query_after", recordWith(recorder, "select"))

	_ = cb.Create().Before("gorm:create").Register("metrics:create_before", startTimer)
	_ = cb.Create().After("gorm:create").Register("metrics:create_after", recordWith(recorder, "insert"))

	_ = cb.Update().Before("gorm:update").Register("metrics:update_before", startTimer)
	_ = cb.Update().After("gorm:update").Register("metrics:update_after", recordWith(recorder, "update"))

	_ = cb.Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer)
	_ = cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordWith(recorder, "delete"))

	_ = cb.Raw().Before("gorm:raw").Register("metrics:raw_before", startTimer)
	_ = cb.Raw().After("gorm:raw").Register("metrics:raw_after", recordWith(recorder, "raw"))
}

// StartDBStatsCollector pushes connection pool stats every interval until done is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		interval = 15 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
