package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		m.addWaitDelta(stats.WaitCount, stats.WaitDuration)
	})
}

// addWaitDelta turns the cumulative sql.DBStats wait figures into counter increments.
// A drop below the last value means the pool was reopened; the new totals count from zero.
func (m *Metrics) addWaitDelta(count int64, duration time.Duration) {
	m.dbWaitMu.Lock()
	defer m.dbWaitMu.Unlock()

	deltaCount, deltaDuration := count-m.dbWaitCount, duration-m.dbWaitDuration
	if deltaCount < 0 || deltaDuration < 0 {
		deltaCount, deltaDuration = count, duration
	}
	m.dbWaitCount, m.dbWaitDuration = count, duration

	if deltaCount > 0 {
		m.DBConnectionWaitTotal.Add(float64(deltaCount))
	}
	if deltaDuration > 0 {
		m.DBConnectionWaitDuration.Add(deltaDuration.Seconds())
	}
}

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = normalizeOperation(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

// normalizeOperation converts operation to lowercase
func normalizeOperation(op string) string {
	return strings.ToLower(op)
}
