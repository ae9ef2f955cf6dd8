package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordFormSaved(t *testing.T) {
	m := getTestMetrics()

	m.RecordFormSaved("create")
	m.RecordFormSaved("update")
	m.RecordFormSaved("update")

	if got := getCounterValue(t, m.FormsSavedTotal.WithLabelValues("create")); got != 1 {
		t.Errorf("Expected 1 create, got %f", got)
	}
	if got := getCounterValue(t, m.FormsSavedTotal.WithLabelValues("update")); got != 2 {
		t.Errorf("Expected 2 updates, got %f", got)
	}
}

func TestAddFieldsSoftDeleted(t *testing.T) {
	m := getTestMetrics()

	m.AddFieldsSoftDeleted(3)
	m.AddFieldsSoftDeleted(0)
	m.AddFieldsSoftDeleted(-1)

	if got := getCounterValue(t, m.FieldsSoftDeletedTotal); got != 3 {
		t.Errorf("Expected 3, got %f", got)
	}
}

func TestSubmissionCounters(t *testing.T) {
	m := getTestMetrics()

	m.RecordSubmission(OutcomeSuccess)
	m.RecordSubmission(OutcomeRejected)
	m.IncrementSpamRejected()

	if got := getCounterValue(t, m.SubmissionsTotal.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("Expected 1 success, got %f", got)
	}
	if got := getCounterValue(t, m.SpamRejectedTotal); got != 1 {
		t.Errorf("Expected 1 spam rejection, got %f", got)
	}
}

func TestSetTotals(t *testing.T) {
	m := getTestMetrics()

	tests := []struct {
		name  string
		count int64
	}{
		{"zero", 0},
		{"one", 1},
		{"large number", 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetFormsTotal(tt.count)
			m.SetMessagesTotal(tt.count * 2)
			if value := getGaugeValue(t, m.FormsTotal); value != float64(tt.count) {
				t.Errorf("Expected forms gauge %d, got %f", tt.count, value)
			}
			if value := getGaugeValue(t, m.MessagesTotal); value != float64(tt.count*2) {
				t.Errorf("Expected messages gauge %d, got %f", tt.count*2, value)
			}
		})
	}
}

func TestNilMetricsAreIgnored(t *testing.T) {
	var m *Metrics
	m.RecordFormSaved("create")
	m.AddFieldsSoftDeleted(1)
	m.AddFieldErrors("import", 1)
	m.RecordSubmission(OutcomeSuccess)
	m.IncrementSpamRejected()
	m.RecordExport(OutcomeFailure)
	m.RecordImport(OutcomeFailure)
	m.RecordExternalAPICall("x", "GET", 200, 0, nil)
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to write counter metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := gauge.Write(metric); err != nil {
		t.Fatalf("Failed to write gauge metric: %v", err)
	}
	return metric.Gauge.GetValue()
}
