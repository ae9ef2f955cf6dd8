package metrics

import (
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), nil)
}

func TestMetricsInitialization(t *testing.T) {
	m := getTestMetrics()

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.DBQueryDuration)
	assert.NotNil(t, m.DBQueryErrors)
	assert.NotNil(t, m.ExternalAPIRequestsTotal)
	assert.NotNil(t, m.FormsTotal)
	assert.NotNil(t, m.MessagesTotal)
	assert.NotNil(t, m.FormsSavedTotal)
	assert.NotNil(t, m.FieldsSoftDeletedTotal)
	assert.NotNil(t, m.SubmissionsTotal)
	assert.NotNil(t, m.SpamRejectedTotal)
	assert.NotNil(t, m.ExportsTotal)
	assert.NotNil(t, m.ImportsTotal)
}

func TestMetricNamesAndHelp(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// vectors only appear in Gather once a child exists
	m.RecordHTTPRequest("GET", "/api/forms", 200, 0)
	m.RecordDBQuery("select", "forms", 0, nil)
	m.RecordDBQuery("select", "forms", 0, assert.AnError)
	m.RecordExternalAPICall("s3://bucket/exports", "PUT", 500, 0, nil)
	m.RecordFormSaved("create")
	m.AddFieldErrors("save", 1)
	m.RecordSubmission(OutcomeSuccess)
	m.RecordExport(OutcomeSuccess)
	m.RecordImport(OutcomeSuccess)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	snake := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
		assert.True(t, strings.HasPrefix(mf.GetName(), namespace+"_"), mf.GetName())
		assert.Regexp(t, snake, mf.GetName())
		assert.NotEmpty(t, mf.GetHelp(), mf.GetName())
	}

	for _, want := range []string{
		"form_service_forms_saved_total",
		"form_service_fields_soft_deleted_total",
		"form_service_submissions_total",
		"form_service_spam_rejected_total",
		"form_service_exports_total",
		"form_service_imports_total",
		"form_service_forms_total",
		"form_service_messages_total",
	} {
		assert.True(t, names[want], want)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"exports/123e4567-e89b-12d3-a456-426614174000.json", "exports/{id}.json"},
		{"/forms/42/entries", "/forms/{id}/entries"},
		{"/forms/42", "/forms/{id}"},
		{"notifier", "notifier"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEndpoint(tt.in))
		})
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/api/health"))
	assert.False(t, ShouldSkipEndpoint("/api/forms"))
}
