package metrics

// Outcome labels shared by the business counters
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// RecordFormSaved counts a form save; action is "create", "update" or "rejected"
func (m *Metrics) RecordFormSaved(action string) {
	if m == nil {
		return
	}
	m.safeExecute("RecordFormSaved", func() {
		m.FormsSavedTotal.WithLabelValues(action).Inc()
	})
}

// AddFieldsSoftDeleted adds the number of fields deactivated by one save
func (m *Metrics) AddFieldsSoftDeleted(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.safeExecute("AddFieldsSoftDeleted", func() {
		m.FieldsSoftDeletedTotal.Add(float64(count))
	})
}

// AddFieldErrors counts fields rejected by validation; source is "save" or "import"
func (m *Metrics) AddFieldErrors(source string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.safeExecute("AddFieldErrors", func() {
		m.FieldErrorsTotal.WithLabelValues(source).Add(float64(count))
	})
}

// RecordSubmission counts one submission by outcome
func (m *Metrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.safeExecute("RecordSubmission", func() {
		m.SubmissionsTotal.WithLabelValues(outcome).Inc()
	})
}

// IncrementSpamRejected counts a submission dropped by the honeypot
func (m *Metrics) IncrementSpamRejected() {
	if m == nil {
		return
	}
	m.safeExecute("IncrementSpamRejected", func() {
		m.SpamRejectedTotal.Inc()
	})
}

// RecordExport counts one export by outcome
func (m *Metrics) RecordExport(outcome string) {
	if m == nil {
		return
	}
	m.safeExecute("RecordExport", func() {
		m.ExportsTotal.WithLabelValues(outcome).Inc()
	})
}

// RecordImport counts one import by outcome
func (m *Metrics) RecordImport(outcome string) {
	if m == nil {
		return
	}
	m.safeExecute("RecordImport", func() {
		m.ImportsTotal.WithLabelValues(outcome).Inc()
	})
}

// SetFormsTotal sets total forms gauge
func (m *Metrics) SetFormsTotal(count int64) {
	m.safeExecute("SetFormsTotal", func() {
		m.FormsTotal.Set(float64(count))
	})
}

// SetMessagesTotal sets total messages gauge
func (m *Metrics) SetMessagesTotal(count int64) {
	m.safeExecute("SetMessagesTotal", func() {
		m.MessagesTotal.Set(float64(count))
	})
}
