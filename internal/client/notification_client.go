package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"form-service/internal/metrics"

	"go.uber.org/zap"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationFormSubmitted NotificationType = "FORM_SUBMITTED"
)

// SubmittedValue is one named value of a submission
type SubmittedValue struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// SubmissionEvent asks the notification service to mail a submission to the form recipients
type SubmissionEvent struct {
	Type       NotificationType `json:"type"`
	FormID     uint             `json:"formId"`
	FormName   string           `json:"formName"`
	ToEmail    string           `json:"toEmail"`
	MessageID  uint             `json:"messageId,omitempty"`
	Values     []SubmittedValue `json:"values"`
	OccurredAt string           `json:"occurredAt,omitempty"`
}

// NotificationClient delivers submission notifications
type NotificationClient interface {
	NotifySubmission(ctx context.Context, event SubmissionEvent) error
}

type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new notification API client
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notificationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// NotifySubmission posts the event to the notification service.
// Delivery failures are logged and never fail the submission.
func (c *notificationClient) NotifySubmission(ctx context.Context, event SubmissionEvent) error {
	url := fmt.Sprintf("%s/api/internal/notifications/forms", c.baseURL)

	if event.Type == "" {
		event.Type = NotificationFormSubmitted
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	c.metrics.RecordExternalAPICall(url, http.MethodPost, statusCode, duration, err)

	if err != nil {
		c.logger.Error("Failed to send submission notification",
			zap.Error(err),
			zap.Uint("form_id", event.FormID),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Submission notification sent",
			zap.Uint("form_id", event.FormID),
			zap.Uint("message_id", event.MessageID),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Notification service returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.Uint("form_id", event.FormID),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpNotificationClient is used when no notification service is configured
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) NotifySubmission(ctx context.Context, event SubmissionEvent) error {
	return nil
}
