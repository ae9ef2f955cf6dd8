package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-service/internal/client"
	"form-service/internal/domain"
	"form-service/internal/dto"
	"form-service/internal/metrics"
	"form-service/internal/repository"
	"form-service/internal/response"
	"form-service/internal/signer"
)

// SubmissionService accepts public form submissions
type SubmissionService interface {
	Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResult, error)
}

type submissionServiceImpl struct {
	formRepo    repository.FormRepository
	fieldRepo   repository.FieldRepository
	messageRepo repository.MessageRepository
	notifier    client.NotificationClient
	signer      signer.Signer
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewSubmissionService creates a new instance of SubmissionService
func NewSubmissionService(
	formRepo repository.FormRepository,
	fieldRepo repository.FieldRepository,
	messageRepo repository.MessageRepository,
	notifier client.NotificationClient,
	s signer.Signer,
	m *metrics.Metrics,
	logger *zap.Logger,
) SubmissionService {
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &submissionServiceImpl{
		formRepo:    formRepo,
		fieldRepo:   fieldRepo,
		messageRepo: messageRepo,
		notifier:    notifier,
		signer:      s,
		metrics:     m,
		logger:      logger,
	}
}

// Submit validates and records a submission.
// A filled honeypot is accepted without storing anything.
func (s *submissionServiceImpl) Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResult, error) {
	form, err := s.formRepo.FindByID(ctx, req.FormID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Form not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form", err.Error())
	}
	if !form.Active {
		return nil, response.NewNotFoundError("Form not found", "")
	}

	result := &dto.SubmitResult{Redirect: s.verifyRedirect(req.Redirect)}

	if hp := form.Honeypot(); hp != "" && strings.TrimSpace(req.Values[hp]) != "" {
		s.metrics.IncrementSpamRejected()
		s.metrics.RecordSubmission(metrics.OutcomeRejected)
		s.logger.Info("Honeypot submission discarded", zap.Uint("form_id", form.ID))
		result.Spam = true
		return result, nil
	}

	fields, err := s.fieldRepo.FindActiveByForm(ctx, form.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form fields", err.Error())
	}

	values := withUploads(fields, req.Values, req.Files)
	if errs := validateSubmission(fields, values); len(errs) > 0 {
		s.metrics.RecordSubmission(metrics.OutcomeFailure)
		return nil, response.NewFieldValidationError("Submission is not valid", errs)
	}

	message := &domain.Message{FormID: form.ID}
	submitted := make([]client.SubmittedValue, 0, len(fields))
	for _, f := range fields {
		value, ok := values[f.Name]
		if !ok {
			continue
		}
		message.Values = append(message.Values, domain.MessageValue{FieldID: f.ID, Value: value})
		submitted = append(submitted, client.SubmittedValue{Name: f.Name, Label: fieldLabel(f), Value: value})
	}

	if form.SaveEntry {
		if err := s.messageRepo.Create(ctx, message); err != nil {
			s.metrics.RecordSubmission(metrics.OutcomeFailure)
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save entry", err.Error())
		}
		result.MessageID = message.ID
	}

	if form.SendEmail {
		if err := s.notifier.NotifySubmission(ctx, client.SubmissionEvent{
			FormID:    form.ID,
			FormName:  form.Name,
			ToEmail:   form.ToEmail,
			MessageID: result.MessageID,
			Values:    submitted,
		}); err != nil {
			s.logger.Warn("Submission notification failed", zap.Uint("form_id", form.ID), zap.Error(err))
		}
	}

	s.metrics.RecordSubmission(metrics.OutcomeSuccess)
	return result, nil
}

func (s *submissionServiceImpl) verifyRedirect(token string) string {
	if token == "" || s.signer == nil {
		return ""
	}
	target, err := s.signer.Verify(token)
	if err != nil {
		s.logger.Warn("Discarding redirect with an invalid signature")
		return ""
	}
	return target
}

// withUploads sets the value of each file field that received uploads to the comma joined file names.
// The file contents are not kept.
func withUploads(fields []*domain.FormField, values map[string]string, files map[string][]string) map[string]string {
	if len(files) == 0 {
		return values
	}
	merged := make(map[string]string, len(values)+len(files))
	for k, v := range values {
		merged[k] = v
	}
	for _, f := range fields {
		if f.Type != domain.FieldTypeFile {
			continue
		}
		names := make([]string, 0, len(files[f.Name]))
		for _, name := range files[f.Name] {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			merged[f.Name] = strings.Join(names, ",")
		}
	}
	return merged
}

// validateSubmission checks required fields and the format of typed inputs
func validateSubmission(fields []*domain.FormField, values map[string]string) map[string][]string {
	errs := map[string][]string{}
	v := domain.Validator()

	for _, f := range fields {
		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			if f.Required {
				errs[f.Name] = append(errs[f.Name], fmt.Sprintf("%s cannot be blank.", fieldLabel(f)))
			}
			continue
		}

		switch f.Type {
		case domain.FieldTypeEmail:
			if v.Var(value, "email") != nil {
				errs[f.Name] = append(errs[f.Name], fmt.Sprintf("%s is not a valid email address.", fieldLabel(f)))
			}
		case domain.FieldTypeNumber:
			if v.Var(value, "numeric") != nil {
				errs[f.Name] = append(errs[f.Name], fmt.Sprintf("%s must be a number.", fieldLabel(f)))
			}
		case domain.FieldTypeSelect, domain.FieldTypeRadio, domain.FieldTypeCheckbox:
			opts, err := f.TypedOptions()
			choice, ok := opts.(*domain.ChoiceOptions)
			if err != nil || !ok || len(choice.Items) == 0 {
				continue
			}
			for _, picked := range strings.Split(value, ",") {
				if !containsString(choice.Items, strings.TrimSpace(picked)) {
					errs[f.Name] = append(errs[f.Name], fmt.Sprintf("%s has an invalid choice.", fieldLabel(f)))
					break
				}
			}
		}
	}
	return errs
}

func fieldLabel(f *domain.FormField) string {
	if opts, err := f.TypedOptions(); err == nil && opts.Base().Label != "" {
		return opts.Base().Label
	}
	return f.Name
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
