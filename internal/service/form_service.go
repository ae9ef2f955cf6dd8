package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"form-service/internal/cache"
	"form-service/internal/domain"
	"form-service/internal/dto"
	"form-service/internal/metrics"
	"form-service/internal/permission"
	"form-service/internal/repository"
	"form-service/internal/response"
)

// FormService defines the interface for form editing
type FormService interface {
	ListForms(ctx context.Context) ([]*dto.FormSummary, error)
	NewForm(ctx context.Context) (*dto.EditorResponse, error)
	GetForm(ctx context.Context, formID uint) (*dto.EditorResponse, error)
	GetSettings(ctx context.Context, formID uint) ([]byte, error)
	SaveForm(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error)
}

// formServiceImpl is the implementation of FormService
type formServiceImpl struct {
	formRepo  repository.FormRepository
	fieldRepo repository.FieldRepository
	checker   permission.Checker
	cache     cache.FormCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFormService creates a new instance of FormService
func NewFormService(
	formRepo repository.FormRepository,
	fieldRepo repository.FieldRepository,
	checker permission.Checker,
	formCache cache.FormCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) FormService {
	if formCache == nil {
		formCache = cache.NoopFormCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formServiceImpl{
		formRepo:  formRepo,
		fieldRepo: fieldRepo,
		checker:   checker,
		cache:     formCache,
		metrics:   m,
		logger:    logger,
	}
}

// ListForms returns the forms the caller may edit, oldest first
func (s *formServiceImpl) ListForms(ctx context.Context) ([]*dto.FormSummary, error) {
	forms, err := s.formRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch forms", err.Error())
	}

	summaries := make([]*dto.FormSummary, 0, len(forms))
	for _, f := range forms {
		if !s.checker.CanEditForm(ctx, f.ID) {
			continue
		}
		summaries = append(summaries, &dto.FormSummary{
			ID:        f.ID,
			Name:      f.Name,
			Active:    f.Active,
			SaveEntry: f.SaveEntry,
			CreatedAt: f.CreatedAt,
		})
	}
	return summaries, nil
}

// NewForm returns a blank form for the editor
func (s *formServiceImpl) NewForm(ctx context.Context) (*dto.EditorResponse, error) {
	if !s.checker.CanCreateForm(ctx) {
		return nil, response.NewForbiddenError("You are not allowed to create forms")
	}
	return &dto.EditorResponse{
		Form:       dto.NewFormResponse(&domain.Form{}),
		FieldTypes: fieldTypeNames(),
	}, nil
}

// GetForm returns a stored form with all of its fields for the editor
func (s *formServiceImpl) GetForm(ctx context.Context, formID uint) (*dto.EditorResponse, error) {
	form, err := s.loadWithFields(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !s.checker.CanChangeSettings(ctx, formID) {
		return nil, response.NewForbiddenError("You are not allowed to change the settings of this form")
	}
	return &dto.EditorResponse{
		Form:       dto.NewFormResponse(form),
		FieldTypes: fieldTypeNames(),
	}, nil
}

// GetSettings returns the form with all of its fields as a JSON document
func (s *formServiceImpl) GetSettings(ctx context.Context, formID uint) ([]byte, error) {
	if formID == 0 {
		return nil, response.NewNotFoundError("Form not found", "")
	}
	if !s.checker.CanChangeSettings(ctx, formID) {
		return nil, response.NewForbiddenError("You are not allowed to change the settings of this form")
	}

	if data, ok := s.cache.Get(ctx, formID); ok {
		return data, nil
	}

	form, err := s.loadWithFields(ctx, formID)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(dto.NewFormResponse(form))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode form settings", err.Error())
	}
	s.cache.Set(ctx, formID, data)
	return data, nil
}

// SaveForm creates or updates a form and reconciles its fields.
// Form validation failures abort the save; field failures leave that field unchanged and are reported.
func (s *formServiceImpl) SaveForm(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error) {
	form := &domain.Form{}
	created := req.ID == 0

	if created {
		if !s.checker.CanCreateForm(ctx) {
			return nil, response.NewForbiddenError("You are not allowed to create forms")
		}
	} else {
		if !s.checker.CanEditForm(ctx, req.ID) {
			return nil, response.NewForbiddenError("You are not allowed to edit this form")
		}
		existing, err := s.formRepo.FindByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError(fmt.Sprintf("No form exists with the ID %d", req.ID), "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form", err.Error())
		}
		form = existing
	}

	form.Name = strings.TrimSpace(req.Name)
	form.ToEmail = strings.TrimSpace(req.ToEmail)
	form.Active = req.Active
	form.SendEmail = req.SendEmail
	form.Recaptcha = req.Recaptcha
	form.SaveEntry = req.SaveEntry
	form.Options = datatypes.NewJSONType(req.Options)
	if created {
		form.SiteID = siteID
	}

	if errs := form.Validate(); len(errs) > 0 {
		s.metrics.RecordFormSaved(metrics.OutcomeRejected)
		return nil, response.NewFieldValidationError("Form could not be saved", errs)
	}

	var err error
	if created {
		err = s.formRepo.Create(ctx, form)
	} else {
		err = s.formRepo.Update(ctx, form)
	}
	if err != nil {
		s.logger.Error("Failed to persist form", zap.Uint("form_id", form.ID), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save form", err.Error())
	}

	fieldErrors, err := s.reconcileFields(ctx, form.ID, req.Fields)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, form.ID)

	action := "update"
	if created {
		action = "create"
	}
	s.metrics.RecordFormSaved(action)
	s.metrics.AddFieldErrors("save", len(fieldErrors))

	s.logger.Info("Form saved",
		zap.Uint("form_id", form.ID),
		zap.String("action", action),
		zap.Int("field_errors", len(fieldErrors)),
	)

	return &dto.SaveFormResult{FormID: form.ID, Created: created, FieldErrors: fieldErrors}, nil
}

// reconcileFields applies the field plan of a save; only store failures abort it
func (s *formServiceImpl) reconcileFields(ctx context.Context, formID uint, incoming []dto.FieldPayload) ([]dto.FieldError, error) {
	existing, err := s.fieldRepo.FindIDsByForm(ctx, formID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form fields", err.Error())
	}

	plan := Reconcile(existing, incoming)
	fieldErrors := []dto.FieldError{}

	// owner description by name; fields the plan leaves alone keep theirs
	names, err := s.untouchedActiveNames(ctx, formID, plan)
	if err != nil {
		return nil, err
	}

	claimName := func(pf PlannedField) bool {
		name := strings.TrimSpace(pf.Payload.Name)
		if owner, taken := names[name]; taken {
			fieldErrors = append(fieldErrors, fieldError(pf, map[string][]string{
				"name": {fmt.Sprintf("name %q is already used by %s", name, owner)},
			}))
			return false
		}
		names[name] = fmt.Sprintf("field #%d", pf.Index)
		return true
	}

	for _, pf := range plan.Update {
		if !claimName(pf) {
			continue
		}
		field, err := s.fieldRepo.FindByFormAndID(ctx, formID, pf.Payload.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fieldErrors = append(fieldErrors, fieldError(pf, map[string][]string{
					"id": {fmt.Sprintf("field %d does not belong to this form", pf.Payload.ID)},
				}))
				continue
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field", err.Error())
		}

		applyFieldPayload(field, pf.Payload)
		if errs := field.Validate(); len(errs) > 0 {
			fieldErrors = append(fieldErrors, fieldError(pf, errs))
			continue
		}
		if err := s.fieldRepo.Update(ctx, field); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update field", err.Error())
		}
	}

	for _, pf := range plan.Create {
		if !claimName(pf) {
			continue
		}
		field := newFieldFromPayload(formID, pf.Payload)
		if errs := field.Validate(); len(errs) > 0 {
			fieldErrors = append(fieldErrors, fieldError(pf, errs))
			continue
		}
		if err := s.fieldRepo.Create(ctx, field); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create field", err.Error())
		}
	}

	if len(plan.SoftDelete) > 0 {
		n, err := s.fieldRepo.SoftDeleteBatch(ctx, formID, plan.SoftDelete)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to deactivate fields", err.Error())
		}
		s.metrics.AddFieldsSoftDeleted(n)
	}

	return fieldErrors, nil
}

// untouchedActiveNames returns the names of active fields that are neither updated nor deactivated by the plan
func (s *formServiceImpl) untouchedActiveNames(ctx context.Context, formID uint, plan Plan) (map[string]string, error) {
	names := map[string]string{}
	if len(plan.Create) == 0 && len(plan.Update) == 0 {
		return names, nil
	}

	active, err := s.fieldRepo.FindActiveByForm(ctx, formID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form fields", err.Error())
	}

	touched := make(map[uint]struct{}, len(plan.Update)+len(plan.SoftDelete))
	for _, pf := range plan.Update {
		touched[pf.Payload.ID] = struct{}{}
	}
	for _, id := range plan.SoftDelete {
		touched[id] = struct{}{}
	}
	for _, f := range active {
		if _, ok := touched[f.ID]; ok {
			continue
		}
		names[f.Name] = fmt.Sprintf("existing field %d", f.ID)
	}
	return names, nil
}

func (s *formServiceImpl) loadWithFields(ctx context.Context, formID uint) (*domain.Form, error) {
	form, err := s.formRepo.FindByIDWithFields(ctx, formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Form not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form", err.Error())
	}
	return form, nil
}

func fieldError(pf PlannedField, errs map[string][]string) dto.FieldError {
	return dto.FieldError{Index: pf.Index, ID: pf.Payload.ID, Name: pf.Payload.Name, Errors: errs}
}

func fieldTypeNames() []string {
	types := domain.RegisteredFieldTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
