package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-service/internal/cache"
	"form-service/internal/dto"
	"form-service/internal/metrics"
	"form-service/internal/permission"
	"form-service/internal/repository"
	"form-service/internal/response"
	"form-service/internal/storage"
)

const importDocumentSchema = `{
  "type": "array",
  "items": {"type": "object"}
}`

const importFieldSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "integer", "minimum": 0},
    "form_id": {"type": "integer", "minimum": 0},
    "name": {"type": "string", "minLength": 1},
    "type": {"type": "string", "minLength": 1},
    "required": {"type": "boolean"},
    "order": {"type": "integer", "minimum": 0},
    "active": {"type": "boolean"},
    "index_view": {"type": "boolean"},
    "options": {"type": ["object", "null"]},
    "created_at": {"type": "string"},
    "updated_at": {"type": "string"}
  },
  "required": ["name", "type"],
  "additionalProperties": false
}`

var (
	importSchemasOnce sync.Once
	importDocument    *jsonschema.Resolved
	importField       *jsonschema.Resolved
	importSchemasErr  error
)

func importSchemas() (*jsonschema.Resolved, *jsonschema.Resolved, error) {
	importSchemasOnce.Do(func() {
		importDocument, importSchemasErr = resolveSchema(importDocumentSchema)
		if importSchemasErr != nil {
			return
		}
		importField, importSchemasErr = resolveSchema(importFieldSchema)
	})
	return importDocument, importField, importSchemasErr
}

func resolveSchema(raw string) (*jsonschema.Resolved, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into jsonschema.Schema: %w", err)
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve JSON schema: %w", err)
	}
	return resolved, nil
}

// TransferService exports a form's fields as JSON artifacts and imports field documents
type TransferService interface {
	Export(ctx context.Context, formID uint) (*dto.ExportResponse, error)
	Import(ctx context.Context, formID uint, document []byte) (*dto.ImportResult, error)
	Download(ctx context.Context, handle string) (io.ReadCloser, error)
}

type transferServiceImpl struct {
	formRepo  repository.FormRepository
	fieldRepo repository.FieldRepository
	store     storage.ArtifactStore
	checker   permission.Checker
	cache     cache.FormCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTransferService creates a new instance of TransferService
func NewTransferService(
	formRepo repository.FormRepository,
	fieldRepo repository.FieldRepository,
	store storage.ArtifactStore,
	checker permission.Checker,
	formCache cache.FormCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) TransferService {
	if formCache == nil {
		formCache = cache.NoopFormCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &transferServiceImpl{
		formRepo:  formRepo,
		fieldRepo: fieldRepo,
		store:     store,
		checker:   checker,
		cache:     formCache,
		metrics:   m,
		logger:    logger,
	}
}

// Export writes every stored field of the form into a new artifact and returns its handle
func (s *transferServiceImpl) Export(ctx context.Context, formID uint) (*dto.ExportResponse, error) {
	if err := s.authorize(ctx, formID); err != nil {
		return nil, err
	}

	fields, err := s.fieldRepo.FindByForm(ctx, formID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form fields", err.Error())
	}

	document := make([]dto.FieldResponse, 0, len(fields))
	for _, f := range fields {
		document = append(document, dto.NewFieldResponse(f))
	}
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		s.metrics.RecordExport(metrics.OutcomeFailure)
		return nil, response.NewAppError(response.ErrCodeArtifact, "Could not create JSON", err.Error())
	}

	name := storage.NewArtifactName()
	if err := s.store.Save(ctx, name, bytes.NewReader(data)); err != nil {
		s.metrics.RecordExport(metrics.OutcomeFailure)
		s.logger.Error("Failed to write export artifact", zap.Uint("form_id", formID), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeArtifact, "Could not create JSON", err.Error())
	}

	s.metrics.RecordExport(metrics.OutcomeSuccess)
	s.logger.Info("Fields exported", zap.Uint("form_id", formID), zap.Int("fields", len(fields)))
	return &dto.ExportResponse{JSONFile: storage.HandleOf(name)}, nil
}

// Import stores every valid entry of the document as a new field of the form.
// An empty or malformed document imports nothing; invalid entries are reported and skipped.
func (s *transferServiceImpl) Import(ctx context.Context, formID uint, document []byte) (*dto.ImportResult, error) {
	if formID == 0 {
		return nil, response.NewValidationError("Form ID is required", "")
	}
	if err := s.authorize(ctx, formID); err != nil {
		return nil, err
	}

	entries, err := parseImportDocument(document)
	if err != nil {
		s.metrics.RecordImport(metrics.OutcomeRejected)
		return nil, err
	}

	_, fieldSchema, err := importSchemas()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Import schema unavailable", err.Error())
	}

	taken, err := s.activeNames(ctx, formID)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Errors: []dto.FieldError{}}
	for i, raw := range entries {
		var instance any
		_ = json.Unmarshal(raw, &instance)
		if err := fieldSchema.Validate(instance); err != nil {
			result.Errors = append(result.Errors, dto.FieldError{Index: i, Errors: map[string][]string{"_": {err.Error()}}})
			continue
		}

		var payload dto.FieldPayload
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&payload); err != nil {
			result.Errors = append(result.Errors, dto.FieldError{Index: i, Errors: map[string][]string{"_": {err.Error()}}})
			continue
		}

		pf := PlannedField{Index: i, Payload: payload}
		pf.Payload.ID = 0
		field := newFieldFromPayload(formID, pf.Payload)
		if errs := field.Validate(); len(errs) > 0 {
			result.Errors = append(result.Errors, fieldError(pf, errs))
			continue
		}
		if field.Active {
			if _, dup := taken[field.Name]; dup {
				result.Errors = append(result.Errors, fieldError(pf, map[string][]string{
					"name": {fmt.Sprintf("name %q is already used by an active field", field.Name)},
				}))
				continue
			}
		}

		if err := s.fieldRepo.Create(ctx, field); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to import field", err.Error())
		}
		if field.Active {
			taken[field.Name] = struct{}{}
		}
		result.Imported++
	}

	s.cache.Invalidate(ctx, formID)
	s.metrics.RecordImport(metrics.OutcomeSuccess)
	s.metrics.AddFieldErrors("import", len(result.Errors))
	s.logger.Info("Fields imported",
		zap.Uint("form_id", formID),
		zap.Int("imported", result.Imported),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// Download opens a previously exported artifact by handle
func (s *transferServiceImpl) Download(ctx context.Context, handle string) (io.ReadCloser, error) {
	rc, err := s.store.Open(ctx, storage.NameOf(handle))
	if err != nil {
		if errors.Is(err, storage.ErrArtifactNotFound) {
			return nil, response.NewNotFoundError(fmt.Sprintf("Invalid json name: %s", handle), "")
		}
		return nil, response.NewAppError(response.ErrCodeArtifact, "Could not read JSON", err.Error())
	}
	return rc, nil
}

// parseImportDocument checks the document is a JSON array of objects and splits it
func parseImportDocument(document []byte) ([]json.RawMessage, error) {
	invalid := response.NewValidationError("Empty or invalid Json", "")

	trimmed := bytes.TrimSpace(document)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, invalid
	}

	docSchema, _, err := importSchemas()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Import schema unavailable", err.Error())
	}
	var instance any
	if err := json.Unmarshal(trimmed, &instance); err != nil {
		return nil, invalid
	}
	if err := docSchema.Validate(instance); err != nil {
		invalid.Details = strings.TrimSpace(err.Error())
		return nil, invalid
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, invalid
	}
	return entries, nil
}

func (s *transferServiceImpl) authorize(ctx context.Context, formID uint) error {
	if _, err := s.formRepo.FindByID(ctx, formID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Form not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch form", err.Error())
	}
	if !s.checker.CanEditForm(ctx, formID) {
		return response.NewForbiddenError("You are not allowed to edit this form")
	}
	return nil
}

func (s *transferServiceImpl) activeNames(ctx context.Context, formID uint) (map[string]struct{}, error) {
	fields, err := s.fieldRepo.FindActiveByForm(ctx, formID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch form fields", err.Error())
	}
	names := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		names[f.Name] = struct{}{}
	}
	return names, nil
}
