package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-service/internal/domain"
	"form-service/internal/dto"
	"form-service/internal/permission"
	"form-service/internal/repository"
	"form-service/internal/response"
)

// EntryService reads stored submissions
type EntryService interface {
	GetEntries(ctx context.Context, formID uint, query dto.EntryListQuery) ([]*dto.EntryResponse, error)
	GetEntry(ctx context.Context, formID, entryID uint) (*dto.EntryResponse, error)
}

type entryServiceImpl struct {
	formRepo    repository.FormRepository
	fieldRepo   repository.FieldRepository
	messageRepo repository.MessageRepository
	checker     permission.Checker
	logger      *zap.Logger
}

// NewEntryService creates a new instance of EntryService
func NewEntryService(
	formRepo repository.FormRepository,
	fieldRepo repository.FieldRepository,
	messageRepo repository.MessageRepository,
	checker permission.Checker,
	logger *zap.Logger,
) EntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entryServiceImpl{
		formRepo:    formRepo,
		fieldRepo:   fieldRepo,
		messageRepo: messageRepo,
		checker:     checker,
		logger:      logger,
	}
}

// GetEntries lists the submissions of a form, newest first
func (s *entryServiceImpl) GetEntries(ctx context.Context, formID uint, query dto.EntryListQuery) ([]*dto.EntryResponse, error) {
	if err := s.authorize(ctx, formID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByForm(ctx, formID, query.Offset, query.Limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch entries", err.Error())
	}

	arena, err := s.loadFields(ctx, messages...)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.EntryResponse, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, s.loadMessage(m, arena))
	}
	return entries, nil
}

// GetEntry returns one submission of the form
func (s *entryServiceImpl) GetEntry(ctx context.Context, formID, entryID uint) (*dto.EntryResponse, error) {
	if err := s.authorize(ctx, formID); err != nil {
		return nil, err
	}

	message, err := s.messageRepo.FindByFormAndID(ctx, formID, entryID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch entry", err.Error())
	}
	if message == nil {
		return nil, response.NewNotFoundError("Entry not found", "")
	}

	arena, err := s.loadFields(ctx, message)
	if err != nil {
		return nil, err
	}
	return s.loadMessage(message, arena), nil
}

func (s *entryServiceImpl) authorize(ctx context.Context, formID uint) error {
	if _, err := s.formRepo.FindByID(ctx, formID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Form not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch form", err.Error())
	}
	if !s.checker.CanEditForm(ctx, formID) {
		return response.NewForbiddenError("You are not allowed to view entries of this form")
	}
	return nil
}

// fieldArena resolves the weak field reference of stored values by id
type fieldArena map[uint]*domain.FormField

// loadFields fetches every field referenced by the messages in one query, active or not
func (s *entryServiceImpl) loadFields(ctx context.Context, messages ...*domain.Message) (fieldArena, error) {
	seen := map[uint]struct{}{}
	var ids []uint
	for _, m := range messages {
		for _, v := range m.Values {
			if _, ok := seen[v.FieldID]; ok {
				continue
			}
			seen[v.FieldID] = struct{}{}
			ids = append(ids, v.FieldID)
		}
	}

	fields, err := s.fieldRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch entry fields", err.Error())
	}
	arena := make(fieldArena, len(fields))
	for _, f := range fields {
		arena[f.ID] = f
	}
	return arena, nil
}

// loadMessage assembles a submission with its values in field order; a nil message gives nil
func (s *entryServiceImpl) loadMessage(m *domain.Message, arena fieldArena) *dto.EntryResponse {
	if m == nil {
		return nil
	}
	entry := &dto.EntryResponse{
		ID:     m.ID,
		FormID: m.FormID,
		Date:   m.CreatedAt,
		Fields: make([]dto.EntryField, 0, len(m.Values)),
	}

	for _, v := range m.Values {
		f, ok := arena[v.FieldID]
		if !ok {
			s.logger.Warn("Entry value references an unknown field",
				zap.Uint("message_id", m.ID),
				zap.Uint("field_id", v.FieldID),
			)
			continue
		}
		entry.Fields = append(entry.Fields, entryField(f, v.Value))
	}

	sort.SliceStable(entry.Fields, func(i, j int) bool {
		return entry.Fields[i].Order < entry.Fields[j].Order
	})
	return entry
}

func entryField(f *domain.FormField, value string) dto.EntryField {
	var options json.RawMessage
	if len(f.Options) > 0 {
		options = json.RawMessage(f.Options)
	}
	return dto.EntryField{
		FieldID: f.ID,
		Name:    f.Name,
		Label:   fieldLabel(f),
		Type:    string(f.Type),
		Order:   f.Order,
		Active:  f.Active,
		Options: options,
		Value:   value,
	}
}
