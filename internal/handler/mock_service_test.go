package handler

import (
	"context"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"form-service/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockFormService is a mock implementation of FormService
type MockFormService struct {
	ListFormsFunc   func(ctx context.Context) ([]*dto.FormSummary, error)
	NewFormFunc     func(ctx context.Context) (*dto.EditorResponse, error)
	GetFormFunc     func(ctx context.Context, formID uint) (*dto.EditorResponse, error)
	GetSettingsFunc func(ctx context.Context, formID uint) ([]byte, error)
	SaveFormFunc    func(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error)
}

func (m *MockFormService) ListForms(ctx context.Context) ([]*dto.FormSummary, error) {
	if m.ListFormsFunc != nil {
		return m.ListFormsFunc(ctx)
	}
	return []*dto.FormSummary{}, nil
}

func (m *MockFormService) NewForm(ctx context.Context) (*dto.EditorResponse, error) {
	if m.NewFormFunc != nil {
		return m.NewFormFunc(ctx)
	}
	return &dto.EditorResponse{}, nil
}

func (m *MockFormService) GetForm(ctx context.Context, formID uint) (*dto.EditorResponse, error) {
	if m.GetFormFunc != nil {
		return m.GetFormFunc(ctx, formID)
	}
	return &dto.EditorResponse{}, nil
}

func (m *MockFormService) GetSettings(ctx context.Context, formID uint) ([]byte, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(ctx, formID)
	}
	return []byte(`{}`), nil
}

func (m *MockFormService) SaveForm(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error) {
	if m.SaveFormFunc != nil {
		return m.SaveFormFunc(ctx, siteID, req)
	}
	return &dto.SaveFormResult{FormID: 1, Created: true}, nil
}

// MockEntryService is a mock implementation of EntryService
type MockEntryService struct {
	GetEntriesFunc func(ctx context.Context, formID uint, query dto.EntryListQuery) ([]*dto.EntryResponse, error)
	GetEntryFunc   func(ctx context.Context, formID, entryID uint) (*dto.EntryResponse, error)
}

func (m *MockEntryService) GetEntries(ctx context.Context, formID uint, query dto.EntryListQuery) ([]*dto.EntryResponse, error) {
	if m.GetEntriesFunc != nil {
		return m.GetEntriesFunc(ctx, formID, query)
	}
	return []*dto.EntryResponse{}, nil
}

func (m *MockEntryService) GetEntry(ctx context.Context, formID, entryID uint) (*dto.EntryResponse, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, formID, entryID)
	}
	return &dto.EntryResponse{ID: entryID, FormID: formID}, nil
}

// MockTransferService is a mock implementation of TransferService
type MockTransferService struct {
	ExportFunc   func(ctx context.Context, formID uint) (*dto.ExportResponse, error)
	ImportFunc   func(ctx context.Context, formID uint, document []byte) (*dto.ImportResult, error)
	DownloadFunc func(ctx context.Context, handle string) (io.ReadCloser, error)
}

func (m *MockTransferService) Export(ctx context.Context, formID uint) (*dto.ExportResponse, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, formID)
	}
	return &dto.ExportResponse{JSONFile: "artifact"}, nil
}

func (m *MockTransferService) Import(ctx context.Context, formID uint, document []byte) (*dto.ImportResult, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, formID, document)
	}
	return &dto.ImportResult{Errors: []dto.FieldError{}}, nil
}

func (m *MockTransferService) Download(ctx context.Context, handle string) (io.ReadCloser, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, handle)
	}
	return io.NopCloser(strings.NewReader("[]")), nil
}

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	SubmitFunc func(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResult, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return &dto.SubmitResult{}, nil
}
