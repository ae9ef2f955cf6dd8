package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"form-service/internal/dto"
	"form-service/internal/response"
)

func setupFormRouter(svc *MockFormService) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true
	h := NewFormHandler(svc, 1)
	r := gin.New()
	r.GET("/forms", h.ListForms)
	r.POST("/forms", h.SaveForm)
	r.GET("/forms/new", h.NewForm)
	r.GET("/forms/settings", h.GetSettings)
	r.GET("/forms/:id", h.GetForm)
	return r
}

func TestFormHandler_SaveForm(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		siteHeader     string
		mockService    func(*MockFormService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:       "created with the header site",
			body:       `{"name":"Contact","fields":[{"name":"email","type":"email"}]}`,
			siteHeader: "7",
			mockService: func(m *MockFormService) {
				m.SaveFormFunc = func(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error) {
					if siteID != 7 || len(req.Fields) != 1 {
						return nil, response.NewValidationError("unexpected request", "")
					}
					return &dto.SaveFormResult{FormID: 5, Created: true}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"success":true,"message":"Form saved","formId":5}`, string(body))
			},
		},
		{
			name: "default site and reported field errors",
			body: `{"id":5,"name":"Contact","fields":[{"name":"","type":"text"}]}`,
			mockService: func(m *MockFormService) {
				m.SaveFormFunc = func(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error) {
					assert.Equal(t, uint(1), siteID)
					return &dto.SaveFormResult{FormID: 5, FieldErrors: []dto.FieldError{
						{Index: 2, Name: "x", Errors: map[string][]string{"type": {"bad"}}},
					}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var env response.Envelope
				require.NoError(t, json.Unmarshal(body, &env))
				assert.True(t, env.Success)
				assert.NotNil(t, env.Errors)
			},
		},
		{
			name:           "unknown key rejected",
			body:           `{"name":"Contact","handle":"contact"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not json",
			body:           `name=Contact`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "form errors",
			body: `{"name":""}`,
			mockService: func(m *MockFormService) {
				m.SaveFormFunc = func(ctx context.Context, siteID uint, req *dto.SaveFormRequest) (*dto.SaveFormResult, error) {
					return nil, response.NewFieldValidationError("Form could not be saved", map[string][]string{"name": {"name cannot be blank"}})
				}
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "name cannot be blank")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockFormService{}
			if tt.mockService != nil {
				tt.mockService(svc)
			}
			router := setupFormRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/forms", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.siteHeader != "" {
				req.Header.Set(SiteIDHeader, tt.siteHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestFormHandler_Views(t *testing.T) {
	svc := &MockFormService{
		GetFormFunc: func(ctx context.Context, formID uint) (*dto.EditorResponse, error) {
			if formID != 3 {
				return nil, response.NewNotFoundError("Form not found", "")
			}
			return &dto.EditorResponse{Form: dto.FormResponse{ID: 3, Name: "Contact"}, FieldTypes: []string{"text"}}, nil
		},
		GetSettingsFunc: func(ctx context.Context, formID uint) ([]byte, error) {
			if formID == 0 {
				return nil, response.NewNotFoundError("Form not found", "")
			}
			return []byte(`{"id":3,"fields":[]}`), nil
		},
	}
	router := setupFormRouter(svc)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/forms", http.StatusOK, `"data":[]`},
		{"/forms/new", http.StatusOK, `"success":true`},
		{"/forms/3", http.StatusOK, `"name":"Contact"`},
		{"/forms/4", http.StatusNotFound, `NOT_FOUND`},
		{"/forms/abc", http.StatusNotFound, `NOT_FOUND`},
		{"/forms/settings?form_id=3", http.StatusOK, `{"id":3,"fields":[]}`},
		{"/forms/settings?form_id=x", http.StatusNotFound, `NOT_FOUND`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
