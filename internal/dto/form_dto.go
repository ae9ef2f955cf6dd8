package dto

import (
	"encoding/json"
	"time"

	"form-service/internal/domain"
)

// FieldPayload is one field of a save request or of an import document.
// Pointer flags are left untouched on update when absent.
type FieldPayload struct {
	ID        uint            `json:"id,omitempty"`
	FormID    uint            `json:"form_id,omitempty" swaggerignore:"true"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Required  *bool           `json:"required,omitempty"`
	Order     int             `json:"order"`
	Active    *bool           `json:"active,omitempty"`
	IndexView *bool           `json:"index_view,omitempty"`
	Options   json.RawMessage `json:"options,omitempty" swaggertype:"object"`
	// CreatedAt and UpdatedAt are accepted so exported documents import unchanged; they are ignored
	CreatedAt *time.Time `json:"created_at,omitempty" swaggerignore:"true"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" swaggerignore:"true"`
}

// SaveFormRequest is the editor save body: form attributes plus the full field list
type SaveFormRequest struct {
	ID        uint               `json:"id,omitempty"`
	Name      string             `json:"name"`
	ToEmail   string             `json:"to_email"`
	Active    bool               `json:"active"`
	SendEmail bool               `json:"send_email"`
	Recaptcha bool               `json:"recaptcha"`
	SaveEntry bool               `json:"save_entry"`
	Options   domain.FormOptions `json:"options"`
	Fields    []FieldPayload     `json:"fields"`
}

// FieldError reports a field that was left unchanged during a save or import
type FieldError struct {
	Index  int                 `json:"index"`
	ID     uint                `json:"id,omitempty"`
	Name   string              `json:"name,omitempty"`
	Errors map[string][]string `json:"errors"`
}

// SaveFormResult is the outcome of a successful save
type SaveFormResult struct {
	FormID      uint
	Created     bool
	FieldErrors []FieldError
}

// FieldResponse is a stored field
type FieldResponse struct {
	ID        uint            `json:"id"`
	FormID    uint            `json:"form_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Required  bool            `json:"required"`
	Order     int             `json:"order"`
	Active    bool            `json:"active"`
	IndexView bool            `json:"index_view"`
	Options   json.RawMessage `json:"options,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FormResponse is a form with its fields, as served to the editor
type FormResponse struct {
	ID        uint               `json:"id"`
	SiteID    uint               `json:"site_id"`
	Name      string             `json:"name"`
	ToEmail   string             `json:"to_email"`
	Active    bool               `json:"active"`
	SendEmail bool               `json:"send_email"`
	Recaptcha bool               `json:"recaptcha"`
	SaveEntry bool               `json:"save_entry"`
	Options   domain.FormOptions `json:"options"`
	Fields    []FieldResponse    `json:"fields"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// FormSummary is one row of the form list
type FormSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	SaveEntry bool      `json:"save_entry"`
	CreatedAt time.Time `json:"created_at"`
}

// EditorResponse is the payload of the new and edit views
type EditorResponse struct {
	Form       FormResponse `json:"form"`
	FieldTypes []string     `json:"field_types"`
}

// NewFieldResponse maps a stored field
func NewFieldResponse(f *domain.FormField) FieldResponse {
	var options json.RawMessage
	if len(f.Options) > 0 {
		options = json.RawMessage(f.Options)
	}
	return FieldResponse{
		ID:        f.ID,
		FormID:    f.FormID,
		Name:      f.Name,
		Type:      string(f.Type),
		Required:  f.Required,
		Order:     f.Order,
		Active:    f.Active,
		IndexView: f.IndexView,
		Options:   options,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// NewFormResponse maps a stored form and whatever fields were loaded with it
func NewFormResponse(f *domain.Form) FormResponse {
	fields := make([]FieldResponse, 0, len(f.Fields))
	for i := range f.Fields {
		fields = append(fields, NewFieldResponse(&f.Fields[i]))
	}
	return FormResponse{
		ID:        f.ID,
		SiteID:    f.SiteID,
		Name:      f.Name,
		ToEmail:   f.ToEmail,
		Active:    f.Active,
		SendEmail: f.SendEmail,
		Recaptcha: f.Recaptcha,
		SaveEntry: f.SaveEntry,
		Options:   f.Options.Data(),
		Fields:    fields,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
