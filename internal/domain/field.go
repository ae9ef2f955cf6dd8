package domain

import (
	"gorm.io/datatypes"
)

// FormField is one typed, ordered input of a form.
// Fields are never hard-deleted; removing one from a form deactivates it so that
// stored submission values keep resolving to a name and type.
type FormField struct {
	BaseModel
	FormID    uint           `gorm:"not null;index:idx_form_fields_form_id;index:idx_form_fields_form_active,priority:1" json:"form_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255,field_name"`
	Type      FieldType      `gorm:"type:varchar(50);not null" json:"type" validate:"required,field_type"`
	Required  bool           `gorm:"not null" json:"required"`
	Order     int            `gorm:"column:field_order;not null;index:idx_form_fields_form_active,priority:3" json:"order" validate:"min=0"`
	Active    bool           `gorm:"not null;index:idx_form_fields_form_active,priority:2" json:"active"`
	IndexView bool           `gorm:"not null" json:"index_view"`
	Options   datatypes.JSON `json:"options"`
}

// TableName specifies the table name for FormField
func (FormField) TableName() string {
	return "form_fields"
}

// TypedOptions decodes the stored options into the variant registered for the field type
func (f *FormField) TypedOptions() (FieldOptions, error) {
	return DecodeFieldOptions(f.Type, f.Options)
}

// Validate returns the attribute error map for the field, empty when valid
func (f *FormField) Validate() map[string][]string {
	errs := validateStruct(f)
	if _, err := f.TypedOptions(); err != nil {
		appendError(errs, "options", err.Error())
	}
	return errs
}

// Deactivate applies the soft-delete attribute set
func (f *FormField) Deactivate() {
	f.Active = false
	f.Required = false
	f.IndexView = false
}
