package domain

import (
	"gorm.io/datatypes"
)

// FormOptions holds the form-level custom options
type FormOptions struct {
	Honeypot       string `json:"honeypot,omitempty" validate:"omitempty,max=255,field_name"`
	UserValidation bool   `json:"user_validation,omitempty"`
}

// Form is an editable schema of fields plus its submission behaviour
type Form struct {
	BaseModel
	SiteID    uint                            `gorm:"not null;index:idx_forms_site_id" json:"site_id"`
	Name      string                          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	ToEmail   string                          `gorm:"type:varchar(1000)" json:"to_email" validate:"omitempty,max=1000,email_list"`
	Active    bool                            `gorm:"not null" json:"active"`
	SendEmail bool                            `gorm:"not null" json:"send_email"`
	Recaptcha bool                            `gorm:"not null" json:"recaptcha"`
	SaveEntry bool                            `gorm:"not null" json:"save_entry"`
	Options   datatypes.JSONType[FormOptions] `json:"options"`
	// Fields is only filled when explicitly loaded; it is never cascaded on delete
	Fields []FormField `gorm:"foreignKey:FormID;constraint:OnDelete:RESTRICT" json:"fields,omitempty"`
}

// TableName specifies the table name for Form
func (Form) TableName() string {
	return "forms"
}

// Honeypot returns the configured honeypot field name, empty when disabled
func (f *Form) Honeypot() string {
	return f.Options.Data().Honeypot
}

// Validate returns the attribute error map for the form, empty when valid
func (f *Form) Validate() map[string][]string {
	errs := validateStruct(f)
	opts := f.Options.Data()
	for field, msgs := range validateStruct(&opts) {
		for _, msg := range msgs {
			appendError(errs, "options."+field, msg)
		}
	}
	if f.SendEmail && f.ToEmail == "" {
		appendError(errs, "to_email", "to_email is required when send_email is enabled")
	}
	return errs
}
