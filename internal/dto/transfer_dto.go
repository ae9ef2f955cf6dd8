package dto

// ExportRequest selects the form whose fields are exported
type ExportRequest struct {
	FormID uint `json:"form_id" binding:"required"`
}

// ExportResponse names the artifact to download
type ExportResponse struct {
	JSONFile string `json:"jsonFile"`
}

// ImportResult reports the entries that were stored and the ones that were not
type ImportResult struct {
	Imported int          `json:"imported"`
	Errors   []FieldError `json:"errors"`
}
