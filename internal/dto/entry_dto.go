package dto

import (
	"encoding/json"
	"time"
)

// EntryField is one value of a submission together with the field it was submitted for
type EntryField struct {
	FieldID uint            `json:"field_id"`
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Order   int             `json:"order"`
	Active  bool            `json:"active"`
	Options json.RawMessage `json:"options,omitempty" swaggertype:"object"`
	Value   string          `json:"value"`
}

// EntryResponse is a stored submission with its values in field order
type EntryResponse struct {
	ID     uint         `json:"id"`
	FormID uint         `json:"form_id"`
	Date   time.Time    `json:"date"`
	Fields []EntryField `json:"fields"`
}

// EntryListQuery pages the entries of a form; offset is only applied with a limit
type EntryListQuery struct {
	Offset int  `form:"offset" binding:"min=0"`
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=500"`
}
