package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// FieldType identifies the kind of input a field renders as
type FieldType string

// Built-in field types
const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeList     FieldType = "list"
	FieldTypeFile     FieldType = "file"
	FieldTypeHidden   FieldType = "hidden"
)

// FieldOptions is the type-specific option set of a field.
// Every variant embeds CommonOptions.
type FieldOptions interface {
	Base() CommonOptions
}

// CommonOptions are understood by every field type
type CommonOptions struct {
	Label          string `json:"label,omitempty"`
	DisplayLabel   bool   `json:"display_label,omitempty"`
	ContainerClass string `json:"container_class,omitempty"`
	FieldClass     string `json:"field_class,omitempty"`
}

func (c CommonOptions) Base() CommonOptions { return c }

// TextOptions serve text, email and number inputs
type TextOptions struct {
	CommonOptions
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"max_length,omitempty"`
}

type TextareaOptions struct {
	CommonOptions
	Placeholder string `json:"placeholder,omitempty"`
	Rows        int    `json:"rows,omitempty"`
}

// ChoiceOptions serve select, checkbox and radio fields
type ChoiceOptions struct {
	CommonOptions
	Items       []string `json:"items,omitempty"`
	SelectEmpty bool     `json:"select_empty,omitempty"`
	Multiple    bool     `json:"multiple,omitempty"`
}

// ListOptions configure a repeatable free-text list
type ListOptions struct {
	CommonOptions
	ItemPlaceholder string `json:"item_placeholder,omitempty"`
	MaxItems        int    `json:"max_items,omitempty"`
}

type FileOptions struct {
	CommonOptions
	Accept   string `json:"accept,omitempty"`
	Multiple bool   `json:"multiple,omitempty"`
}

type HiddenOptions struct {
	CommonOptions
	Default string `json:"default,omitempty"`
}

// OptionsFactory returns an empty options value for a field type
type OptionsFactory func() FieldOptions

var (
	fieldTypesMu sync.RWMutex
	fieldTypes   = map[FieldType]OptionsFactory{
		FieldTypeText:     func() FieldOptions { return &TextOptions{} },
		FieldTypeEmail:    func() FieldOptions { return &TextOptions{} },
		FieldTypeNumber:   func() FieldOptions { return &TextOptions{} },
		FieldTypeTextarea: func() FieldOptions { return &TextareaOptions{} },
		FieldTypeSelect:   func() FieldOptions { return &ChoiceOptions{} },
		FieldTypeCheckbox: func() FieldOptions { return &ChoiceOptions{} },
		FieldTypeRadio:    func() FieldOptions { return &ChoiceOptions{} },
		FieldTypeList:     func() FieldOptions { return &ListOptions{} },
		FieldTypeFile:     func() FieldOptions { return &FileOptions{} },
		FieldTypeHidden:   func() FieldOptions { return &HiddenOptions{} },
	}
)

// RegisterFieldType adds or replaces a field type in the registry
func RegisterFieldType(fieldType FieldType, factory OptionsFactory) {
	if fieldType == "" || factory == nil {
		return
	}
	fieldTypesMu.Lock()
	defer fieldTypesMu.Unlock()
	fieldTypes[fieldType] = factory
}

// IsRegisteredFieldType reports whether the type has an options variant
func IsRegisteredFieldType(fieldType FieldType) bool {
	fieldTypesMu.RLock()
	defer fieldTypesMu.RUnlock()
	_, ok := fieldTypes[fieldType]
	return ok
}

// RegisteredFieldTypes lists the registered types in name order
func RegisteredFieldTypes() []FieldType {
	fieldTypesMu.RLock()
	defer fieldTypesMu.RUnlock()
	types := make([]FieldType, 0, len(fieldTypes))
	for t := range fieldTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DecodeFieldOptions decodes raw options into the variant registered for fieldType.
// Keys the variant does not declare are rejected.
func DecodeFieldOptions(fieldType FieldType, raw []byte) (FieldOptions, error) {
	fieldTypesMu.RLock()
	factory, ok := fieldTypes[fieldType]
	fieldTypesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown field type %q", fieldType)
	}

	opts := factory()
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return opts, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("invalid options for %s field: %w", fieldType, err)
	}
	return opts, nil
}
