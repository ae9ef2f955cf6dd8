package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"form-service/internal/domain"
)

// Field is an active form field bound to its redisplay value
type Field struct {
	Definition *domain.FormField
	Options    domain.FieldOptions
	Value      string
}

func (f *Field) Name() string           { return f.Definition.Name }
func (f *Field) Type() domain.FieldType { return f.Definition.Type }
func (f *Field) Order() int             { return f.Definition.Order }
func (f *Field) Required() bool         { return f.Definition.Required }

func (f *Field) Common() domain.CommonOptions {
	if f.Options == nil {
		return domain.CommonOptions{}
	}
	return f.Options.Base()
}

// Label falls back to the field name
func (f *Field) Label() string {
	if l := f.Common().Label; l != "" {
		return l
	}
	return f.Definition.Name
}

// ElementID is the DOM id of the control
func (f *Field) ElementID() string {
	return fmt.Sprintf("wf-field-%d-%s", f.Definition.FormID, f.Definition.Name)
}

// Render returns the escaped markup of the field wrapped in its container
func (f *Field) Render() string {
	control := rendererFor(f.Type())(f)

	container := NewAttrs("class", strings.TrimSpace("wf-field wf-"+string(f.Type())+" "+f.Common().ContainerClass))
	var b strings.Builder
	b.WriteString("<div")
	b.WriteString(container.String())
	b.WriteString(">")
	if f.Common().DisplayLabel && f.Type() != domain.FieldTypeHidden {
		b.WriteString(`<label for="`)
		b.WriteString(html.EscapeString(f.ElementID()))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(f.Label()))
		b.WriteString("</label>")
	}
	b.WriteString(control)
	b.WriteString("</div>")
	return b.String()
}

// FieldRenderer produces the control markup for one field type
type FieldRenderer func(f *Field) string

var (
	renderersMu sync.RWMutex
	renderers   = map[domain.FieldType]FieldRenderer{
		domain.FieldTypeText:     renderInput,
		domain.FieldTypeEmail:    renderInput,
		domain.FieldTypeNumber:   renderInput,
		domain.FieldTypeTextarea: renderTextarea,
		domain.FieldTypeSelect:   renderSelect,
		domain.FieldTypeCheckbox: renderChoices,
		domain.FieldTypeRadio:    renderChoices,
		domain.FieldTypeList:     renderList,
		domain.FieldTypeFile:     renderFile,
		domain.FieldTypeHidden:   renderHidden,
	}
)

// RegisterFieldRenderer sets the renderer of a field type, usually one added with domain.RegisterFieldType
func RegisterFieldRenderer(fieldType domain.FieldType, r FieldRenderer) {
	if r == nil {
		return
	}
	renderersMu.Lock()
	defer renderersMu.Unlock()
	renderers[fieldType] = r
}

func rendererFor(fieldType domain.FieldType) FieldRenderer {
	renderersMu.RLock()
	defer renderersMu.RUnlock()
	if r, ok := renderers[fieldType]; ok {
		return r
	}
	return renderInput
}

func baseAttrs(f *Field) *Attrs {
	attrs := NewAttrs("name", f.Name(), "id", f.ElementID(), "class", f.Common().FieldClass)
	if f.Required() {
		attrs.Set("required", "required")
	}
	return attrs
}

func renderInput(f *Field) string {
	inputType := string(f.Type())
	switch f.Type() {
	case domain.FieldTypeText, domain.FieldTypeEmail, domain.FieldTypeNumber:
	default:
		inputType = "text"
	}
	attrs := NewAttrs("type", inputType)
	attrs.Extend(baseAttrs(f))
	attrs.Set("value", f.Value)
	if opts, ok := f.Options.(*domain.TextOptions); ok {
		if opts.Placeholder != "" {
			attrs.Set("placeholder", opts.Placeholder)
		}
		if opts.MaxLength > 0 {
			attrs.Set("maxlength", strconv.Itoa(opts.MaxLength))
		}
	}
	return "<input" + attrs.String() + ">"
}

func renderTextarea(f *Field) string {
	attrs := baseAttrs(f)
	if opts, ok := f.Options.(*domain.TextareaOptions); ok {
		if opts.Placeholder != "" {
			attrs.Set("placeholder", opts.Placeholder)
		}
		if opts.Rows > 0 {
			attrs.Set("rows", strconv.Itoa(opts.Rows))
		}
	}
	return "<textarea" + attrs.String() + ">" + html.EscapeString(f.Value) + "</textarea>"
}

// selectedValues splits a multi-value submission
func selectedValues(value string) map[string]bool {
	selected := map[string]bool{}
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			selected[v] = true
		}
	}
	return selected
}

func renderSelect(f *Field) string {
	opts, _ := f.Options.(*domain.ChoiceOptions)
	if opts == nil {
		opts = &domain.ChoiceOptions{}
	}
	attrs := baseAttrs(f)
	if opts.Multiple {
		attrs.Set("name", f.Name()+"[]")
		attrs.Set("multiple", "multiple")
	}

	selected := selectedValues(f.Value)
	var b strings.Builder
	b.WriteString("<select" + attrs.String() + ">")
	if opts.SelectEmpty {
		b.WriteString(`<option value="">--</option>`)
	}
	for _, item := range opts.Items {
		o := NewAttrs("value", item)
		if selected[item] {
			o.Set("selected", "selected")
		}
		b.WriteString("<option" + o.String() + ">" + html.EscapeString(item) + "</option>")
	}
	b.WriteString("</select>")
	return b.String()
}

func renderChoices(f *Field) string {
	opts, _ := f.Options.(*domain.ChoiceOptions)
	if opts == nil {
		opts = &domain.ChoiceOptions{}
	}
	inputType := string(f.Type())
	name := f.Name()
	if f.Type() == domain.FieldTypeCheckbox {
		name += "[]"
	}

	selected := selectedValues(f.Value)
	var b strings.Builder
	for i, item := range opts.Items {
		id := fmt.Sprintf("%s-%d", f.ElementID(), i)
		attrs := NewAttrs("type", inputType, "name", name, "id", id, "value", item, "class", f.Common().FieldClass)
		if selected[item] {
			attrs.Set("checked", "checked")
		}
		b.WriteString(`<label for="` + html.EscapeString(id) + `">`)
		b.WriteString("<input" + attrs.String() + "> ")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</label>")
	}
	return b.String()
}

func renderList(f *Field) string {
	opts, _ := f.Options.(*domain.ListOptions)
	if opts == nil {
		opts = &domain.ListOptions{}
	}
	wrapper := NewAttrs("class", "wf-list", "id", f.ElementID())
	if opts.MaxItems > 0 {
		wrapper.Set("data-max-items", strconv.Itoa(opts.MaxItems))
	}

	items := []string{""}
	if f.Value != "" {
		items = strings.Split(f.Value, ",")
	}
	var b strings.Builder
	b.WriteString("<div" + wrapper.String() + ">")
	for _, item := range items {
		attrs := NewAttrs("type", "text", "name", f.Name()+"[]", "value", strings.TrimSpace(item), "class", f.Common().FieldClass)
		if opts.ItemPlaceholder != "" {
			attrs.Set("placeholder", opts.ItemPlaceholder)
		}
		b.WriteString("<input" + attrs.String() + ">")
	}
	b.WriteString("</div>")
	return b.String()
}

func renderFile(f *Field) string {
	attrs := NewAttrs("type", "file")
	attrs.Extend(baseAttrs(f))
	if opts, ok := f.Options.(*domain.FileOptions); ok {
		if opts.Accept != "" {
			attrs.Set("accept", opts.Accept)
		}
		if opts.Multiple {
			attrs.Set("name", f.Name()+"[]")
			attrs.Set("multiple", "multiple")
		}
	}
	return "<input" + attrs.String() + ">"
}

func renderHidden(f *Field) string {
	value := f.Value
	if opts, ok := f.Options.(*domain.HiddenOptions); ok && value == "" {
		value = opts.Default
	}
	return hiddenInput(f.Name(), value, "id", f.ElementID())
}
