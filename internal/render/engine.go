// Package render turns a stored form and a value set into form markup.
//
// A caller binds a form, then emits Open, each of Fields, and Close in that order.
// Every interpolated value is escaped here, so the output can be inserted into a page unescaped.
package render

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"form-service/internal/config"
	"form-service/internal/domain"
	"form-service/internal/signer"
)

// FormLoader loads a form without its fields
type FormLoader interface {
	FindByID(ctx context.Context, id uint) (*domain.Form, error)
}

// FieldLoader loads the active fields of a form ordered by order then insertion
type FieldLoader interface {
	FindActiveByForm(ctx context.Context, formID uint) ([]*domain.FormField, error)
}

// SubmitButton describes the submit control.
// A non-empty HTML replaces the generated control.
type SubmitButton struct {
	Label      string            `json:"label,omitempty"`
	Type       string            `json:"type,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	HTML       string            `json:"html,omitempty"`
}

// CSRF is the hidden token field emitted by post forms
type CSRF struct {
	Name  string
	Value string
}

// Options configure one bound form
type Options struct {
	Redirect     string
	Method       string
	SubmitButton *SubmitButton
	ButtonLabel  string
	// Attributes and AttributeTokens are merged over the generated defaults, Attributes first
	Attributes      map[string]string
	AttributeTokens []string
	StyleClass      string
	CSRF            *CSRF
	Assets          AssetRegistry
}

// Engine binds forms for rendering
type Engine struct {
	forms  FormLoader
	fields FieldLoader
	signer signer.Signer
	cfg    config.FormsConfig
}

func NewEngine(forms FormLoader, fields FieldLoader, s signer.Signer, cfg config.FormsConfig) *Engine {
	return &Engine{forms: forms, fields: fields, signer: s, cfg: cfg}
}

// Bind loads the form and prepares a view; the form's fields are loaded on first use
func (e *Engine) Bind(ctx context.Context, formID uint, opts Options, values map[string]string) (*FormView, error) {
	form, err := e.forms.FindByID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("load form %d: %w", formID, err)
	}

	if values == nil {
		values = map[string]string{}
	}
	if opts.Assets == nil {
		opts.Assets = NewAssetSet()
	}

	return &FormView{
		engine: e,
		form:   form,
		opts:   opts,
		values: values,
		button: e.submitButton(opts),
		newID:  uuid.NewString,
	}, nil
}

// submitButton merges the caller button over the default one, then applies ButtonLabel
func (e *Engine) submitButton(opts Options) SubmitButton {
	label := e.cfg.SubmitLabel
	if label == "" {
		label = "Send"
	}
	button := SubmitButton{
		Label:      label,
		Type:       "input",
		Attributes: map[string]string{"class": ""},
	}
	if custom := opts.SubmitButton; custom != nil {
		if custom.Label != "" {
			button.Label = custom.Label
		}
		if custom.Type != "" {
			button.Type = custom.Type
		}
		for k, v := range custom.Attributes {
			button.Attributes[k] = v
		}
		button.HTML = custom.HTML
	}
	if opts.ButtonLabel != "" {
		button.Label = opts.ButtonLabel
	}
	return button
}

// FormView is a form bound to options and values for a single render
type FormView struct {
	engine *Engine
	form   *domain.Form
	opts   Options
	values map[string]string
	button SubmitButton
	newID  func() string

	fields []*Field
	loaded bool
}

func (v *FormView) Form() *domain.Form { return v.form }

// Assets returns the registry that Close registers assets with
func (v *FormView) Assets() AssetRegistry { return v.opts.Assets }

// Fields returns the active fields bound to their redisplay values.
// The result is cached for the lifetime of the view.
func (v *FormView) Fields(ctx context.Context) ([]*Field, error) {
	if v.loaded {
		return v.fields, nil
	}

	defs, err := v.engine.fields.FindActiveByForm(ctx, v.form.ID)
	if err != nil {
		return nil, fmt.Errorf("load fields of form %d: %w", v.form.ID, err)
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Order < defs[j].Order })

	fields := make([]*Field, 0, len(defs))
	for _, def := range defs {
		// undecodable options render as the type defaults
		opts, _ := def.TypedOptions()
		fields = append(fields, &Field{Definition: def, Options: opts, Value: v.values[def.Name]})
	}

	v.fields = fields
	v.loaded = true
	return v.fields, nil
}

func (v *FormView) hasFieldOfType(ctx context.Context, t domain.FieldType) (bool, error) {
	fields, err := v.Fields(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range fields {
		if f.Type() == t {
			return true, nil
		}
	}
	return false, nil
}

// GenerateID derives the default element id from the form name
func GenerateID(name, suffix string) string {
	id := strings.TrimSpace(strings.ToLower(name))
	id = strings.NewReplacer(" ", "-", "_", "-").Replace(id)
	if suffix == "" {
		return id
	}
	return id + "-" + suffix
}

func (v *FormView) method() string {
	m := strings.ToLower(strings.TrimSpace(v.opts.Method))
	if m == "get" {
		return m
	}
	return "post"
}

// FormAttributes returns the merged attributes of the form tag
func (v *FormView) FormAttributes(ctx context.Context) (*Attrs, error) {
	attrs := NewAttrs(
		"action", "",
		"method", v.method(),
		"id", GenerateID(v.form.Name, v.engine.cfg.IDSuffix),
		"class", v.opts.StyleClass,
	)
	attrs.Merge(v.opts.Attributes)
	attrs.MergeTokens(v.opts.AttributeTokens)

	multipart, err := v.hasFieldOfType(ctx, domain.FieldTypeFile)
	if err != nil {
		return nil, err
	}
	if multipart {
		attrs.Set("enctype", "multipart/form-data")
	}
	return attrs, nil
}

// Open emits the form start tag and the hidden routing inputs
func (v *FormView) Open(ctx context.Context) (string, error) {
	attrs, err := v.FormAttributes(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<form" + attrs.String() + ">")
	if csrf := v.opts.CSRF; csrf != nil && csrf.Name != "" && v.method() == "post" {
		b.WriteString(hiddenInput(csrf.Name, csrf.Value))
	}
	b.WriteString(hiddenInput("form_id", strconv.FormatUint(uint64(v.form.ID), 10)))
	b.WriteString(hiddenInput("action", v.engine.cfg.SubmissionEndpoint))
	if v.opts.Redirect != "" {
		token, err := v.engine.signer.Sign(v.opts.Redirect)
		if err != nil {
			return "", fmt.Errorf("sign redirect: %w", err)
		}
		b.WriteString(hiddenInput("redirect", token))
	}
	return b.String(), nil
}

// RenderFields emits the markup of every bound field in order
func (v *FormView) RenderFields(ctx context.Context) (string, error) {
	fields, err := v.Fields(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Render())
	}
	return b.String(), nil
}

// Close emits the captcha, honeypot and submit control followed by the end tag
func (v *FormView) Close(ctx context.Context) (string, error) {
	cfg := v.engine.cfg
	var b strings.Builder

	if v.form.Recaptcha && cfg.RecaptchaPublicKey != "" {
		if cfg.RecaptchaVersion == "3" {
			b.WriteString(v.recaptchaV3())
		} else {
			b.WriteString("<div>")
			b.WriteString(`<script src="` + html.EscapeString(cfg.RecaptchaScriptURL) + `"></script>`)
			b.WriteString(`<div class="g-recaptcha" data-sitekey="` + html.EscapeString(cfg.RecaptchaPublicKey) + `"></div>`)
			b.WriteString("</div>")
		}
	}

	if hp := v.form.Honeypot(); hp != "" {
		attrs := NewAttrs(
			"type", "text",
			"name", hp,
			"value", v.values[hp],
			"class", fmt.Sprintf("wf-%s-%d", hp, v.form.ID),
		)
		b.WriteString("<input" + attrs.String() + ">")
	}

	hasList, err := v.hasFieldOfType(ctx, domain.FieldTypeList)
	if err != nil {
		return "", err
	}
	if hasList {
		v.opts.Assets.Register(cfg.ListAssetName)
	}

	b.WriteString(v.submitControl())
	b.WriteString("</form>")
	return b.String(), nil
}

// Render emits the whole form
func (v *FormView) Render(ctx context.Context) (string, error) {
	var b strings.Builder
	for _, part := range []func(context.Context) (string, error){v.Open, v.RenderFields, v.Close} {
		s, err := part(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (v *FormView) recaptchaV3() string {
	id := "wf-g-recaptcha-token-" + v.newID()
	var b strings.Builder
	b.WriteString(hiddenInput("g-recaptcha-response", "", "id", id))
	b.WriteString("<script>FormRecaptcha.callbacks.push(function(token){")
	b.WriteString("document.getElementById(" + strconv.Quote(id) + ").setAttribute('value', token);")
	b.WriteString("})</script>")
	return b.String()
}

func (v *FormView) submitControl() string {
	if v.button.HTML != "" {
		return sanitizeButtonMarkup(v.button.HTML)
	}

	if v.button.Type == "button" {
		attrs := NewAttrs()
		attrs.Merge(v.button.Attributes)
		attrs.Set("type", "submit")
		return "<button" + attrs.String() + ">" + html.EscapeString(v.button.Label) + "</button>"
	}

	attrs := NewAttrs("type", "submit", "name", "wf-submit", "value", v.button.Label)
	attrs.Merge(v.button.Attributes)
	return "<input" + attrs.String() + ">"
}
