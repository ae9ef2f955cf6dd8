package handler

import (
	"crypto/subtle"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"form-service/internal/dto"
	"form-service/internal/render"
	"form-service/internal/response"
	"form-service/internal/service"
)

// AssetsHeader lists the client-side assets a rendered form needs
const AssetsHeader = "X-Form-Assets"

// CSRFCookie carries the double-submit token matched against CSRFInput on send
const (
	CSRFCookie = "form_csrf"
	CSRFInput  = "csrf_token"
)

const maxSubmissionMemory = 8 << 20

// routing inputs emitted by the form start tag; never stored as values
var reservedInputs = map[string]struct{}{
	"form_id":  {},
	"action":   {},
	"redirect": {},
	CSRFInput:  {},
}

// PublicHandler serves the unauthenticated render and send endpoints
type PublicHandler struct {
	engine            *render.Engine
	submissionService service.SubmissionService
	csrfEnabled       bool
}

func NewPublicHandler(engine *render.Engine, submissionService service.SubmissionService, csrfEnabled bool) *PublicHandler {
	return &PublicHandler{
		engine:            engine,
		submissionService: submissionService,
		csrfEnabled:       csrfEnabled,
	}
}

// RenderForm godoc
// @Summary      Render a form
// @Description  HTML of the form start tag, its active fields and the closing controls
// @Tags         public
// @Produce      html
// @Param        id path int true "Form ID"
// @Param        redirect query string false "Local path to open after a successful submission"
// @Param        method query string false "get or post"
// @Param        button_label query string false "Submit label override"
// @Param        button_type query string false "input or button"
// @Param        class query string false "Extra form class"
// @Param        attributes query string false "Space separated key=value attributes; event handlers and submission overrides are dropped"
// @Success      200 {string} string "form markup"
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/{id}/render [get]
func (h *PublicHandler) RenderForm(c *gin.Context) {
	formID := parseID(c.Param("id"))
	if formID == 0 {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Form not found")
		return
	}

	opts := render.Options{
		Redirect:        localRedirect(c.Query("redirect")),
		Method:          c.Query("method"),
		ButtonLabel:     c.Query("button_label"),
		StyleClass:      c.Query("class"),
		AttributeTokens: render.ParseAttributeString(c.Query("attributes")),
	}
	if buttonType := c.Query("button_type"); buttonType != "" {
		opts.SubmitButton = &render.SubmitButton{Type: buttonType}
	}
	if h.csrfEnabled {
		opts.CSRF = &render.CSRF{Name: CSRFInput, Value: h.issueCSRFToken(c)}
	}

	ctx := c.Request.Context()
	view, err := h.engine.Bind(ctx, formID, opts, c.QueryMap("values"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !view.Form().Active {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Form not found")
		return
	}

	markup, err := view.Render(ctx)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if names := view.Assets().Names(); len(names) > 0 {
		c.Header(AssetsHeader, strings.Join(names, ","))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

// Send godoc
// @Summary      Submit a form
// @Description  Validates and records a submission. A verified redirect answers 302.
// @Tags         public
// @Accept       x-www-form-urlencoded
// @Accept       multipart/form-data
// @Produce      json
// @Param        form_id formData int true "Form ID"
// @Param        redirect formData string false "Signed redirect token"
// @Param        csrf_token formData string false "Double-submit token when CSRF protection is enabled"
// @Success      200 {object} response.Envelope
// @Success      302 "Redirect to the signed target"
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/send [post]
func (h *PublicHandler) Send(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxSubmissionMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form data")
		return
	}

	if h.csrfEnabled && !h.validCSRF(c) {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Invalid CSRF token")
		return
	}

	req := &dto.SubmitRequest{
		FormID:   parseID(c.Request.PostForm.Get("form_id")),
		Redirect: c.Request.PostForm.Get("redirect"),
		Values:   submittedValues(c.Request.PostForm),
	}
	if c.Request.MultipartForm != nil {
		req.Files = uploadedFiles(c.Request.MultipartForm.File)
	}

	result, err := h.submissionService.Submit(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if result.Redirect != "" {
		c.Redirect(http.StatusFound, result.Redirect)
		return
	}
	response.SendEnvelope(c, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Thank you for your submission",
		FormID:  req.FormID,
	})
}

// submittedValues flattens posted values by field name; "name[]" inputs are comma joined
func submittedValues(form map[string][]string) map[string]string {
	values := make(map[string]string, len(form))
	for key, vals := range form {
		if _, ok := reservedInputs[key]; ok {
			continue
		}
		values[strings.TrimSuffix(key, "[]")] = strings.Join(vals, ",")
	}
	return values
}

// uploadedFiles lists the client file names of each uploaded part by field name
func uploadedFiles(parts map[string][]*multipart.FileHeader) map[string][]string {
	files := make(map[string][]string, len(parts))
	for key, headers := range parts {
		name := strings.TrimSuffix(key, "[]")
		for _, header := range headers {
			if header.Filename != "" {
				files[name] = append(files[name], header.Filename)
			}
		}
	}
	return files
}

// localRedirect keeps same-site paths only; anything else renders without a redirect
func localRedirect(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return raw
}

func (h *PublicHandler) issueCSRFToken(c *gin.Context) string {
	token, err := c.Cookie(CSRFCookie)
	if err != nil || token == "" {
		token = uuid.NewString()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFCookie, token, 0, "/", "", c.Request.TLS != nil, true)
	return token
}

func (h *PublicHandler) validCSRF(c *gin.Context) bool {
	cookie, err := c.Cookie(CSRFCookie)
	if err != nil || cookie == "" {
		return false
	}
	posted := c.Request.PostForm.Get(CSRFInput)
	return subtle.ConstantTimeCompare([]byte(cookie), []byte(posted)) == 1
}
