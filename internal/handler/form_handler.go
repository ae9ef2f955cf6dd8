package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"form-service/internal/dto"
	"form-service/internal/response"
	"form-service/internal/service"
)

type FormHandler struct {
	formService   service.FormService
	defaultSiteID uint
}

func NewFormHandler(formService service.FormService, defaultSiteID uint) *FormHandler {
	return &FormHandler{
		formService:   formService,
		defaultSiteID: defaultSiteID,
	}
}

// ListForms godoc
// @Summary      List forms
// @Description  Forms the caller may edit, oldest first
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.FormSummary}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	forms, err := h.formService.ListForms(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, forms)
}

// NewForm godoc
// @Summary      New form view
// @Description  Empty form plus the registered field types
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.EditorResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /forms/new [get]
func (h *FormHandler) NewForm(c *gin.Context) {
	view, err := h.formService.NewForm(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// GetForm godoc
// @Summary      Edit form view
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	formID := parseID(c.Param("id"))
	if formID == 0 {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Form not found")
		return
	}

	view, err := h.formService.GetForm(c.Request.Context(), formID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, view)
}

// GetSettings godoc
// @Summary      Form settings as JSON
// @Description  The form with every stored field, active or not
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        form_id query int true "Form ID"
// @Success      200 {object} dto.FormResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/settings [get]
func (h *FormHandler) GetSettings(c *gin.Context) {
	data, err := h.formService.GetSettings(c.Request.Context(), parseID(c.Query("form_id")))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// SaveForm godoc
// @Summary      Save a form with its fields
// @Description  Creates or updates the form, then reconciles the field list.
// @Description  Fields that fail validation are left unchanged and reported in errors.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Site-Id header int false "Site of a new form"
// @Param        request body dto.SaveFormRequest true "Form and fields"
// @Success      200 {object} response.Envelope
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms [post]
func (h *FormHandler) SaveForm(c *gin.Context) {
	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.formService.SaveForm(c.Request.Context(), siteID(c, h.defaultSiteID), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	env := response.Envelope{
		Success: true,
		Message: "Form saved",
		FormID:  result.FormID,
	}
	if len(result.FieldErrors) > 0 {
		env.Errors = result.FieldErrors
	}
	response.SendEnvelope(c, http.StatusOK, env)
}
