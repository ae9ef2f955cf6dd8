package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"form-service/internal/dto"
	"form-service/internal/response"
	"form-service/internal/service"
)

type EntryHandler struct {
	entryService service.EntryService
}

func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// GetEntries godoc
// @Summary      List form entries
// @Description  Stored submissions, newest first. offset is only applied together with limit.
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        offset query int false "Entries to skip"
// @Param        limit query int false "Maximum entries"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EntryResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/{id}/entries [get]
func (h *EntryHandler) GetEntries(c *gin.Context) {
	formID := parseID(c.Param("id"))
	if formID == 0 {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Form not found")
		return
	}

	var query dto.EntryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid paging parameters")
		return
	}

	entries, err := h.entryService.GetEntries(c.Request.Context(), formID, query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entries)
}

// GetEntry godoc
// @Summary      Get one form entry
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Form ID"
// @Param        entryId path int true "Entry ID"
// @Success      200 {object} response.SuccessResponse{data=dto.EntryResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/{id}/entries/{entryId} [get]
func (h *EntryHandler) GetEntry(c *gin.Context) {
	formID := parseID(c.Param("id"))
	entryID := parseID(c.Param("entryId"))
	if formID == 0 || entryID == 0 {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Entry not found")
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), formID, entryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entry)
}
