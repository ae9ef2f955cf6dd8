package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"form-service/internal/dto"
	"form-service/internal/response"
	"form-service/internal/service"
)

// maxImportSize caps the uploaded fields document
const maxImportSize = 2 << 20

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Export godoc
// @Summary      Export form fields
// @Description  Writes every field of the form into a JSON artifact and returns its name
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ExportRequest true "Form selector"
// @Success      200 {object} dto.ExportResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse "Could not create JSON"
// @Router       /forms/export [post]
func (h *TransferHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.transferService.Export(c.Request.Context(), req.FormID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Import godoc
// @Summary      Import form fields
// @Description  Adds every valid entry of an exported fields document to the form
// @Tags         transfer
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        form_id formData int true "Form ID"
// @Param        fields_file formData file true "Fields JSON document"
// @Success      200 {object} response.Envelope{data=dto.ImportResult}
// @Failure      400 {object} response.ErrorResponse "Empty or invalid Json"
// @Failure      404 {object} response.ErrorResponse
// @Router       /forms/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	formID := parseID(c.PostForm("form_id"))

	document, err := readUpload(c, "fields_file")
	if err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Empty or invalid Json")
		return
	}

	result, err := h.transferService.Import(c.Request.Context(), formID, document)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	env := response.Envelope{
		Success: len(result.Errors) == 0,
		Message: fmt.Sprintf("%d fields imported", result.Imported),
		FormID:  formID,
		Data:    result,
	}
	if len(result.Errors) > 0 {
		env.Errors = result.Errors
	}
	response.SendEnvelope(c, http.StatusOK, env)
}

// Download godoc
// @Summary      Download an exported artifact
// @Tags         transfer
// @Produce      json
// @Security     BearerAuth
// @Param        filename query string true "Artifact name returned by export"
// @Success      200 {file} file
// @Failure      404 {object} response.ErrorResponse "Invalid json name"
// @Router       /forms/download [get]
func (h *TransferHandler) Download(c *gin.Context) {
	handle := c.Query("filename")

	rc, err := h.transferService.Download(c.Request.Context(), handle)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "application/json", rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s.json"`, handle),
	})
}

func readUpload(c *gin.Context, name string) ([]byte, error) {
	header, err := c.FormFile(name)
	if err != nil {
		return nil, err
	}
	if header.Size > maxImportSize {
		return nil, fmt.Errorf("upload %s exceeds %d bytes", name, maxImportSize)
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImportSize))
}
