package handler

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"uece-planner/internal/api/middleware"
	"uece-planner/internal/render"
	"uece-planner/internal/service"
	"uece-planner/pkg/response"
)

// ExportHandler serves the rendered plan documents.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export downloads the plan in the requested format.
// @Summary Exporta o plano
// @Description Valida o plano antes de gerar. Com campos pendentes responde 422 com as violações.
// @Tags Exportação
// @Produce application/octet-stream
// @Param format path string true "docx | pdf | html | xlsx | ics"
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response{data=dto.ValidationResponse}
// @Failure 503 {object} response.Response
// @Router /export/{format} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := render.Format(c.Param("format"))
	c.Set(middleware.ExportFormatKey, string(format))

	out, err := h.exportSvc.Export(c.Request.Context(), format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", contentDisposition(out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Buffer.Bytes())
}

// Preview returns the document the renderers would receive.
// @Summary Pré-visualiza o documento
// @Tags Exportação
// @Produce json
// @Success 200 {object} form.Document
// @Failure 422 {object} response.Response{data=dto.ValidationResponse}
// @Router /export/preview [post]
func (h *ExportHandler) Preview(c *gin.Context) {
	doc, err := h.exportSvc.Preview(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.OK(c, doc)
}

// Formats lists the available export formats.
// @Summary Formatos de exportação
// @Tags Exportação
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /export/formats [get]
func (h *ExportHandler) Formats(c *gin.Context) {
	response.OK(c, gin.H{"list": h.exportSvc.Formats()})
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	var vf *service.ValidationFailure
	switch {
	case errors.As(err, &vf):
		response.Unprocessable(c, 21001, service.MsgRequiredMissing, service.ToValidationResponse(vf.Result))
	case errors.Is(err, service.ErrUnsupportedFormat):
		response.BadRequest(c, 22002, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		response.ServiceUnavailable(c, 22001, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 50000, service.MsgExportFailed)
	default:
		response.InternalError(c)
	}
}

// contentDisposition encodes filename per RFC 2231/5987, so spaces become
// %20 and non-ASCII names survive.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
