package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"invoicelens/internal/domain"
	"invoicelens/internal/export"
	"invoicelens/internal/service"
)

// ExtractionHandler handles document upload and extraction endpoints.
type ExtractionHandler struct {
	documentService service.DocumentService
	maxUploadBytes  int64
	logger          logrus.FieldLogger
}

// NewExtractionHandler creates a new ExtractionHandler. Uploads larger than
// maxUploadBytes are rejected; zero disables the cap.
func NewExtractionHandler(documentService service.DocumentService, maxUploadBytes int64, logger logrus.FieldLogger) *ExtractionHandler {
	return &ExtractionHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Process handles POST /process and POST /api/extract.
// @Summary Extract invoice data from an image
// @Description Split an uploaded image into pages and extract line items, totals and confidence per page
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "Invoice image (JPEG, PNG, GIF, BMP, TIFF or WebP)"
// @Param format query string false "Response format" Enums(json, csv, xlsx)
// @Success 200 {object} domain.DocumentResult "Extraction result; failed pages carry an error"
// @Failure 400 {object} APIResponse "Missing file, unreadable image or unknown format"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Internal error"
// @Router /process [post]
func (h *ExtractionHandler) Process(c *gin.Context) {
	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			HandleError(c, h.logger, domain.ErrFileTooLarge)
			return
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, h.logger, fmt.Errorf("reading upload: %w", err))
		return
	}

	result, err := h.documentService.Process(c.Request.Context(), service.ProcessInput{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	switch format {
	case domain.ExportFormatCSV:
		h.respondAttachment(c, result, format, export.WriteCSV)
	case domain.ExportFormatXLSX:
		h.respondAttachment(c, result, format, export.WriteXLSX)
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (h *ExtractionHandler) respondAttachment(
	c *gin.Context,
	result *domain.DocumentResult,
	format domain.ExportFormat,
	render func(io.Writer, *domain.DocumentResult) error,
) {
	var buf bytes.Buffer
	if err := render(&buf, result); err != nil {
		HandleError(c, h.logger, fmt.Errorf("rendering %s export: %w", format, err))
		return
	}
	filename := export.BuildFilename(result.DocumentID, string(format))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, domain.ExportContentTypes[format], buf.Bytes())
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
