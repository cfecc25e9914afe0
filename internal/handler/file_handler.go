package handler

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/domain"
	"billdesk/internal/middleware"
	"billdesk/internal/service"
)

// FileHandler handles standalone file metadata and upload endpoints.
type FileHandler struct {
	fileService   service.FileService
	reportService service.ReportService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService, reportService service.ReportService) *FileHandler {
	return &FileHandler{fileService: fileService, reportService: reportService}
}

// multipartItems converts the request's multipart files into upload items.
// The returned cleanup closes every opened part and must always be called.
func multipartItems(c *gin.Context) ([]service.UploadItem, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, fmt.Errorf("reading multipart form: %w", err)
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return nil, func() {}, fmt.Errorf("no files in request")
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	items := make([]service.UploadItem, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("opening %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		items = append(items, service.UploadItem{
			OriginalName: fh.Filename,
			MimeType:     fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Body:         f,
		})
	}
	return items, cleanup, nil
}

// UploadToReport handles POST /api/files/upload/:reportId
// @Summary Attach files to a report
// @Description Multipart upload; at most 5 files, 10MB each, allow-listed types only.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param reportId path string true "Report ID (UUID or public id)"
// @Param files formData file true "Files to upload"
// @Success 201 {object} APIResponse "Stored file metadata"
// @Failure 413 {object} APIResponse "File exceeds the size limit"
// @Security BearerAuth
// @Router /files/upload/{reportId} [post]
func (h *FileHandler) UploadToReport(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), claims, c.Param("reportId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	items, cleanup, err := multipartItems(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	defer cleanup()

	saved, err := h.fileService.Upload(c.Request.Context(), claims, domain.FileOwnerReport, report.ID, items, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// ListByReport handles GET /api/files/report/:reportId
// @Summary List a report's files
// @Tags files
// @Produce json
// @Param reportId path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "File metadata list"
// @Security BearerAuth
// @Router /files/report/{reportId} [get]
func (h *FileHandler) ListByReport(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), claims, c.Param("reportId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	files, err := h.fileService.ListByOwner(c.Request.Context(), domain.FileOwnerReport, report.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, files)
}

// Get handles GET /api/files/:fileId
// @Summary Get file metadata
// @Tags files
// @Produce json
// @Param fileId path string true "File ID (UUID or public id)"
// @Success 200 {object} APIResponse "File metadata"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /files/{fileId} [get]
func (h *FileHandler) Get(c *gin.Context) {
	fm, err := h.fileService.Get(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, fm)
}

// Download handles GET /api/files/:fileId/download
// @Summary Download a file
// @Tags files
// @Produce octet-stream
// @Param fileId path string true "File ID (UUID or public id)"
// @Success 200 {file} binary "File bytes"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /files/{fileId}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	result, err := h.fileService.Download(c.Request.Context(), claims, c.Param("fileId"), requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer result.Body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Meta.OriginalName))
	c.Header("Content-Type", result.Meta.MimeType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, result.Body); err != nil {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] streaming file %s: %v", requestID, result.Meta.FileID, err)
	}
}

// Delete handles DELETE /api/files/:fileId
// @Summary Delete a file
// @Description Removes the stored bytes and the metadata record.
// @Tags files
// @Produce json
// @Param fileId path string true "File ID (UUID or public id)"
// @Success 200 {object} APIResponse "File deleted"
// @Security BearerAuth
// @Router /files/{fileId} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), claims, c.Param("fileId"), requestMeta(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "file deleted"})
}
