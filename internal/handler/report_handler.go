package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/domain"
	"billdesk/internal/middleware"
	"billdesk/internal/service"
	"billdesk/internal/xlsxexport"
)

// ReportHandler handles report lifecycle endpoints.
type ReportHandler struct {
	reportService service.ReportService
	fileService   service.FileService
	userService   service.UserService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, fileService service.FileService, userService service.UserService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		fileService:   fileService,
		userService:   userService,
	}
}

// List handles GET /api/reports and GET /api/admin/reports
// @Summary List reports with filters
// @Tags reports
// @Produce json
// @Param search query string false "Search title and description"
// @Param status query string false "Filter by status"
// @Param approvalStatus query string false "Filter by approval status"
// @Param category query string false "Filter by category"
// @Param priority query string false "Filter by priority"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} APIResponse "Paginated reports"
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.ReportFilters{
		Search:         c.Query("search"),
		Status:         domain.EntityStatus(c.Query("status")),
		ApprovalStatus: domain.ApprovalStatus(c.Query("approvalStatus")),
		Category:       domain.Category(c.Query("category")),
		Priority:       domain.Priority(c.Query("priority")),
		Page:           page,
		Limit:          limit,
	}

	reports, total, err := h.reportService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reports, NewPagMeta(page, limit, total))
}

// Create handles POST /api/reports
// @Summary Create a report
// @Description Manager-created reports start pending; admin-created reports are auto-approved.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body service.CreateReportInput true "Report details"
// @Success 201 {object} APIResponse "Created report"
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var input service.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), claims, input, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, report)
}

// PendingApproval handles GET /api/reports/pending-approval
// @Summary List reports awaiting approval
// @Tags reports
// @Produce json
// @Success 200 {object} APIResponse "Paginated pending reports"
// @Security BearerAuth
// @Router /reports/pending-approval [get]
func (h *ReportHandler) PendingApproval(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.ReportFilters{
		ApprovalStatus: domain.ApprovalPending,
		DeletionState:  domain.DeletionNone,
		Page:           page,
		Limit:          limit,
	}

	reports, total, err := h.reportService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reports, NewPagMeta(page, limit, total))
}

// PendingDeletion handles GET /api/reports/pending-deletion
// @Summary List reports with open deletion requests
// @Tags reports
// @Produce json
// @Success 200 {object} APIResponse "Paginated deletion-requested reports"
// @Security BearerAuth
// @Router /reports/pending-deletion [get]
func (h *ReportHandler) PendingDeletion(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.ReportFilters{
		DeletionState: domain.DeletionRequested,
		Page:          page,
		Limit:         limit,
	}

	reports, total, err := h.reportService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reports, NewPagMeta(page, limit, total))
}

// MyReports handles GET /api/reports/my-reports
// @Summary List the caller's visible reports
// @Description Approved reports without an open deletion request where the caller is creator or assigned.
// @Tags reports
// @Produce json
// @Success 200 {object} APIResponse "Paginated reports"
// @Security BearerAuth
// @Router /reports/my-reports [get]
func (h *ReportHandler) MyReports(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	reports, total, err := h.reportService.ListMine(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reports, NewPagMeta(page, limit, total))
}

// Assignable handles GET /api/reports/users/assignable
// @Summary List users that can be assigned to reports
// @Tags reports
// @Produce json
// @Success 200 {object} APIResponse "Active plain users"
// @Security BearerAuth
// @Router /reports/users/assignable [get]
func (h *ReportHandler) Assignable(c *gin.Context) {
	users, err := h.userService.ListAssignable(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, users)
}

// Get handles GET /api/reports/:id
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "Report"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Update handles PUT /api/reports/:id and PUT /api/admin/reports/:id
// @Summary Update a report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Param request body service.UpdateReportInput true "Fields to update"
// @Success 200 {object} APIResponse "Updated report"
// @Security BearerAuth
// @Router /reports/{id} [put]
func (h *ReportHandler) Update(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var input service.UpdateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), claims, c.Param("id"), input, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Delete handles DELETE /api/reports/:id and DELETE /api/admin/reports/:id
// @Summary Request deletion of a report
// @Description Opens a deletion request for admin review; the record is not removed yet.
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "Deletion requested"
// @Failure 409 {object} APIResponse "Deletion already requested"
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	if err := h.reportService.RequestDeletion(c.Request.Context(), claims, c.Param("id"), requestMeta(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "deletion requested"})
}

// Approve handles PUT /api/reports/:id/approve
// @Summary Approve a pending report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "Approved report"
// @Failure 409 {object} APIResponse "Report is not pending"
// @Security BearerAuth
// @Router /reports/{id}/approve [put]
func (h *ReportHandler) Approve(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.Approve(c.Request.Context(), claims, c.Param("id"), requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject handles PUT /api/reports/:id/reject
// @Summary Reject a pending report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Param request body rejectRequest true "Rejection reason"
// @Success 200 {object} APIResponse "Rejected report"
// @Failure 409 {object} APIResponse "Report is not pending"
// @Security BearerAuth
// @Router /reports/{id}/reject [put]
func (h *ReportHandler) Reject(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.Reject(c.Request.Context(), claims, c.Param("id"), req.Reason, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ApproveDeletion handles PUT /api/reports/:id/approve-deletion
// @Summary Approve a deletion request
// @Description Removes the report's files from storage and deletes the record.
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "Report deleted"
// @Failure 409 {object} APIResponse "No open deletion request"
// @Security BearerAuth
// @Router /reports/{id}/approve-deletion [put]
func (h *ReportHandler) ApproveDeletion(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	if err := h.reportService.ApproveDeletion(c.Request.Context(), claims, c.Param("id"), requestMeta(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "report deleted"})
}

// RejectDeletion handles PUT /api/reports/:id/reject-deletion
// @Summary Reject a deletion request
// @Description Clears the request and restores the report to approved.
// @Tags reports
// @Produce json
// @Param id path string true "Report ID (UUID or public id)"
// @Success 200 {object} APIResponse "Restored report"
// @Failure 409 {object} APIResponse "No open deletion request"
// @Security BearerAuth
// @Router /reports/{id}/reject-deletion [put]
func (h *ReportHandler) RejectDeletion(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.RejectDeletion(c.Request.Context(), claims, c.Param("id"), requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// DownloadFile handles GET /api/reports/:id/files/:fileId/download
// @Summary Download a report attachment
// @Tags reports
// @Produce octet-stream
// @Param id path string true "Report ID (UUID or public id)"
// @Param fileId path string true "File ID (UUID or public id)"
// @Success 200 {file} binary "File bytes"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /reports/{id}/files/{fileId}/download [get]
func (h *ReportHandler) DownloadFile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	// Ownership is checked on the metadata alone so a wrong-owner request
	// never opens the stream, bumps download_count, or leaves an audit entry.
	fm, err := h.fileService.Get(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if fm.OwnerType != domain.FileOwnerReport || fm.OwnerID != report.ID {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
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
		// Headers are gone; nothing left to do but log.
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] streaming file %s: %v", requestID, result.Meta.FileID, err)
	}
}

// Export handles GET /api/reports/export
// @Summary Export reports as an XLSX workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "XLSX workbook"
// @Security BearerAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	reports, _, err := h.reportService.List(c.Request.Context(), domain.ReportFilters{
		Search:         c.Query("search"),
		Status:         domain.EntityStatus(c.Query("status")),
		ApprovalStatus: domain.ApprovalStatus(c.Query("approvalStatus")),
		Category:       domain.Category(c.Query("category")),
		Page:           1,
		Limit:          100,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", xlsxexport.BuildFilename()))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := xlsxexport.WriteReports(c.Writer, reports); err != nil {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] xlsx export: %v", requestID, err)
	}
}
