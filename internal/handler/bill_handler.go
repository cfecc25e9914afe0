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
)

// BillHandler handles bill lifecycle endpoints.
type BillHandler struct {
	billService service.BillService
	fileService service.FileService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService, fileService service.FileService) *BillHandler {
	return &BillHandler{billService: billService, fileService: fileService}
}

// List handles GET /api/bills
// @Summary List bills with filters
// @Tags bills
// @Produce json
// @Param search query string false "Search title and description"
// @Param status query string false "Filter by status"
// @Param approvalStatus query string false "Filter by approval status"
// @Param category query string false "Filter by category"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} APIResponse "Paginated bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.BillFilters{
		Search:         c.Query("search"),
		Status:         domain.EntityStatus(c.Query("status")),
		ApprovalStatus: domain.ApprovalStatus(c.Query("approvalStatus")),
		Category:       domain.Category(c.Query("category")),
		Page:           page,
		Limit:          limit,
	}

	bills, total, err := h.billService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, NewPagMeta(page, limit, total))
}

// Create handles POST /api/bills
// @Summary Create a bill
// @Description Admin-created bills are auto-approved; all others start pending.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body service.CreateBillInput true "Bill details"
// @Success 201 {object} APIResponse "Created bill"
// @Security BearerAuth
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), claims, input, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, bill)
}

// MyBills handles GET /api/bills/my-bills
// @Summary List the caller's bills
// @Description Bills the caller created or is assigned to, regardless of approval state.
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse "Paginated bills"
// @Security BearerAuth
// @Router /bills/my-bills [get]
func (h *BillHandler) MyBills(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	bills, total, err := h.billService.ListMine(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, NewPagMeta(page, limit, total))
}

// Analytics handles GET /api/bills/analytics
// @Summary Bill analytics for the caller
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse "Totals, breakdowns and monthly trend"
// @Security BearerAuth
// @Router /bills/analytics [get]
func (h *BillHandler) Analytics(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	analytics, err := h.billService.Analytics(c.Request.Context(), claims.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, analytics)
}

// PendingApproval handles GET /api/bills/pending-approval
// @Summary List bills awaiting approval
// @Tags bills
// @Produce json
// @Success 200 {object} APIResponse "Paginated pending bills"
// @Security BearerAuth
// @Router /bills/pending-approval [get]
func (h *BillHandler) PendingApproval(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.BillFilters{
		ApprovalStatus: domain.ApprovalPending,
		Page:           page,
		Limit:          limit,
	}

	bills, total, err := h.billService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, bills, NewPagMeta(page, limit, total))
}

// Get handles GET /api/bills/:id
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Success 200 {object} APIResponse "Bill"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// UpdateStatus handles PATCH /api/bills/:id/status
// @Summary Update a bill's status
// @Description Marking a bill paid merges the supplied payment details into its record.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Param request body service.UpdateBillStatusInput true "New status with optional payment details"
// @Success 200 {object} APIResponse "Updated bill"
// @Security BearerAuth
// @Router /bills/{id}/status [patch]
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var input service.UpdateBillStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.UpdateStatus(c.Request.Context(), claims, c.Param("id"), input, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Approve handles PUT /api/bills/:id/approve
// @Summary Approve a pending bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Success 200 {object} APIResponse "Approved bill"
// @Failure 409 {object} APIResponse "Bill is not pending"
// @Security BearerAuth
// @Router /bills/{id}/approve [put]
func (h *BillHandler) Approve(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	bill, err := h.billService.Approve(c.Request.Context(), claims, c.Param("id"), requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// Reject handles PUT /api/bills/:id/reject
// @Summary Reject a pending bill
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Param request body rejectRequest true "Rejection reason"
// @Success 200 {object} APIResponse "Rejected bill"
// @Failure 409 {object} APIResponse "Bill is not pending"
// @Security BearerAuth
// @Router /bills/{id}/reject [put]
func (h *BillHandler) Reject(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bill, err := h.billService.Reject(c.Request.Context(), claims, c.Param("id"), req.Reason, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bill)
}

// UploadFiles handles POST /api/bills/:id/files
// @Summary Attach files to a bill
// @Description Multipart upload; at most 5 files, 10MB each, allow-listed types only.
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Param files formData file true "Files to upload"
// @Success 201 {object} APIResponse "Stored file metadata"
// @Failure 413 {object} APIResponse "File exceeds the size limit"
// @Security BearerAuth
// @Router /bills/{id}/files [post]
func (h *BillHandler) UploadFiles(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), claims, c.Param("id"))
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

	saved, err := h.fileService.Upload(c.Request.Context(), claims, domain.FileOwnerBill, bill.ID, items, requestMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// DownloadFile handles GET /api/bills/:id/files/:fileId/download
// @Summary Download a bill attachment
// @Tags bills
// @Produce octet-stream
// @Param id path string true "Bill ID (UUID or public id)"
// @Param fileId path string true "File ID (UUID or public id)"
// @Success 200 {file} binary "File bytes"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /bills/{id}/files/{fileId}/download [get]
func (h *BillHandler) DownloadFile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), claims, c.Param("id"))
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
	if fm.OwnerType != domain.FileOwnerBill || fm.OwnerID != bill.ID {
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
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] streaming file %s: %v", requestID, result.Meta.FileID, err)
	}
}

// Delete handles DELETE /api/bills/:id
// @Summary Delete a bill
// @Description Removes the bill and its stored files. Only the creator or an admin may delete.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID (UUID or public id)"
// @Success 200 {object} APIResponse "Bill deleted"
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}

	if err := h.billService.Delete(c.Request.Context(), claims, c.Param("id"), requestMeta(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "bill deleted"})
}
