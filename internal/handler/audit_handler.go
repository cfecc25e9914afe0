package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billdesk/internal/csvexport"
	"billdesk/internal/domain"
	"billdesk/internal/middleware"
	"billdesk/internal/service"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func auditFilters(c *gin.Context) (domain.AuditFilters, error) {
	filters := domain.AuditFilters{
		Action: domain.AuditAction(c.Query("action")),
	}
	if raw := c.Query("reportId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid reportId")
		}
		filters.ReportID = &id
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid userId")
		}
		filters.UserID = &id
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid startDate")
		}
		filters.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid endDate")
		}
		filters.EndDate = &t
	}
	return filters, nil
}

// parseDate accepts RFC3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// List handles GET /api/audit
// @Summary List audit log entries
// @Tags audit
// @Produce json
// @Param reportId query string false "Filter by report UUID"
// @Param userId query string false "Filter by acting user UUID"
// @Param action query string false "Filter by action"
// @Param startDate query string false "Start of time range (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "End of time range (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} APIResponse "Paginated audit entries"
// @Security BearerAuth
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	filters, err := auditFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	filters.Page, filters.Limit = pageParams(c)

	entries, total, err := h.auditService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, NewPagMeta(filters.Page, filters.Limit, total))
}

// Stats handles GET /api/audit/stats/overview
// @Summary Audit trail statistics
// @Tags audit
// @Produce json
// @Success 200 {object} APIResponse "Totals, per-action counts, top users, recent activity"
// @Security BearerAuth
// @Router /audit/stats/overview [get]
func (h *AuditHandler) Stats(c *gin.Context) {
	stats, err := h.auditService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// ExportCSV handles GET /api/audit/export/csv
// @Summary Export the audit trail as CSV
// @Description Streams a UTF-8 BOM prefixed CSV honoring the same filters as the list endpoint.
// @Tags audit
// @Produce text/csv
// @Param reportId query string false "Filter by report UUID"
// @Param userId query string false "Filter by acting user UUID"
// @Param action query string false "Filter by action"
// @Param startDate query string false "Start of time range"
// @Param endDate query string false "End of time range"
// @Success 200 {file} binary "CSV file"
// @Security BearerAuth
// @Router /audit/export/csv [get]
func (h *AuditHandler) ExportCSV(c *gin.Context) {
	filters, err := auditFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, err := h.auditService.Export(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="audit_logs.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err == nil {
		w.WriteEntries(entries)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] csv export: %v", requestID, err)
	}
}

// Get handles GET /api/audit/:logId
// @Summary Get a single audit entry
// @Tags audit
// @Produce json
// @Param logId path string true "Log ID (public id)"
// @Success 200 {object} APIResponse "Audit entry"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /audit/{logId} [get]
func (h *AuditHandler) Get(c *gin.Context) {
	entry, err := h.auditService.Get(c.Request.Context(), c.Param("logId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}
