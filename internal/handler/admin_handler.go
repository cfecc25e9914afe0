package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billdesk/internal/domain"
	"billdesk/internal/service"
)

// AdminHandler handles admin-only user management and dashboard endpoints.
type AdminHandler struct {
	userService  service.UserService
	statsService service.StatsService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService service.UserService, statsService service.StatsService) *AdminHandler {
	return &AdminHandler{userService: userService, statsService: statsService}
}

// Stats handles GET /api/admin/stats
// @Summary Admin dashboard statistics
// @Tags admin
// @Produce json
// @Success 200 {object} APIResponse "User, report, bill and trend aggregates"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.AdminStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// Analytics handles GET /api/admin/analytics
// @Summary Admin analytics over a rolling period
// @Tags admin
// @Produce json
// @Param period query int false "Period in days" default(30)
// @Success 200 {object} APIResponse "Per-day counts and breakdowns"
// @Security BearerAuth
// @Router /admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	period := queryInt(c, "period", 30)
	analytics, err := h.statsService.Analytics(c.Request.Context(), period)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, analytics)
}

// ListUsers handles GET /api/admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Param role query string false "Filter by role"
// @Param search query string false "Search name, email, registration number"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} APIResponse "Paginated users"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	filters := domain.UserFilters{
		Role:   domain.UserRole(c.Query("role")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, users, NewPagMeta(page, limit, total))
}

type changeRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required"`
}

// ChangeRole handles PUT /api/admin/users/:id/role
// @Summary Change a user's role
// @Description Promoting a second user to admin fails; the system has exactly one admin.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body changeRoleRequest true "New role"
// @Success 200 {object} APIResponse "Role changed"
// @Failure 400 {object} APIResponse "Invalid role or admin already exists"
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.userService.ChangeRole(c.Request.Context(), claims.UserID, targetID, req.Role); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "role updated"})
}

type changeStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ChangeStatus handles PUT /api/admin/users/:id/status
// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body changeStatusRequest true "New status"
// @Success 200 {object} APIResponse "Status changed"
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.userService.ChangeStatus(c.Request.Context(), targetID, *req.IsActive); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "status updated"})
}

// DeleteUser handles DELETE /api/admin/users/:id
// @Summary Delete a user
// @Description Self-deletion and deleting the only admin are refused.
// @Tags admin
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} APIResponse "User deleted"
// @Failure 400 {object} APIResponse "Self-deletion or sole admin"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), claims.UserID, targetID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "user deleted"})
}
