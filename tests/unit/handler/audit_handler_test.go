package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/handler"
	"billdesk/mocks"
)

func TestAuditHandler_List_ParsesFilters(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	userID := uuid.New()
	auditSvc.On("List", mock.Anything, mock.MatchedBy(func(f domain.AuditFilters) bool {
		return f.UserID != nil && *f.UserID == userID &&
			f.Action == domain.AuditApproveReport &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Page == 1 && f.Limit == 10
	})).Return([]domain.AuditLog{}, 0, nil)

	w, c := jsonCtx(t, http.MethodGet,
		"/api/audit?userId="+userID.String()+"&action=approve_report&startDate=2025-03-01", nil)
	withClaims(c, domain.RoleAdmin)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	auditSvc.AssertExpectations(t)
}

func TestAuditHandler_List_InvalidReportID(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	w, c := jsonCtx(t, http.MethodGet, "/api/audit?reportId=not-a-uuid", nil)
	withClaims(c, domain.RoleAdmin)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	auditSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAuditHandler_ExportCSV(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	entries := []domain.AuditLog{
		{
			LogID:       "log_1741617000000_abc123def",
			Action:      domain.AuditCreateReport,
			PerformedBy: uuid.New(),
			Timestamp:   time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			IPAddress:   "10.0.0.7",
			UserAgent:   "curl/8.5.0",
		},
	}
	auditSvc.On("Export", mock.Anything, mock.AnythingOfType("domain.AuditFilters")).
		Return(entries, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/audit/export/csv", nil)
	withClaims(c, domain.RoleAdmin)

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="audit_logs.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xef\xbb\xbf"), "missing UTF-8 BOM")
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(body, "\xef\xbb\xbf")), "\n")
	assert.Equal(t, "Timestamp,Action,Performed By,Verified By,Report,File,IP Address,User Agent", strings.TrimSpace(lines[0]))
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "create_report")
	assert.Contains(t, lines[1], "10.0.0.7")
}

func TestAuditHandler_Get(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	entry := &domain.AuditLog{LogID: "log_1741617000000_abc123def", Action: domain.AuditUploadFile}
	auditSvc.On("Get", mock.Anything, entry.LogID).Return(entry, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/audit/"+entry.LogID, nil)
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "logId", Value: entry.LogID}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestAuditHandler_Get_NotFound(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	auditSvc.On("Get", mock.Anything, "log_missing").Return(nil, domain.ErrNotFound)

	w, c := jsonCtx(t, http.MethodGet, "/api/audit/log_missing", nil)
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "logId", Value: "log_missing"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuditHandler_Stats(t *testing.T) {
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewAuditHandler(auditSvc)

	auditSvc.On("Stats", mock.Anything).Return(&domain.AuditStats{Total: 42}, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/audit/stats/overview", nil)
	withClaims(c, domain.RoleAdmin)

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}
