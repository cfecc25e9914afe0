package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billdesk/internal/domain"
	"billdesk/internal/handler"
	"billdesk/mocks"
)

func newAdminHandler() (*handler.AdminHandler, *mocks.MockUserService, *mocks.MockStatsService) {
	userSvc := new(mocks.MockUserService)
	statsSvc := new(mocks.MockStatsService)
	return handler.NewAdminHandler(userSvc, statsSvc), userSvc, statsSvc
}

func TestAdminHandler_ListUsers_Paginated(t *testing.T) {
	h, userSvc, _ := newAdminHandler()

	users := []domain.User{{ID: uuid.New()}, {ID: uuid.New()}}
	userSvc.On("List", mock.Anything, mock.MatchedBy(func(f domain.UserFilters) bool {
		return f.Role == domain.RoleUser && f.Search == "asha" && f.Page == 1 && f.Limit == 10
	})).Return(users, 25, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/admin/users?role=user&search=asha", nil)
	withClaims(c, domain.RoleAdmin)

	h.ListUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 3, resp.Meta.Pages)
	assert.Equal(t, 25, resp.Meta.Total)
}

func TestAdminHandler_ChangeRole_SecondAdminRejected(t *testing.T) {
	h, userSvc, _ := newAdminHandler()
	targetID := uuid.New()

	w, c := jsonCtx(t, http.MethodPut, "/api/admin/users/"+targetID.String()+"/role", map[string]string{
		"role": "admin",
	})
	claims := withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}

	userSvc.On("ChangeRole", mock.Anything, claims.UserID, targetID, domain.RoleAdmin).
		Return(domain.ErrAdminExists)

	h.ChangeRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ADMIN_EXISTS", errorCode(t, w))
}

func TestAdminHandler_ChangeRole_InvalidID(t *testing.T) {
	h, userSvc, _ := newAdminHandler()

	w, c := jsonCtx(t, http.MethodPut, "/api/admin/users/not-a-uuid/role", map[string]string{
		"role": "user",
	})
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.ChangeRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(t, w))
	userSvc.AssertNotCalled(t, "ChangeRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_ChangeStatus_Deactivate(t *testing.T) {
	h, userSvc, _ := newAdminHandler()
	targetID := uuid.New()

	w, c := jsonCtx(t, http.MethodPut, "/api/admin/users/"+targetID.String()+"/status", map[string]bool{
		"isActive": false,
	})
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}

	userSvc.On("ChangeStatus", mock.Anything, targetID, false).Return(nil)

	h.ChangeStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	userSvc.AssertExpectations(t)
}

func TestAdminHandler_DeleteUser_SelfDeletionRejected(t *testing.T) {
	h, userSvc, _ := newAdminHandler()
	targetID := uuid.New()

	w, c := jsonCtx(t, http.MethodDelete, "/api/admin/users/"+targetID.String(), nil)
	claims := withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}

	userSvc.On("Delete", mock.Anything, claims.UserID, targetID).
		Return(domain.ErrSelfDeletion)

	h.DeleteUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SELF_DELETION", errorCode(t, w))
}

func TestAdminHandler_DeleteUser_SoleAdminRejected(t *testing.T) {
	h, userSvc, _ := newAdminHandler()
	targetID := uuid.New()

	w, c := jsonCtx(t, http.MethodDelete, "/api/admin/users/"+targetID.String(), nil)
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: targetID.String()}}

	userSvc.On("Delete", mock.Anything, mock.Anything, targetID).
		Return(domain.ErrSoleAdmin)

	h.DeleteUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SOLE_ADMIN", errorCode(t, w))
}

func TestAdminHandler_Stats(t *testing.T) {
	h, _, statsSvc := newAdminHandler()

	statsSvc.On("AdminStats", mock.Anything).Return(&domain.AdminStats{}, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/admin/stats", nil)
	withClaims(c, domain.RoleAdmin)

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestAdminHandler_Analytics_DefaultPeriod(t *testing.T) {
	h, _, statsSvc := newAdminHandler()

	statsSvc.On("Analytics", mock.Anything, 30).Return(&domain.Analytics{}, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/admin/analytics", nil)
	withClaims(c, domain.RoleAdmin)

	h.Analytics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	statsSvc.AssertExpectations(t)
}

func TestAdminHandler_Analytics_CustomPeriod(t *testing.T) {
	h, _, statsSvc := newAdminHandler()

	statsSvc.On("Analytics", mock.Anything, 7).Return(&domain.Analytics{}, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/admin/analytics?period=7", nil)
	withClaims(c, domain.RoleAdmin)

	h.Analytics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	statsSvc.AssertExpectations(t)
}
