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
	"billdesk/internal/service"
	"billdesk/mocks"
)

func newBillHandler() (*handler.BillHandler, *mocks.MockBillService, *mocks.MockFileService) {
	billSvc := new(mocks.MockBillService)
	fileSvc := new(mocks.MockFileService)
	return handler.NewBillHandler(billSvc, fileSvc), billSvc, fileSvc
}

func TestBillHandler_Create_Success(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	created := &domain.Bill{ID: uuid.New(), ApprovalStatus: domain.ApprovalPending}
	billSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.Claims"),
		mock.MatchedBy(func(in service.CreateBillInput) bool {
			return in.Title == "March internet" && in.Amount == 1299
		}), mock.Anything).Return(created, nil)

	w, c := jsonCtx(t, http.MethodPost, "/api/bills", map[string]interface{}{
		"title":    "March internet",
		"amount":   1299,
		"category": "internet",
	})
	withClaims(c, domain.RoleUser)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	billSvc.AssertExpectations(t)
}

func TestBillHandler_Create_RequiresAmount(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	w, c := jsonCtx(t, http.MethodPost, "/api/bills", map[string]interface{}{
		"title":    "No amount",
		"category": "internet",
	})
	withClaims(c, domain.RoleUser)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	billSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillHandler_Analytics_UsesActorID(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	w, c := jsonCtx(t, http.MethodGet, "/api/bills/analytics", nil)
	claims := withClaims(c, domain.RoleUser)

	billSvc.On("Analytics", mock.Anything, claims.UserID).
		Return(&domain.BillAnalytics{TotalBills: 3}, nil)

	h.Analytics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	billSvc.AssertExpectations(t)
}

func TestBillHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	billSvc.On("UpdateStatus", mock.Anything, mock.Anything, "abc",
		mock.AnythingOfType("service.UpdateBillStatusInput"), mock.Anything).
		Return(nil, domain.ErrInvalidStatus)

	w, c := jsonCtx(t, http.MethodPatch, "/api/bills/abc/status", map[string]interface{}{
		"status": "settled",
	})
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", errorCode(t, w))
}

func TestBillHandler_UpdateStatus_PassesPaymentInfo(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	paid := &domain.Bill{ID: uuid.New(), Status: domain.StatusPaid}
	billSvc.On("UpdateStatus", mock.Anything, mock.Anything, "abc",
		mock.MatchedBy(func(in service.UpdateBillStatusInput) bool {
			return in.Status == domain.StatusPaid && in.PaymentInfo.TransactionID == "TXN-42"
		}), mock.Anything).Return(paid, nil)

	w, c := jsonCtx(t, http.MethodPatch, "/api/bills/abc/status", map[string]interface{}{
		"status": "paid",
		"paymentInfo": map[string]string{
			"paymentMethod": "bank_transfer",
			"transactionId": "TXN-42",
		},
	})
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	billSvc.AssertExpectations(t)
}

func TestBillHandler_Get_Forbidden(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	billSvc.On("Get", mock.Anything, mock.Anything, "abc").
		Return(nil, domain.ErrForbidden)

	w, c := jsonCtx(t, http.MethodGet, "/api/bills/abc", nil)
	withClaims(c, domain.RoleUser)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestBillHandler_Approve_NotPendingConflict(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	billSvc.On("Approve", mock.Anything, mock.Anything, "abc", mock.Anything).
		Return(nil, domain.ErrNotPending)

	w, c := jsonCtx(t, http.MethodPut, "/api/bills/abc/approve", nil)
	withClaims(c, domain.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOT_PENDING", errorCode(t, w))
}

func TestBillHandler_MyBills_Paginated(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	w, c := jsonCtx(t, http.MethodGet, "/api/bills/my-bills?page=3&limit=5", nil)
	claims := withClaims(c, domain.RoleUser)

	billSvc.On("ListMine", mock.Anything, claims.UserID, 3, 5).
		Return([]domain.Bill{{ID: uuid.New()}}, 11, nil)

	h.MyBills(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 3, resp.Meta.Current)
	assert.Equal(t, 3, resp.Meta.Pages)
	assert.Equal(t, 11, resp.Meta.Total)
}

func TestBillHandler_DownloadFile_WrongOwner404(t *testing.T) {
	h, billSvc, fileSvc := newBillHandler()

	bill := &domain.Bill{ID: uuid.New()}
	billSvc.On("Get", mock.Anything, mock.Anything, "abc").Return(bill, nil)

	// File belongs to a different bill.
	fileSvc.On("Get", mock.Anything, "f1").
		Return(&domain.FileMeta{OwnerType: domain.FileOwnerBill, OwnerID: uuid.New()}, nil)

	w, c := jsonCtx(t, http.MethodGet, "/api/bills/abc/files/f1/download", nil)
	withClaims(c, domain.RoleUser)
	c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "fileId", Value: "f1"}}

	h.DownloadFile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	// A mismatched owner must not open the stream: that is what increments
	// download_count and writes the download audit entry.
	fileSvc.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillHandler_Delete_NonCreatorForbidden(t *testing.T) {
	h, billSvc, _ := newBillHandler()

	billSvc.On("Delete", mock.Anything, mock.Anything, "abc", mock.Anything).
		Return(domain.ErrForbidden)

	w, c := jsonCtx(t, http.MethodDelete, "/api/bills/abc", nil)
	withClaims(c, domain.RoleUser)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
