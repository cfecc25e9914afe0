package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"billdesk/internal/domain"
	"billdesk/internal/handler"
	"billdesk/internal/middleware"
	"billdesk/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// jsonCtx builds a test context carrying a JSON request body.
func jsonCtx(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

// withClaims injects an authenticated user into the context the way the
// auth middleware does, returning the claims for assertions.
func withClaims(c *gin.Context, role domain.UserRole) *service.Claims {
	claims := &service.Claims{
		UserID: uuid.New(),
		Email:  "actor@test.com",
		Role:   role,
	}
	c.Set(middleware.ContextKeyClaims, claims)
	return claims
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	require.False(t, resp.Success)
	return resp.Error.Code
}
