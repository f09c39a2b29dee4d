package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "brickvest.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Message(c, http.StatusOK, "password reset email sent")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"password reset email sent"`)
	assert.NotContains(t, w.Body.String(), `"data"`)
}

func TestList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, []string{"a", "b"}, 25, 2, 10)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), `"total":25`)
	assert.Contains(t, w.Body.String(), `"next":{"page":3,"limit":10}`)
	assert.Contains(t, w.Body.String(), `"prev":{"page":1,"limit":10}`)
	assert.Contains(t, w.Body.String(), `"totalPages":3`)
}

func TestList_CountIsPageSizeNotTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, []int{1, 2, 3, 4, 5}, 25, 3, 10)
	assert.Contains(t, w.Body.String(), `"count":5`)
	assert.NotContains(t, w.Body.String(), `"count":25`)
	assert.Contains(t, w.Body.String(), `"total":25`)
}

func TestList_EmptyPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, []string{}, 0, 1, 10)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domainerrors.NotFound("project not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
	assert.Contains(t, w.Body.String(), "project not found")
}

func TestError_SentinelMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domainerrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{domainerrors.ErrInvalidInput, http.StatusBadRequest, "VALIDATION_ERROR"},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domainerrors.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domainerrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domainerrors.ErrProjectNotActive, http.StatusBadRequest, "BUSINESS_RULE"},
		{domainerrors.ErrDeadlinePassed, http.StatusBadRequest, "BUSINESS_RULE"},
		{domainerrors.ErrBelowMinInvestment, http.StatusBadRequest, "BUSINESS_RULE"},
		{domainerrors.ErrAccreditationRequired, http.StatusBadRequest, "BUSINESS_RULE"},
		{domainerrors.ErrInvestmentNotPending, http.StatusBadRequest, "BUSINESS_RULE"},
		{domainerrors.ErrPaymentFailed, http.StatusBadRequest, "EXTERNAL_SERVICE"},
		{domainerrors.ErrRefundFailed, http.StatusBadRequest, "EXTERNAL_SERVICE"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), `"code":"`+tc.code+`"`, tc.err.Error())
	}
}

func TestError_GenericErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL"`)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
