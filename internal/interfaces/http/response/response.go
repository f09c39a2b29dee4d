package response

import (
	"errors"
	"net/http"
	"reflect"

	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body. Success responses carry data,
// error responses carry the error object, never both.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *utils.Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody        `json:"error,omitempty"`
}

// ErrorBody is the error half of the envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Message sends a success response with no data payload
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

// List sends a paginated collection response. Count is the number of items
// on this page; the total match count lives in pagination.total.
func List(c *gin.Context, data interface{}, total int64, page, limit int) {
	count := pageCount(data)
	p := utils.BuildPagination(total, page, limit)
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Count:      &count,
		Pagination: &p,
	})
}

func pageCount(data interface{}) int {
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len()
	}
	return 0
}

// Error sends an error response. AppErrors keep their status and code;
// bare domain sentinels are mapped onto the right status; anything else
// becomes a 500 without leaking its message.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.NewAppError(http.StatusConflict, "ALREADY_EXISTS", err.Error(), err)
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrProjectNotActive),
		errors.Is(err, domainerrors.ErrDeadlinePassed),
		errors.Is(err, domainerrors.ErrBelowMinInvestment),
		errors.Is(err, domainerrors.ErrAccreditationRequired),
		errors.Is(err, domainerrors.ErrInvestmentNotPending):
		return domainerrors.BusinessRule(err.Error(), err)
	case errors.Is(err, domainerrors.ErrPaymentFailed),
		errors.Is(err, domainerrors.ErrRefundFailed),
		errors.Is(err, domainerrors.ErrUploadFailed):
		return domainerrors.ExternalService(err.Error(), err)
	}
	return domainerrors.InternalError(err)
}
