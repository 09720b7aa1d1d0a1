package util

import (
	"errors"
	"feedback_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the envelope every handler writes.
type Response struct {
	Code    int         `json:"code"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Success: true,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Success: true,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

var errorStatus = []struct {
	status int
	errs   []error
}{
	{http.StatusNotFound, []error{ErrNotFound, ErrUserNotFound, ErrTestNotFound, ErrSetNotFound, ErrMessageNotFound, ErrAnswerNotFound, gorm.ErrRecordNotFound}},
	{http.StatusForbidden, []error{ErrForbidden, ErrPermissionDenied, ErrNotAccepting, ErrTestAttempted, ErrUnverifiedAccount}},
	{http.StatusConflict, []error{ErrConflict, ErrUsernameTaken, ErrEmailRegistered, ErrTestAlreadySubmitted}},
	{http.StatusBadRequest, []error{ErrNoQuestionSets, ErrInvalidArgument, ErrTestNotStarted, ErrTestClosed, ErrQuestionSetLimit}},
	{http.StatusUnauthorized, []error{ErrInvalidCredentials, ErrInvalidCode, ErrOTPExpired}},
	{http.StatusPaymentRequired, []error{ErrAlreadyVerified}},
	{http.StatusTooManyRequests, []error{ErrOTPCooldown}},
	{http.StatusServiceUnavailable, []error{ErrSuggestionUnavailable}},
}

// StatusOf maps a service error to its HTTP status. Unknown errors are internal.
func StatusOf(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	for _, entry := range errorStatus {
		for _, target := range entry.errs {
			if errors.Is(err, target) {
				return entry.status
			}
		}
	}
	return http.StatusInternalServerError
}

// HandleError writes the envelope for err. Internal errors are logged and their text is hidden.
func HandleError(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		ErrorWithData(c, http.StatusBadRequest, verr.Err, verr.Fields)
		return
	}

	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		LogInternalError(c, err)
		return
	}
	Error(c, status, rootMessage(err))
}

// rootMessage returns the text of the matched sentinel so context wrapped
// around it for logs does not leak into responses.
func rootMessage(err error) string {
	for _, entry := range errorStatus {
		for _, target := range entry.errs {
			if !errors.Is(err, target) {
				continue
			}
			if target == gorm.ErrRecordNotFound {
				return "Resource not found"
			}
			return target.Error()
		}
	}
	return http.StatusText(StatusOf(err))
}
