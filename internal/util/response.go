package util

import (
	"errors"
	"net/http"

	"quiz_app_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the unified JSON envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
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
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// DomainError maps a service error to its HTTP status. Business rejections
// become 4xx, everything else is logged and answered with 500.
func DomainError(c *gin.Context, err error) {
	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		Error(c, http.StatusNotFound, nf.Error())
	case errors.Is(err, ErrNotQuestionOwner), errors.Is(err, ErrNotQuizOwner):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrQuizAlreadyStarted), errors.Is(err, ErrAlreadyAnswered), errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTimeLimitExceeded):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrQuizNotStarted), errors.Is(err, ErrQuestionNotInQuiz):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	default:
		LogInternalError(c, err)
	}
}
