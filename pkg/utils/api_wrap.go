package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyHeader carries the per-submission key used to answer retried
// writes with the first result.
const IdempotencyHeader = "Idempotency-Key"

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondErrorWithData(c, code, message, nil)
}

// RespondErrorWithData is used for validation failures, where data lists the
// offending fields.
func RespondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTourNotFound):
		RespondError(c, http.StatusNotFound, "Tour not found")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTourConflict):
		RespondError(c, http.StatusConflict, "Tour was changed by someone else, reload and try again")
	case errors.Is(err, ErrTourFull):
		RespondError(c, http.StatusConflict, "Tour is full")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
