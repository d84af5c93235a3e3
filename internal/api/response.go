package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/service"
	"github.com/housetab/housetab/internal/storage"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response with the given status.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ServiceError maps a core-layer error onto the HTTP taxonomy:
// ValidationError -> 400, NotFoundError -> 404, everything else
// (StorageError included) -> 500.
func ServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		BadRequest(c, ve.Msg)
		return
	}

	var nf *storage.NotFoundError
	if errors.As(err, &nf) {
		NotFound(c, nf.Error())
		return
	}

	slog.Error("request failed", "path", c.FullPath(), "error", err)
	Error(c, http.StatusInternalServerError, "internal error")
}
