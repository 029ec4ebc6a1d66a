package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/utils"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse wraps non-entity success payloads.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides shared logging helpers for all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs with the request-scoped logger when middleware provided one.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	if logger := utils.FromContext(c); logger != nil {
		logger.Info(msg, args...)
		return
	}
	h.logger.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	if logger := utils.FromContext(c); logger != nil {
		logger.Error(msg, args...)
		return
	}
	h.logger.Error(msg, args...)
}

// currentAccountID returns the authenticated account id set by the auth
// middleware, or aborts with 401.
func (h *BaseHandler) currentAccountID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return 0, false
	}
	return id, true
}
