package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/utils"
)

type ContactHandler struct {
	BaseHandler
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService, logger utils.Logger) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    NewBaseHandler(logger),
		contactService: contactService,
	}
}

// CreateContactRequest records a student's outreach to a teacher and kicks
// off the notification. The response reports both outcomes.
func (h *ContactHandler) CreateContactRequest(c *gin.Context) {
	studentID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.SendContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating contact request", "student_id", studentID, "teacher_id", req.TeacherID)

	resp, err := h.contactService.SendRequest(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ContactHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Teacher not found",
		})
	default:
		h.LogError(c, err, "Contact request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
