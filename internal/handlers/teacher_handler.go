package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	discoveryService services.DiscoveryService
	contactService   services.ContactService
}

func NewTeacherHandler(discoveryService services.DiscoveryService, contactService services.ContactService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:      NewBaseHandler(logger),
		discoveryService: discoveryService,
		contactService:   contactService,
	}
}

// SearchTeachers lists teacher accounts matching the q and subject filters.
func (h *TeacherHandler) SearchTeachers(c *gin.Context) {
	filters := repositories.TeacherFilters{
		Query:   c.Query("q"),
		Subject: c.Query("subject"),
	}

	teachers, err := h.discoveryService.SearchTeachers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teachers": teachers,
		"count":    len(teachers),
	})
}

// GetMyRequests returns the authenticated teacher's inbox, newest first.
func (h *TeacherHandler) GetMyRequests(c *gin.Context) {
	teacherID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	requests, err := h.contactService.ListForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// ExportMyRequests streams the inbox as an .xlsx download.
func (h *TeacherHandler) ExportMyRequests(c *gin.Context) {
	teacherID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting contact requests", "teacher_id", teacherID)

	file, err := h.contactService.ExportForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("contact-requests-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export", "teacher_id", teacherID)
	}
}

func (h *TeacherHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Teacher not found",
		})
	default:
		h.LogError(c, err, "Teacher operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
