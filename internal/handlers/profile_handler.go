package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/services"
	"github.com/sikado/tutoring-service/internal/storage"
	"github.com/sikado/tutoring-service/internal/utils"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type ProfileHandler struct {
	BaseHandler
	profileService services.ProfileService
	avatarStore    storage.AvatarStore
}

func NewProfileHandler(profileService services.ProfileService, avatarStore storage.AvatarStore, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    NewBaseHandler(logger),
		profileService: profileService,
		avatarStore:    avatarStore,
	}
}

// GetMyProfile returns the authenticated account's profile.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile returns any account's public profile by id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid account id",
		})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), uint(id))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateTeacherProfile replaces the authenticated teacher's profile fields.
func (h *ProfileHandler) UpdateTeacherProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.TeacherProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating teacher profile", "account_id", accountID)

	profile, err := h.profileService.UpdateTeacherProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateStudentProfile replaces the authenticated student's profile fields.
func (h *ProfileHandler) UpdateStudentProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.StudentProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating student profile", "account_id", accountID)

	profile, err := h.profileService.UpdateStudentProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar accepts a multipart image upload and returns the stored
// reference. The caller puts that reference into a later profile update.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	if _, ok := h.currentAccountID(c); !ok {
		return
	}

	if h.avatarStore == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Avatar storage is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Avatar file is required",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Avatar file exceeds the 5MB limit",
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Avatar must be an image",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read avatar file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Failed to read avatar file",
			Details: err.Error(),
		})
		return
	}

	ref, err := h.avatarStore.Upload(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		h.LogError(c, err, "Avatar upload failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to store avatar",
		})
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Avatar uploaded",
		Data:    gin.H{"avatar_url": ref},
	})
}

func (h *ProfileHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Account role does not allow this operation",
		})
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Account not found",
		})
	default:
		h.LogError(c, err, "Profile operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
