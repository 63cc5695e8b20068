package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
)

// ProfileHandlers serves the profile record and the avatar preference.
type ProfileHandlers struct {
	profileSvc domain.ProfileService
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(profileSvc domain.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

// UpdateProfileRequest carries the editable profile fields. The phone format
// is the Iranian mobile shape, validated through the iranphone binding tag.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,iranphone"`
}

// SetAvatarRequest carries the avatar selection.
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// Get handles reading the caller's profile.
func (h *ProfileHandlers) Get(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	profile, err := h.profileSvc.Get(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profileBody(profile)})
}

// Update handles a partial edit of the profile; absent fields are untouched.
func (h *ProfileHandlers) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	patch := domain.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), profileID, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profileBody(profile)})
}

// GetAvatar handles reading the stored avatar selection.
func (h *ProfileHandlers) GetAvatar(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	avatar, err := h.profileSvc.GetAvatar(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrAvatarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Avatar not set"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"avatar": avatar}})
}

// SetAvatar handles storing the avatar selection.
func (h *ProfileHandlers) SetAvatar(c *gin.Context) {
	var req SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	if err := h.profileSvc.SetAvatar(c.Request.Context(), profileID, req.Avatar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"avatar": req.Avatar}})
}
