package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/services"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/validation"
)

// AuthHandlers handles the passwordless login and Google sign-in surface.
type AuthHandlers struct {
	authSvc    domain.AuthService
	profileSvc domain.ProfileService
	audit      domain.AuditLogger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, profileSvc domain.ProfileService, audit domain.AuditLogger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		profileSvc: profileSvc,
		audit:      audit,
	}
}

// RequestOTPRequest carries the contact string from the login screen.
type RequestOTPRequest struct {
	Contact string `json:"contact" binding:"required"`
}

// VerifyOTPRequest carries the contact plus the submitted code.
type VerifyOTPRequest struct {
	Contact string `json:"contact" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RequestOTP handles the passwordless login entry: classify the contact,
// validate it, send a code.
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contactType, err := h.authSvc.RequestOTP(c.Request.Context(), req.Contact)
	if err != nil {
		h.audit.LogEvent(domain.NewAuditEvent(domain.OTPRequestedEvent, "").WithContact(req.Contact).WithError(err))
		switch {
		case errors.Is(err, domain.ErrContactInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ValidateEmailOrPhone(req.Contact).Error})
		case errors.Is(err, domain.ErrOTPResendThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Resend window has not elapsed"})
		case errors.Is(err, domain.ErrOTPInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A code is already being sent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		}
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.OTPRequestedEvent, "").WithContact(req.Contact))
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":         "OTP sent successfully",
			"type":            contactType,
			"display_contact": validation.DisplayContact(req.Contact, contactType),
			"resend_after":    services.DefaultChallengeSeconds,
		},
	})
}

// VerifyOTP handles login verification: a correct code opens the session and
// returns the token pair.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Contact, req.Code)
	if err != nil {
		h.audit.LogEvent(domain.NewAuditEvent(domain.OTPVerifyFailedEvent, "").WithContact(req.Contact).WithError(err))
		switch {
		case errors.Is(err, domain.ErrOTPMalformed):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.MsgOTPInvalidLength})
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "OTP not found"})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP code"})
		case errors.Is(err, domain.ErrContactInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.LoginEvent, result.Profile.ID).WithContact(req.Contact).WithSession(result.SessionID))
	c.JSON(http.StatusOK, authResultBody(result))
}

// GoogleSignIn handles the mocked Google authentication path.
func (h *AuthHandlers) GoogleSignIn(c *gin.Context) {
	result, err := h.authSvc.GoogleSignIn(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google sign-in failed"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.GoogleAuthEvent, result.Profile.ID).WithSession(result.SessionID))
	c.JSON(http.StatusOK, authResultBody(result))
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case domain.ErrTokenInvalid, domain.ErrTokenExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		case domain.ErrSessionNotFound, domain.ErrSessionExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
		},
	})
}

// Logout handles user logout (requires authentication). Clears the session
// and the durable profile record.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get(middleware.CtxSessionID)
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return
	}
	profileID, _ := c.Get(middleware.CtxProfileID)

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.LogoutEvent, profileID.(string)).WithSession(sessionID.(string)))
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}

// Me handles getting the current profile (requires authentication).
func (h *AuthHandlers) Me(c *gin.Context) {
	profileID, exists := c.Get(middleware.CtxProfileID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile ID not found in context"})
		return
	}

	profile, err := h.profileSvc.Get(c.Request.Context(), profileID.(string))
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profileBody(profile)})
}

func authResultBody(result *domain.AuthResult) gin.H {
	return gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user":          profileBody(result.Profile),
		},
	}
}

func profileBody(profile *domain.UserProfile) gin.H {
	return gin.H{
		"id":                         profile.ID,
		"email":                      profile.Email,
		"phone":                      profile.Phone,
		"name":                       profile.Name,
		"googleEmail":                profile.GoogleEmail,
		"authMethod":                 profile.AuthMethod,
		"isGoogleUser":               profile.IsGoogleUser,
		"hasCompletedEmailPhoneStep": profile.HasCompletedEmailPhoneStep,
	}
}
