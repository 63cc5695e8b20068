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

// OnboardingHandlers serves the signup wizard: step submissions, navigation
// and progress. Step order and skips are delegated to the flow service.
type OnboardingHandlers struct {
	authSvc    domain.AuthService
	profileSvc domain.ProfileService
	flowSvc    domain.FlowService
	otpSvc     domain.OTPService
	audit      domain.AuditLogger
}

// NewOnboardingHandlers creates new onboarding handlers
func NewOnboardingHandlers(
	authSvc domain.AuthService,
	profileSvc domain.ProfileService,
	flowSvc domain.FlowService,
	otpSvc domain.OTPService,
	audit domain.AuditLogger,
) *OnboardingHandlers {
	return &OnboardingHandlers{
		authSvc:    authSvc,
		profileSvc: profileSvc,
		flowSvc:    flowSvc,
		otpSvc:     otpSvc,
		audit:      audit,
	}
}

// LifeImprovementRequest carries the selected improvement areas.
type LifeImprovementRequest struct {
	Goals []string `json:"goals" binding:"required,min=1"`
}

// DailyReadingTimeRequest carries the chosen daily reading commitment.
type DailyReadingTimeRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1"`
}

// NameInputRequest carries the user's display name.
type NameInputRequest struct {
	Name string `json:"name" binding:"required"`
}

// AgeSelectionRequest carries the chosen age range.
type AgeSelectionRequest struct {
	AgeRange string `json:"ageRange" binding:"required"`
}

// ContactInputRequest carries the email or phone from the contact step.
type ContactInputRequest struct {
	Contact string `json:"contact" binding:"required"`
}

// StepOTPVerifyRequest carries the code submitted on the signup OTP screen.
type StepOTPVerifyRequest struct {
	Contact string `json:"contact" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

// PlatformDiscoveryRequest carries how the user heard about the platform.
type PlatformDiscoveryRequest struct {
	Source string `json:"source" binding:"required"`
}

// Start handles the "get started" action: it creates a fresh profile and a
// session so the wizard screens have an identity to write to.
func (h *OnboardingHandlers) Start(c *gin.Context) {
	result, err := h.authSvc.StartOnboarding(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start onboarding"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.OnboardingStartedEvent, result.Profile.ID).WithSession(result.SessionID))

	body := authResultBody(result)
	body["data"].(gin.H)["onboarding"] = h.stepBody(domain.StepLifeImprovement, result.Profile)
	c.JSON(http.StatusCreated, body)
}

// SubmitLifeImprovement handles the first wizard screen. Selections live in
// the client session only; the server records completion and advances.
func (h *OnboardingHandlers) SubmitLifeImprovement(c *gin.Context) {
	var req LifeImprovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.completeStep(c, domain.StepLifeImprovement)
}

// SubmitDailyReadingTime handles the reading-commitment screen.
func (h *OnboardingHandlers) SubmitDailyReadingTime(c *gin.Context) {
	var req DailyReadingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.completeStep(c, domain.StepDailyReadingTime)
}

// SubmitName handles the name screen and stores the name on the profile.
func (h *OnboardingHandlers) SubmitName(c *gin.Context) {
	var req NameInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	if _, err := h.profileSvc.Update(c.Request.Context(), profileID, domain.ProfilePatch{Name: &req.Name}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save name"})
		return
	}
	h.completeStep(c, domain.StepNameInput)
}

// SubmitAge handles the age-range screen.
func (h *OnboardingHandlers) SubmitAge(c *gin.Context) {
	var req AgeSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.completeStep(c, domain.StepAgeSelection)
}

// SubmitContact handles the email/phone capture screen: classify, validate,
// store the contact on the profile and fire a verification code. Google users
// never see this screen and are rejected if they call it anyway.
func (h *OnboardingHandlers) SubmitContact(c *gin.Context) {
	var req ContactInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	profile := h.loadProfile(c, profileID)
	if services.ShouldSkipEmailPhoneInput(profile) {
		c.JSON(http.StatusConflict, gin.H{"error": "Contact step is not part of this flow"})
		return
	}

	res := validation.ValidateEmailOrPhone(req.Contact)
	if !res.IsValid {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error})
		return
	}

	patch := domain.ProfilePatch{}
	switch res.Type {
	case domain.ContactPhone:
		patch.Phone = &req.Contact
	default:
		patch.Email = &req.Contact
	}
	if _, err := h.profileSvc.Update(c.Request.Context(), profileID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		return
	}

	if _, err := h.otpSvc.Generate(c.Request.Context(), req.Contact, res.Type, profileID); err != nil {
		h.audit.LogEvent(domain.NewAuditEvent(domain.OTPRequestedEvent, profileID).WithContact(req.Contact).WithError(err))
		if errors.Is(err, domain.ErrOTPResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Resend window has not elapsed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.OTPRequestedEvent, profileID).WithContact(req.Contact).WithStep(domain.StepEmailInput))
	h.respondStep(c, domain.StepEmailInput, gin.H{
		"display_contact": validation.DisplayContact(req.Contact, res.Type),
		"resend_after":    services.DefaultChallengeSeconds,
	})
}

// VerifyStepOTP handles the signup verification screen. A correct code marks
// the contact-capture step complete on the profile.
func (h *OnboardingHandlers) VerifyStepOTP(c *gin.Context) {
	var req StepOTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	ok, err := h.otpSvc.Verify(c.Request.Context(), req.Contact, req.Code)
	if err != nil || !ok {
		if err == nil {
			err = domain.ErrOTPInvalid
		}
		h.audit.LogEvent(domain.NewAuditEvent(domain.OTPVerifyFailedEvent, profileID).WithContact(req.Contact).WithStep(domain.StepSignupOTP).WithError(err))
		switch {
		case errors.Is(err, domain.ErrOTPMalformed):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.MsgOTPInvalidLength})
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "OTP not found"})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	if _, err := h.profileSvc.MarkEmailPhoneCompleted(c.Request.Context(), profileID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.OTPVerifiedEvent, profileID).WithContact(req.Contact).WithStep(domain.StepSignupOTP))
	h.completeStep(c, domain.StepSignupOTP)
}

// SubmitPlatformDiscovery handles the last answered screen; completing it
// finishes the wizard.
func (h *OnboardingHandlers) SubmitPlatformDiscovery(c *gin.Context) {
	var req PlatformDiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	h.audit.LogEvent(domain.NewAuditEvent(domain.OnboardingCompletedEvent, profileID).WithStep(domain.StepPlatformDiscovery))
	h.completeStep(c, domain.StepPlatformDiscovery)
}

// Next resolves the skip-filtered successor of the step query parameter.
func (h *OnboardingHandlers) Next(c *gin.Context) {
	h.navigate(c, h.flowSvc.NextStep, "next_step", domain.ErrNoNextStep)
}

// Previous resolves the skip-filtered predecessor of the step query parameter.
func (h *OnboardingHandlers) Previous(c *gin.Context) {
	h.navigate(c, h.flowSvc.PreviousStep, "previous_step", domain.ErrNoPreviousStep)
}

// Progress reports the 1-based position of the step query parameter within
// the caller's effective sequence.
func (h *OnboardingHandlers) Progress(c *gin.Context) {
	step, profile, ok := h.stepAndProfile(c)
	if !ok {
		return
	}

	number, err := h.flowSvc.StepNumber(step, profile)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Step is not part of this flow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"step":                step,
			"current_step_number": number,
			"total_steps":         h.flowSvc.TotalSteps(profile),
		},
	})
}

type navFunc func(domain.OnboardingStep, *domain.UserProfile) (domain.OnboardingStep, error)

func (h *OnboardingHandlers) navigate(c *gin.Context, nav navFunc, key string, boundary error) {
	step, profile, ok := h.stepAndProfile(c)
	if !ok {
		return
	}

	target, err := nav(step, profile)
	if err != nil {
		if errors.Is(err, boundary) {
			c.JSON(http.StatusOK, gin.H{
				"data": gin.H{
					"step": step,
					key:    nil,
				},
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Step is not part of this flow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"step": step,
			key:    target,
		},
	})
}

// completeStep records the step completion and answers with the caller's
// position and the next screen to show.
func (h *OnboardingHandlers) completeStep(c *gin.Context, step domain.OnboardingStep) {
	profileID := c.GetString(middleware.CtxProfileID)
	h.audit.LogEvent(domain.NewAuditEvent(domain.StepCompletedEvent, profileID).WithStep(step))
	h.respondStep(c, step, nil)
}

func (h *OnboardingHandlers) respondStep(c *gin.Context, step domain.OnboardingStep, extra gin.H) {
	profile := h.loadProfile(c, c.GetString(middleware.CtxProfileID))
	body := h.stepBody(step, profile)
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, gin.H{"data": body})
}

// stepBody assembles the progress envelope for a step. Steps outside the
// caller's effective sequence report no position.
func (h *OnboardingHandlers) stepBody(step domain.OnboardingStep, profile *domain.UserProfile) gin.H {
	body := gin.H{
		"step":        step,
		"total_steps": h.flowSvc.TotalSteps(profile),
	}
	if number, err := h.flowSvc.StepNumber(step, profile); err == nil {
		body["current_step_number"] = number
	}
	if next, err := h.flowSvc.NextStep(step, profile); err == nil {
		body["next_step"] = next
	}
	return body
}

func (h *OnboardingHandlers) stepAndProfile(c *gin.Context) (domain.OnboardingStep, *domain.UserProfile, bool) {
	step, err := domain.ParseStep(c.Query("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown step"})
		return "", nil, false
	}
	return step, h.loadProfile(c, c.GetString(middleware.CtxProfileID)), true
}

// loadProfile fetches the caller's profile, treating "not found" as nil so
// flow decisions fall back to the non-google sequence.
func (h *OnboardingHandlers) loadProfile(c *gin.Context, profileID string) *domain.UserProfile {
	profile, err := h.profileSvc.Get(c.Request.Context(), profileID)
	if err != nil {
		return nil
	}
	return profile
}
