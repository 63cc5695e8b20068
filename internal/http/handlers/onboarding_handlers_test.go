package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/mocks"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/services"
)

func createOnboardingHandlersForTest() (*OnboardingHandlers, *mocks.MockAuthService, *mocks.MockProfileService, *mocks.MockOTPService, *mocks.MockAuditLogger) {
	authSvc := mocks.NewMockAuthService()
	profileSvc := mocks.NewMockProfileService()
	otpSvc := mocks.NewMockOTPService()
	audit := mocks.NewMockAuditLogger()
	h := NewOnboardingHandlers(authSvc, profileSvc, services.NewFlowService(), otpSvc, audit)
	return h, authSvc, profileSvc, otpSvc, audit
}

func performQuery(handler gin.HandlerFunc, path, query string, profile *domain.UserProfile, profileSvc *mocks.MockProfileService) *httptest.ResponseRecorder {
	if profile != nil {
		profileSvc.GetFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
			return profile, nil
		}
	}

	w := httptest.NewRecorder()
	r := gin.New()
	r.GET(path, func(c *gin.Context) {
		c.Set(middleware.CtxProfileID, "p1")
		handler(c)
	})

	req := httptest.NewRequest(http.MethodGet, path+"?"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestOnboardingHandlers_Start(t *testing.T) {
	h, authSvc, _, _, audit := createOnboardingHandlersForTest()

	started := false
	authSvc.StartOnboardingFunc = func(ctx context.Context) (*domain.AuthResult, error) {
		started = true
		return &domain.AuthResult{
			Profile:      &domain.UserProfile{ID: "new1", AuthMethod: domain.AuthMethodEmail},
			AccessToken:  "at",
			RefreshToken: "rt",
			SessionID:    "s1",
			ExpiresIn:    900,
		}, nil
	}

	w := performJSON(h.Start, http.MethodPost, "/onboarding/start", nil, false)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, started)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "at", data["access_token"])

	onboarding := data["onboarding"].(map[string]any)
	assert.Equal(t, string(domain.StepLifeImprovement), onboarding["step"])
	assert.Equal(t, float64(1), onboarding["current_step_number"])
	assert.Equal(t, float64(8), onboarding["total_steps"])
	assert.Equal(t, string(domain.StepDailyReadingTime), onboarding["next_step"])

	events := audit.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.OnboardingStartedEvent, events[0].EventType)
}

func TestOnboardingHandlers_SubmitName(t *testing.T) {
	h, _, profileSvc, _, _ := createOnboardingHandlersForTest()

	var patchedName string
	profileSvc.UpdateFunc = func(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
		if patch.Name != nil {
			patchedName = *patch.Name
		}
		return &domain.UserProfile{ID: id, Name: patchedName, AuthMethod: domain.AuthMethodEmail}, nil
	}

	w := performJSON(h.SubmitName, http.MethodPost, "/onboarding/steps/name", NameInputRequest{Name: "آرش"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "آرش", patchedName)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, string(domain.StepNameInput), data["step"])
	assert.Equal(t, string(domain.StepAgeSelection), data["next_step"])

	// Empty name is rejected by binding.
	w = performJSON(h.SubmitName, http.MethodPost, "/onboarding/steps/name", map[string]string{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnboardingHandlers_SubmitContact(t *testing.T) {
	t.Run("valid phone stores the contact and issues a challenge", func(t *testing.T) {
		h, _, profileSvc, otpSvc, _ := createOnboardingHandlersForTest()

		var patch domain.ProfilePatch
		profileSvc.UpdateFunc = func(ctx context.Context, id string, p domain.ProfilePatch) (*domain.UserProfile, error) {
			patch = p
			return &domain.UserProfile{ID: id, AuthMethod: domain.AuthMethodEmail}, nil
		}
		var generated string
		otpSvc.GenerateFunc = func(ctx context.Context, contact string, channel domain.ContactType, profileID string) (*domain.OTPChallenge, error) {
			generated = contact
			return &domain.OTPChallenge{Contact: contact, Channel: channel, ProfileID: profileID}, nil
		}

		w := performJSON(h.SubmitContact, http.MethodPost, "/onboarding/steps/contact", ContactInputRequest{Contact: "09123456789"}, true)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, patch.Phone)
		assert.Equal(t, "09123456789", *patch.Phone)
		assert.Nil(t, patch.Email)
		assert.Equal(t, "09123456789", generated)

		body := decodeBody(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "09123456789", data["display_contact"])
		assert.Equal(t, float64(147), data["resend_after"])
		assert.Equal(t, string(domain.StepSignupOTP), data["next_step"])
	})

	t.Run("email contact goes to the email field", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()

		var patch domain.ProfilePatch
		profileSvc.UpdateFunc = func(ctx context.Context, id string, p domain.ProfilePatch) (*domain.UserProfile, error) {
			patch = p
			return &domain.UserProfile{ID: id, AuthMethod: domain.AuthMethodEmail}, nil
		}

		w := performJSON(h.SubmitContact, http.MethodPost, "/onboarding/steps/contact", ContactInputRequest{Contact: "user@example.com"}, true)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, patch.Email)
		assert.Equal(t, "user@example.com", *patch.Email)
		assert.Nil(t, patch.Phone)
	})

	t.Run("invalid contact returns the validation message", func(t *testing.T) {
		h, _, _, _, _ := createOnboardingHandlersForTest()

		w := performJSON(h.SubmitContact, http.MethodPost, "/onboarding/steps/contact", ContactInputRequest{Contact: "12345"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("google users are rejected from the contact step", func(t *testing.T) {
		h, _, profileSvc, otpSvc, _ := createOnboardingHandlersForTest()

		profileSvc.GetFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
			return &domain.UserProfile{
				ID:                         id,
				IsGoogleUser:               true,
				HasCompletedEmailPhoneStep: true,
			}, nil
		}
		otpSvc.GenerateFunc = func(ctx context.Context, contact string, channel domain.ContactType, profileID string) (*domain.OTPChallenge, error) {
			t.Error("no challenge may be issued for a google user")
			return nil, nil
		}

		w := performJSON(h.SubmitContact, http.MethodPost, "/onboarding/steps/contact", ContactInputRequest{Contact: "09123456789"}, true)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestOnboardingHandlers_VerifyStepOTP(t *testing.T) {
	t.Run("correct code completes the contact step", func(t *testing.T) {
		h, _, profileSvc, _, audit := createOnboardingHandlersForTest()

		var marked string
		profileSvc.MarkEmailPhoneCompletedFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
			marked = id
			return &domain.UserProfile{ID: id, HasCompletedEmailPhoneStep: true, AuthMethod: domain.AuthMethodEmail}, nil
		}

		w := performJSON(h.VerifyStepOTP, http.MethodPost, "/onboarding/steps/otp/verify", StepOTPVerifyRequest{Contact: "09123456789", Code: "1234"}, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "p1", marked)

		var verified bool
		for _, event := range audit.Events() {
			if event.EventType == domain.OTPVerifiedEvent {
				verified = true
			}
		}
		assert.True(t, verified)
	})

	t.Run("wrong code does not complete the step", func(t *testing.T) {
		h, _, profileSvc, otpSvc, _ := createOnboardingHandlersForTest()

		otpSvc.VerifyFunc = func(ctx context.Context, contact, code string) (bool, error) {
			return false, domain.ErrOTPInvalid
		}
		profileSvc.MarkEmailPhoneCompletedFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
			t.Error("failed verification must not complete the step")
			return nil, nil
		}

		w := performJSON(h.VerifyStepOTP, http.MethodPost, "/onboarding/steps/otp/verify", StepOTPVerifyRequest{Contact: "09123456789", Code: "0000"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOnboardingHandlers_SubmitPlatformDiscovery(t *testing.T) {
	h, _, _, _, audit := createOnboardingHandlersForTest()

	w := performJSON(h.SubmitPlatformDiscovery, http.MethodPost, "/onboarding/steps/platform-discovery", PlatformDiscoveryRequest{Source: "اینستاگرام"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, string(domain.StepSignupSuccess), data["next_step"])

	var completed bool
	for _, event := range audit.Events() {
		if event.EventType == domain.OnboardingCompletedEvent {
			completed = true
		}
	}
	assert.True(t, completed)
}

func TestOnboardingHandlers_Navigation(t *testing.T) {
	regular := &domain.UserProfile{ID: "p1", AuthMethod: domain.AuthMethodEmail}
	google := &domain.UserProfile{
		ID:                         "p1",
		IsGoogleUser:               true,
		HasCompletedEmailPhoneStep: true,
	}

	t.Run("next for a regular user", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Next, "/onboarding/next", "step=age-selection", regular, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, string(domain.StepEmailInput), data["next_step"])
	})

	t.Run("next skips for a google user", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Next, "/onboarding/next", "step=age-selection", google, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, string(domain.StepPlatformDiscovery), data["next_step"])
	})

	t.Run("next at the boundary is null", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Next, "/onboarding/next", "step=signup-success", regular, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Nil(t, data["next_step"])
	})

	t.Run("previous mirrors the skip rules", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Previous, "/onboarding/previous", "step=platform-discovery", google, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, string(domain.StepAgeSelection), data["previous_step"])
	})

	t.Run("unknown step is rejected", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Next, "/onboarding/next", "step=nonsense", regular, profileSvc)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOnboardingHandlers_Progress(t *testing.T) {
	regular := &domain.UserProfile{ID: "p1", AuthMethod: domain.AuthMethodEmail}
	google := &domain.UserProfile{
		ID:                         "p1",
		IsGoogleUser:               true,
		HasCompletedEmailPhoneStep: true,
	}

	t.Run("regular user counts all eight steps", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Progress, "/onboarding/progress", "step=platform-discovery", regular, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, float64(7), data["current_step_number"])
		assert.Equal(t, float64(8), data["total_steps"])
	})

	t.Run("google user counts six steps", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Progress, "/onboarding/progress", "step=platform-discovery", google, profileSvc)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, float64(5), data["current_step_number"])
		assert.Equal(t, float64(6), data["total_steps"])
	})

	t.Run("skipped step has no position", func(t *testing.T) {
		h, _, profileSvc, _, _ := createOnboardingHandlersForTest()
		w := performQuery(h.Progress, "/onboarding/progress", "step=email-input", google, profileSvc)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
