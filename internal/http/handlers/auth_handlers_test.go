package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/mocks"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performJSON runs a handler against a JSON body, optionally with the
// authenticated context keys set.
func performJSON(handler gin.HandlerFunc, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := gin.New()

	register := func(c *gin.Context) {
		if authed {
			c.Set(middleware.CtxProfileID, "p1")
			c.Set(middleware.CtxRole, "user")
			c.Set(middleware.CtxSessionID, "s1")
		}
		handler(c)
	}
	r.Handle(method, path, register)

	var payload *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandlers_RequestOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful request",
			body: RequestOTPRequest{Contact: "09123456789"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RequestOTPFunc = func(ctx context.Context, contact string) (domain.ContactType, error) {
					return domain.ContactPhone, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid contact",
			body: RequestOTPRequest{Contact: "12345"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RequestOTPFunc = func(ctx context.Context, contact string) (domain.ContactType, error) {
					return domain.ContactPhone, domain.ErrContactInvalid
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  validation.MsgPhoneInvalid,
		},
		{
			name: "resend throttled",
			body: RequestOTPRequest{Contact: "user@example.com"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RequestOTPFunc = func(ctx context.Context, contact string) (domain.ContactType, error) {
					return domain.ContactEmail, domain.ErrOTPResendThrottled
				}
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name: "duplicate submission",
			body: RequestOTPRequest{Contact: "user@example.com"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RequestOTPFunc = func(ctx context.Context, contact string) (domain.ContactType, error) {
					return domain.ContactEmail, domain.ErrOTPInFlight
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing contact field",
			body:           map[string]string{},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), mocks.NewMockAuditLogger())

			w := performJSON(h.RequestOTP, http.MethodPost, "/auth/login/otp", tt.body, false)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				body := decodeBody(t, w)
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestAuthHandlers_RequestOTP_SuccessBody(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RequestOTPFunc = func(ctx context.Context, contact string) (domain.ContactType, error) {
		return domain.ContactPhone, nil
	}
	h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), mocks.NewMockAuditLogger())

	w := performJSON(h.RequestOTP, http.MethodPost, "/auth/login/otp", RequestOTPRequest{Contact: "9123456789"}, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "phone", data["type"])
	assert.Equal(t, "09123456789", data["display_contact"])
	assert.Equal(t, float64(147), data["resend_after"])
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "successful verification",
			body:           VerifyOTPRequest{Contact: "user@example.com", Code: "1234"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "malformed code",
			body: VerifyOTPRequest{Contact: "user@example.com", Code: "12"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPFunc = func(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPMalformed
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "no outstanding challenge",
			body: VerifyOTPRequest{Contact: "user@example.com", Code: "1234"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPFunc = func(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "max attempts exceeded",
			body: VerifyOTPRequest{Contact: "user@example.com", Code: "1234"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPFunc = func(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPMaxAttempts
				}
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name: "wrong code",
			body: VerifyOTPRequest{Contact: "user@example.com", Code: "0000"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPFunc = func(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPInvalid
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), mocks.NewMockAuditLogger())

			w := performJSON(h.VerifyOTP, http.MethodPost, "/auth/otp/verify", tt.body, false)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandlers_VerifyOTP_ResultBody(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), mocks.NewMockAuditLogger())

	w := performJSON(h.VerifyOTP, http.MethodPost, "/auth/otp/verify", VerifyOTPRequest{Contact: "user@example.com", Code: "1234"}, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "mock_access_token", data["access_token"])
	assert.Equal(t, "mock_refresh_token", data["refresh_token"])
	assert.Equal(t, "Bearer", data["token_type"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "mock_profile_id", user["id"])
	assert.Equal(t, "email", user["authMethod"])
	assert.Equal(t, false, user["isGoogleUser"])
}

func TestAuthHandlers_GoogleSignIn(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), mocks.NewMockAuditLogger())

	w := performJSON(h.GoogleSignIn, http.MethodPost, "/auth/google", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, true, user["isGoogleUser"])
	assert.Equal(t, true, user["hasCompletedEmailPhoneStep"])
}

func TestAuthHandlers_Logout(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var loggedOutSession string
	authSvc.LogoutFunc = func(ctx context.Context, sessionID string) error {
		loggedOutSession = sessionID
		return nil
	}
	audit := mocks.NewMockAuditLogger()
	h := NewAuthHandlers(authSvc, mocks.NewMockProfileService(), audit)

	w := performJSON(h.Logout, http.MethodPost, "/auth/logout", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", loggedOutSession)

	events := audit.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.LogoutEvent, events[0].EventType)

	// Without the session context the request is rejected.
	w = performJSON(h.Logout, http.MethodPost, "/auth/logout", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Me(t *testing.T) {
	profileSvc := mocks.NewMockProfileService()
	profileSvc.GetFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: id, Name: "آرش", AuthMethod: domain.AuthMethodEmail}, nil
	}
	h := NewAuthHandlers(mocks.NewMockAuthService(), profileSvc, mocks.NewMockAuditLogger())

	w := performJSON(h.Me, http.MethodGet, "/auth/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "p1", data["id"])
	assert.Equal(t, "آرش", data["name"])

	// Missing profile maps to 404.
	profileSvc.GetFunc = func(ctx context.Context, id string) (*domain.UserProfile, error) {
		return nil, domain.ErrProfileNotFound
	}
	w = performJSON(h.Me, http.MethodGet, "/auth/me", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
