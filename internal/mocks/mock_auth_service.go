package mocks

import (
	"context"
	"time"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	StartOnboardingFunc func(ctx context.Context) (*domain.AuthResult, error)
	RequestOTPFunc      func(ctx context.Context, contact string) (domain.ContactType, error)
	VerifyOTPFunc       func(ctx context.Context, contact, code string) (*domain.AuthResult, error)
	GoogleSignInFunc    func(ctx context.Context) (*domain.AuthResult, error)
	RefreshFunc         func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sessionID string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultMockAuthResult() *domain.AuthResult {
	now := time.Now()
	return &domain.AuthResult{
		Profile: &domain.UserProfile{
			ID:         "mock_profile_id",
			AuthMethod: domain.AuthMethodEmail,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    900,
	}
}

// StartOnboarding creates a fresh profile and session
func (m *MockAuthService) StartOnboarding(ctx context.Context) (*domain.AuthResult, error) {
	if m.StartOnboardingFunc != nil {
		return m.StartOnboardingFunc(ctx)
	}
	// Default behavior: return a mock result
	return defaultMockAuthResult(), nil
}

// RequestOTP classifies the contact and issues a challenge
func (m *MockAuthService) RequestOTP(ctx context.Context, contact string) (domain.ContactType, error) {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, contact)
	}
	// Default behavior: treated as email
	return domain.ContactEmail, nil
}

// VerifyOTP verifies a challenge and opens a session
func (m *MockAuthService) VerifyOTP(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, contact, code)
	}
	// Default behavior: return a mock result
	return defaultMockAuthResult(), nil
}

// GoogleSignIn signs in with the mock google identity
func (m *MockAuthService) GoogleSignIn(ctx context.Context) (*domain.AuthResult, error) {
	if m.GoogleSignInFunc != nil {
		return m.GoogleSignInFunc(ctx)
	}
	// Default behavior: return a google mock result
	result := defaultMockAuthResult()
	result.Profile.AuthMethod = domain.AuthMethodGoogle
	result.Profile.IsGoogleUser = true
	result.Profile.HasCompletedEmailPhoneStep = true
	return result, nil
}

// Refresh exchanges a refresh token for a new access token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: return a mock result
	return defaultMockAuthResult(), nil
}

// Logout drops the session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)
