package mocks

import (
	"time"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(profileID, role, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(profileID, role, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func defaultMockClaims() *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		ProfileID: "mock_profile_id",
		Role:      "user",
		SessionID: "mock_session_id",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(profileID, role, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(profileID, role, sessionID)
	}
	// Default behavior: fixed token
	return "mock_access_token", nil
}

// GenerateRefreshToken generates a refresh token
func (m *MockTokenService) GenerateRefreshToken(profileID, role, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(profileID, role, sessionID)
	}
	// Default behavior: fixed token
	return "mock_refresh_token", nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: valid mock claims
	return defaultMockClaims(), nil
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	// Default behavior: valid mock claims
	return defaultMockClaims(), nil
}

var _ domain.TokenService = (*MockTokenService)(nil)
