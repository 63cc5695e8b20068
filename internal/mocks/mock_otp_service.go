package mocks

import (
	"context"
	"time"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, contact string, channel domain.ContactType, profileID string) (*domain.OTPChallenge, error)
	VerifyFunc    func(ctx context.Context, contact, code string) (bool, error)
	CanResendFunc func(ctx context.Context, contact string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues a challenge for the contact
func (m *MockOTPService) Generate(ctx context.Context, contact string, channel domain.ContactType, profileID string) (*domain.OTPChallenge, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, contact, channel, profileID)
	}
	// Default behavior: return a mock challenge
	return &domain.OTPChallenge{
		Contact:   contact,
		Channel:   channel,
		ProfileID: profileID,
		ExpiresAt: time.Now().Add(147 * time.Second),
	}, nil
}

// Verify checks a submitted code
func (m *MockOTPService) Verify(ctx context.Context, contact, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, contact, code)
	}
	// Default behavior: accept
	return true, nil
}

// CanResend reports whether the resend window has elapsed
func (m *MockOTPService) CanResend(ctx context.Context, contact string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, contact)
	}
	// Default behavior: resend allowed
	return true, 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
