package mocks

import (
	"context"
	"time"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	LoginFunc                   func(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error)
	UpdateFunc                  func(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserProfile, error)
	SetGoogleAuthFunc           func(ctx context.Context, email, name string) (*domain.UserProfile, error)
	LogoutFunc                  func(ctx context.Context, id string) error
	GetFunc                     func(ctx context.Context, id string) (*domain.UserProfile, error)
	MarkEmailPhoneCompletedFunc func(ctx context.Context, id string) (*domain.UserProfile, error)
	SetAvatarFunc               func(ctx context.Context, id, avatar string) error
	GetAvatarFunc               func(ctx context.Context, id string) (string, error)
}

// NewMockProfileService creates a new MockProfileService with default behaviors
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

func defaultMockProfile(id string) *domain.UserProfile {
	now := time.Now()
	return &domain.UserProfile{
		ID:         id,
		AuthMethod: domain.AuthMethodEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Login creates a profile from partial data
func (m *MockProfileService) Login(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, patch)
	}
	// Default behavior: return a fresh mock profile
	return defaultMockProfile("mock_profile_id"), nil
}

// Update merges partial data onto the stored profile
func (m *MockProfileService) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	// Default behavior: return a fresh mock profile
	return defaultMockProfile(id), nil
}

// SetGoogleAuth installs the google identity
func (m *MockProfileService) SetGoogleAuth(ctx context.Context, email, name string) (*domain.UserProfile, error) {
	if m.SetGoogleAuthFunc != nil {
		return m.SetGoogleAuthFunc(ctx, email, name)
	}
	// Default behavior: return a google mock profile
	profile := defaultMockProfile("mock_profile_id")
	profile.Email = email
	profile.GoogleEmail = email
	profile.Name = name
	profile.AuthMethod = domain.AuthMethodGoogle
	profile.IsGoogleUser = true
	profile.HasCompletedEmailPhoneStep = true
	return profile, nil
}

// Logout clears the profile record
func (m *MockProfileService) Logout(ctx context.Context, id string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Get loads the profile record
func (m *MockProfileService) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrProfileNotFound
}

// MarkEmailPhoneCompleted sets the contact-capture completion flag
func (m *MockProfileService) MarkEmailPhoneCompleted(ctx context.Context, id string) (*domain.UserProfile, error) {
	if m.MarkEmailPhoneCompletedFunc != nil {
		return m.MarkEmailPhoneCompletedFunc(ctx, id)
	}
	// Default behavior: return the flagged mock profile
	profile := defaultMockProfile(id)
	profile.HasCompletedEmailPhoneStep = true
	return profile, nil
}

// SetAvatar stores the avatar selection
func (m *MockProfileService) SetAvatar(ctx context.Context, id, avatar string) error {
	if m.SetAvatarFunc != nil {
		return m.SetAvatarFunc(ctx, id, avatar)
	}
	// Default behavior: success
	return nil
}

// GetAvatar loads the avatar selection
func (m *MockProfileService) GetAvatar(ctx context.Context, id string) (string, error) {
	if m.GetAvatarFunc != nil {
		return m.GetAvatarFunc(ctx, id)
	}
	// Default behavior: not set
	return "", domain.ErrAvatarNotFound
}

var _ domain.ProfileService = (*MockProfileService)(nil)
