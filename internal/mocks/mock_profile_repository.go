package mocks

import (
	"context"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// MockProfileRepository implements domain.ProfileRepository interface for testing
type MockProfileRepository struct {
	SaveFunc       func(ctx context.Context, profile *domain.UserProfile) error
	FindFunc       func(ctx context.Context, id string) (*domain.UserProfile, error)
	DeleteFunc     func(ctx context.Context, id string) error
	SaveAvatarFunc func(ctx context.Context, profileID, avatar string) error
	FindAvatarFunc func(ctx context.Context, profileID string) (string, error)
}

// NewMockProfileRepository creates a new MockProfileRepository with default behaviors
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

// Save persists a profile record
func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, profile)
	}
	// Default behavior: success
	return nil
}

// Find loads a profile record
func (m *MockProfileRepository) Find(ctx context.Context, id string) (*domain.UserProfile, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrProfileNotFound
}

// Delete removes a profile record
func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// SaveAvatar persists the avatar selection
func (m *MockProfileRepository) SaveAvatar(ctx context.Context, profileID, avatar string) error {
	if m.SaveAvatarFunc != nil {
		return m.SaveAvatarFunc(ctx, profileID, avatar)
	}
	// Default behavior: success
	return nil
}

// FindAvatar loads the avatar selection
func (m *MockProfileRepository) FindAvatar(ctx context.Context, profileID string) (string, error) {
	if m.FindAvatarFunc != nil {
		return m.FindAvatarFunc(ctx, profileID)
	}
	// Default behavior: not set
	return "", domain.ErrAvatarNotFound
}

var _ domain.ProfileRepository = (*MockProfileRepository)(nil)
