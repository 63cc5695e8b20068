package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// ProfileServiceImpl implements domain.ProfileService. Every mutation writes
// the full record through the repository before returning; a corrupt stored
// record is logged and treated as absent, never surfaced.
type ProfileServiceImpl struct {
	repo   domain.ProfileRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProfileService creates the profile store service.
func NewProfileService(repo domain.ProfileRepository, logger *zap.Logger) domain.ProfileService {
	return &ProfileServiceImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// newProfileID derives an id from creation time. Uniqueness is not
// cryptographic; one profile per client makes collisions a non-concern.
func (s *ProfileServiceImpl) newProfileID() string {
	return fmt.Sprintf("%d", s.now().UnixMilli())
}

// Login implements domain.ProfileService: creates a profile from the partial
// data, authMethod defaulting to email, and overwrites any existing record.
func (s *ProfileServiceImpl) Login(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	now := s.now()
	profile := &domain.UserProfile{
		ID:         s.newProfileID(),
		AuthMethod: domain.AuthMethodEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if patch.ID != nil {
		profile.ID = *patch.ID
	}
	if patch.Email != nil {
		profile.Email = *patch.Email
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.AuthMethod != nil {
		profile.AuthMethod = *patch.AuthMethod
	}
	// isGoogleUser is derived, never taken from the patch.
	profile.IsGoogleUser = profile.AuthMethod == domain.AuthMethodGoogle
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	return profile, nil
}

// Update implements domain.ProfileService: shallow-merges onto the existing
// profile, or constructs a defaulted one when none exists. Never fails on a
// missing or corrupt record.
func (s *ProfileServiceImpl) Update(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = s.defaultsFromPatch(patch)
	} else {
		applyPatch(profile, patch)
		profile.UpdatedAt = s.now()
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	return profile, nil
}

// SetGoogleAuth implements domain.ProfileService: builds the complete Google
// profile in one atomic step. The contact-capture completion is synthesized
// with profile creation, which is what exempts Google users from that step.
func (s *ProfileServiceImpl) SetGoogleAuth(ctx context.Context, email, name string) (*domain.UserProfile, error) {
	now := s.now()
	profile := &domain.UserProfile{
		ID:                         s.newProfileID(),
		Email:                      email,
		GoogleEmail:                email,
		Name:                       name,
		AuthMethod:                 domain.AuthMethodGoogle,
		IsGoogleUser:               true,
		HasCompletedEmailPhoneStep: true,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to persist google profile: %w", err)
	}
	return profile, nil
}

// Logout implements domain.ProfileService: clears the profile record.
func (s *ProfileServiceImpl) Logout(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("failed to remove profile: %w", err)
	}
	return nil
}

// Get implements domain.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

// MarkEmailPhoneCompleted implements domain.ProfileService: sets the
// completion flag on the existing profile; a missing profile is a no-op.
func (s *ProfileServiceImpl) MarkEmailPhoneCompleted(ctx context.Context, id string) (*domain.UserProfile, error) {
	profile, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	profile.HasCompletedEmailPhoneStep = true
	profile.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	return profile, nil
}

// SetAvatar implements domain.ProfileService.
func (s *ProfileServiceImpl) SetAvatar(ctx context.Context, id, avatar string) error {
	return s.repo.SaveAvatar(ctx, id, avatar)
}

// GetAvatar implements domain.ProfileService.
func (s *ProfileServiceImpl) GetAvatar(ctx context.Context, id string) (string, error) {
	return s.repo.FindAvatar(ctx, id)
}

// ShouldSkipEmailPhoneInput is the pure derived predicate gating the contact
// and OTP steps.
func ShouldSkipEmailPhoneInput(profile *domain.UserProfile) bool {
	return profile != nil && profile.IsGoogleUser && profile.HasCompletedEmailPhoneStep
}

// load fetches a profile, downgrading "not found" and "corrupt record" to a
// nil profile. A corrupt record has already been dropped by the repository.
func (s *ProfileServiceImpl) load(ctx context.Context, id string) (*domain.UserProfile, error) {
	profile, err := s.repo.Find(ctx, id)
	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, domain.ErrProfileNotFound):
		return nil, nil
	case errors.Is(err, domain.ErrProfileCorrupt):
		s.logger.Warn("discarding corrupt stored profile", zap.String("profile_id", id))
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
}

// defaultsFromPatch builds a fresh defaulted profile overridden by the
// supplied partial fields.
func (s *ProfileServiceImpl) defaultsFromPatch(patch domain.ProfilePatch) *domain.UserProfile {
	now := s.now()
	profile := &domain.UserProfile{
		ID:         s.newProfileID(),
		AuthMethod: domain.AuthMethodEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyPatch(profile, patch)
	return profile
}

// applyPatch shallow-merges non-nil fields; last write wins.
func applyPatch(profile *domain.UserProfile, patch domain.ProfilePatch) {
	if patch.ID != nil {
		profile.ID = *patch.ID
	}
	if patch.Email != nil {
		profile.Email = *patch.Email
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.GoogleEmail != nil {
		profile.GoogleEmail = *patch.GoogleEmail
	}
	if patch.AuthMethod != nil {
		profile.AuthMethod = *patch.AuthMethod
	}
	if patch.IsGoogleUser != nil {
		profile.IsGoogleUser = *patch.IsGoogleUser
	}
	if patch.HasCompletedEmailPhoneStep != nil {
		profile.HasCompletedEmailPhoneStep = *patch.HasCompletedEmailPhoneStep
	}
}
