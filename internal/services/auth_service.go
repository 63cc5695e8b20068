package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/validation"
)

// AuthConfig holds the knobs of the passwordless flows.
type AuthConfig struct {
	SessionTTL      time.Duration
	AccessTTL       time.Duration
	GoogleMockEmail string
	GoogleMockName  string
	// MockLatency simulates the upstream round-trip before a mocked call
	// resolves. Zero in tests.
	MockLatency time.Duration
}

// AuthServiceImpl implements domain.AuthService: passwordless OTP login and
// the mocked Google sign-in. A per-contact in-flight guard rejects duplicate
// submissions while a simulated call is pending.
type AuthServiceImpl struct {
	profileSvc  domain.ProfileService
	otpSvc      domain.OTPService
	sessionRepo domain.SessionRepository
	tokenSvc    domain.TokenService
	config      AuthConfig

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAuthService creates a new auth service.
func NewAuthService(
	profileSvc domain.ProfileService,
	otpSvc domain.OTPService,
	sessionRepo domain.SessionRepository,
	tokenSvc domain.TokenService,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		profileSvc:  profileSvc,
		otpSvc:      otpSvc,
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
		config:      config,
		inFlight:    make(map[string]struct{}),
	}
}

// RequestOTP implements domain.AuthService: classifies and validates the
// contact, then issues a challenge over the matching channel. The profile is
// not created here; it materializes on successful verification, as in the
// reference flow.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, contact string) (domain.ContactType, error) {
	res := validation.ValidateEmailOrPhone(contact)
	if !res.IsValid {
		return res.Type, fmt.Errorf("%w: %s", domain.ErrContactInvalid, res.Error)
	}

	if !s.acquire(contact) {
		return res.Type, domain.ErrOTPInFlight
	}
	defer s.release(contact)

	if err := s.simulateLatency(ctx); err != nil {
		return res.Type, err
	}

	if _, err := s.otpSvc.Generate(ctx, contact, res.Type, ""); err != nil {
		return res.Type, err
	}
	return res.Type, nil
}

// VerifyOTP implements domain.AuthService: a verified challenge creates the
// profile (authMethod from the contact type) and opens a session.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, contact, code string) (*domain.AuthResult, error) {
	res := validation.ValidateEmailOrPhone(contact)
	if !res.IsValid {
		return nil, fmt.Errorf("%w: %s", domain.ErrContactInvalid, res.Error)
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	ok, err := s.otpSvc.Verify(ctx, contact, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrOTPInvalid
	}

	patch := domain.ProfilePatch{}
	switch res.Type {
	case domain.ContactPhone:
		method := domain.AuthMethodPhone
		patch.AuthMethod = &method
		patch.Phone = &contact
	default:
		method := domain.AuthMethodEmail
		patch.AuthMethod = &method
		patch.Email = &contact
	}
	completed := true
	patch.HasCompletedEmailPhoneStep = &completed

	profile, err := s.profileSvc.Login(ctx, patch)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, profile)
}

// GoogleSignIn implements domain.AuthService with the fixed mock identity.
func (s *AuthServiceImpl) GoogleSignIn(ctx context.Context) (*domain.AuthResult, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	profile, err := s.profileSvc.SetGoogleAuth(ctx, s.config.GoogleMockEmail, s.config.GoogleMockName)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, profile)
}

// Refresh implements domain.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	profile, err := s.profileSvc.Get(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(profile.ID, "user", session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService: drops the session and clears the
// durable profile record, matching the client-side logout semantics.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err == nil {
		if err := s.profileSvc.Logout(ctx, session.ProfileID); err != nil {
			return err
		}
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// StartOnboarding implements domain.AuthService: the "get started" action.
// Creates a defaulted profile and a session so the wizard endpoints have an
// identity to hang state on, before any verification has happened.
func (s *AuthServiceImpl) StartOnboarding(ctx context.Context) (*domain.AuthResult, error) {
	profile, err := s.profileSvc.Update(ctx, "", domain.ProfilePatch{})
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, profile)
}

func (s *AuthServiceImpl) openSession(ctx context.Context, profile *domain.UserProfile) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		ExpiresAt: time.Now().Add(s.config.SessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(profile.ID, "user", session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(profile.ID, "user", session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

func (s *AuthServiceImpl) acquire(contact string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[contact]; busy {
		return false
	}
	s.inFlight[contact] = struct{}{}
	return true
}

func (s *AuthServiceImpl) release(contact string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, contact)
}

// simulateLatency waits out the configured mock round-trip, honoring
// cancellation.
func (s *AuthServiceImpl) simulateLatency(ctx context.Context) error {
	if s.config.MockLatency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.config.MockLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
