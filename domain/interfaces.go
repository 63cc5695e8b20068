package domain

import "context"

// ProfileRepository defines durable storage for the user profile record and
// the avatar preference. A corrupt stored record is reported as
// ErrProfileCorrupt so callers can downgrade it to "no profile".
type ProfileRepository interface {
	Save(ctx context.Context, profile *UserProfile) error
	Find(ctx context.Context, id string) (*UserProfile, error)
	Delete(ctx context.Context, id string) error
	SaveAvatar(ctx context.Context, profileID, avatar string) error
	FindAvatar(ctx context.Context, profileID string) (string, error)
}

// SessionRepository defines session data access operations.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// TransactionRepository defines payment-history data access. Seed loads the
// reference history into an empty table at boot.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByProfile(ctx context.Context, profileID string) ([]Transaction, error)
	Count(ctx context.Context) (int64, error)
	Seed(ctx context.Context) error
}

// ProfileService is the single source of truth for the current user's
// profile. Every mutation persists synchronously; no operation fails because
// a profile is missing.
type ProfileService interface {
	Login(ctx context.Context, patch ProfilePatch) (*UserProfile, error)
	Update(ctx context.Context, id string, patch ProfilePatch) (*UserProfile, error)
	SetGoogleAuth(ctx context.Context, email, name string) (*UserProfile, error)
	Logout(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*UserProfile, error)
	MarkEmailPhoneCompleted(ctx context.Context, id string) (*UserProfile, error)
	SetAvatar(ctx context.Context, id, avatar string) error
	GetAvatar(ctx context.Context, id string) (string, error)
}

// FlowService decides step order, skips and progress for the onboarding
// wizard. Pure functions of (step, profile); a nil profile is treated as a
// non-Google user.
type FlowService interface {
	NextStep(step OnboardingStep, profile *UserProfile) (OnboardingStep, error)
	PreviousStep(step OnboardingStep, profile *UserProfile) (OnboardingStep, error)
	StepNumber(step OnboardingStep, profile *UserProfile) (int, error)
	TotalSteps(profile *UserProfile) int
}

// OTPService manages outstanding verification challenges.
type OTPService interface {
	Generate(ctx context.Context, contact string, channel ContactType, profileID string) (*OTPChallenge, error)
	Verify(ctx context.Context, contact, code string) (bool, error)
	CanResend(ctx context.Context, contact string) (bool, int64, error)
}

// AuthService defines the passwordless authentication flows.
type AuthService interface {
	StartOnboarding(ctx context.Context) (*AuthResult, error)
	RequestOTP(ctx context.Context, contact string) (ContactType, error)
	VerifyOTP(ctx context.Context, contact, code string) (*AuthResult, error)
	GoogleSignIn(ctx context.Context) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// PaymentService serves the plans/transactions/subscription surface. All
// purchase paths are simulated with a bounded delay and a fixed result shape.
type PaymentService interface {
	Plans() []Plan
	Transactions(ctx context.Context, profileID string) ([]Transaction, error)
	ExportCSV(ctx context.Context, profileID string) ([]byte, error)
	Subscription(ctx context.Context, profileID string) (*Subscription, error)
	Purchase(ctx context.Context, profileID, planID string, cycle BillingCycle) (*Subscription, error)
	Cancel(ctx context.Context, profileID string) (*Subscription, error)
}

// TokenService defines token operations.
type TokenService interface {
	GenerateAccessToken(profileID, role, sessionID string) (string, error)
	GenerateRefreshToken(profileID, role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines OTP delivery channels.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// CodeHasher hashes OTP codes before they are stored.
type CodeHasher interface {
	Hash(code string) (string, error)
	Verify(hashedCode, code string) bool
}
