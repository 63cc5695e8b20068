package domain

import "time"

// AuthMethod identifies how a profile was created. All non-Google
// authentication is passwordless (OTP only).
type AuthMethod string

const (
	AuthMethodGoogle AuthMethod = "google"
	AuthMethodEmail  AuthMethod = "email"
	AuthMethodPhone  AuthMethod = "phone"
)

// ContactType classifies a contact string submitted during login or the
// onboarding contact step.
type ContactType string

const (
	ContactEmail ContactType = "email"
	ContactPhone ContactType = "phone"
)

// UserProfile is the single durable entity. The JSON shape is the stored
// record format (key booka_user:<id>).
type UserProfile struct {
	ID                         string     `json:"id"`
	Email                      string     `json:"email,omitempty"`
	Phone                      string     `json:"phone,omitempty"`
	Name                       string     `json:"name,omitempty"`
	GoogleEmail                string     `json:"googleEmail,omitempty"`
	AuthMethod                 AuthMethod `json:"authMethod"`
	IsGoogleUser               bool       `json:"isGoogleUser"`
	HasCompletedEmailPhoneStep bool       `json:"hasCompletedEmailPhoneStep"`
	CreatedAt                  time.Time  `json:"createdAt"`
	UpdatedAt                  time.Time  `json:"updatedAt"`
}

// ProfilePatch is a partial update; nil fields are left untouched.
type ProfilePatch struct {
	ID                         *string
	Email                      *string
	Phone                      *string
	Name                       *string
	GoogleEmail                *string
	AuthMethod                 *AuthMethod
	IsGoogleUser               *bool
	HasCompletedEmailPhoneStep *bool
}

// OTPChallenge is the stored state of one outstanding verification code.
// Ephemeral: lives in redis under the challenge TTL, never persisted beyond it.
type OTPChallenge struct {
	Contact   string      `json:"contact"`
	Channel   ContactType `json:"channel"`
	CodeHash  string      `json:"code_hash"`
	ProfileID string      `json:"profile_id"`
	ExpiresAt time.Time   `json:"expires_at"`
	Attempts  int         `json:"attempts"`
}

// Session represents an authenticated session backing a JWT pair.
type Session struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult represents a successful OTP verification or Google sign-in.
type AuthResult struct {
	Profile      *UserProfile
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// TokenClaims represents JWT token claims.
type TokenClaims struct {
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TransactionStatus is the settlement state of a payment.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is one payment-history row.
type Transaction struct {
	ID            string            `json:"id"`
	ProfileID     string            `json:"profile_id"`
	Date          time.Time         `json:"date"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PlanName      string            `json:"plan_name"`
	PaymentMethod string            `json:"payment_method"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description,omitempty"`
}

// BillingCycle selects monthly or yearly pricing.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// PlanPrice holds both billing-cycle prices in toman.
type PlanPrice struct {
	Monthly int64 `json:"monthly"`
	Yearly  int64 `json:"yearly"`
}

// Plan is a premium subscription tier.
type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       PlanPrice `json:"price"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	MaxBooks    int       `json:"max_books,omitempty"`
	SupportType string    `json:"support_type"`
	Popular     bool      `json:"popular,omitempty"`
	Recommended bool      `json:"recommended,omitempty"`
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the profile's current premium subscription.
type Subscription struct {
	PlanID          string             `json:"plan_id"`
	PlanName        string             `json:"plan_name"`
	Status          SubscriptionStatus `json:"status"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	NextBillingDate time.Time          `json:"next_billing_date,omitempty"`
	BillingCycle    BillingCycle       `json:"billing_cycle"`
	Amount          int64              `json:"amount"`
}
