package domain

import "errors"

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileCorrupt  = errors.New("stored profile record is corrupt")
	ErrAvatarNotFound  = errors.New("avatar not found")
)

// Onboarding flow errors
var (
	ErrStepUnknown       = errors.New("unknown onboarding step")
	ErrNoNextStep        = errors.New("no step after the final step")
	ErrNoPreviousStep    = errors.New("no step before the initial step")
	ErrStepNotInSequence = errors.New("step is not part of this profile's sequence")
)

// OTP errors
var (
	ErrOTPExpired         = errors.New("otp has expired")
	ErrOTPInvalid         = errors.New("invalid otp code")
	ErrOTPMalformed       = errors.New("otp code must be exactly 4 digits")
	ErrOTPMaxAttempts     = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound        = errors.New("otp not found")
	ErrOTPResendThrottled = errors.New("otp resend window has not elapsed")
	ErrOTPInFlight        = errors.New("an otp request for this contact is already in flight")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Payment errors
var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("no subscription for profile")
	ErrPurchaseInFlight     = errors.New("a purchase for this profile is already in flight")
)

// Validation errors (contact classification surfaces messages as values, not
// errors; these cover transport-level misuse only)
var (
	ErrContactInvalid = errors.New("contact is not a valid email or phone number")
)
