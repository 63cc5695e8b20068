package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// OTP events
	OTPRequestedEvent    AuditEventType = "OTP_REQUESTED"
	OTPVerifiedEvent     AuditEventType = "OTP_VERIFIED"
	OTPVerifyFailedEvent AuditEventType = "OTP_VERIFICATION_FAILED"

	// Authentication events
	LoginEvent      AuditEventType = "USER_LOGIN"
	GoogleAuthEvent AuditEventType = "GOOGLE_SIGNIN"
	LogoutEvent     AuditEventType = "USER_LOGOUT"

	// Onboarding events
	OnboardingStartedEvent   AuditEventType = "ONBOARDING_STARTED"
	StepCompletedEvent       AuditEventType = "ONBOARDING_STEP_COMPLETED"
	OnboardingCompletedEvent AuditEventType = "ONBOARDING_COMPLETED"

	// Payment events
	PurchaseEvent            AuditEventType = "PLAN_PURCHASED"
	SubscriptionCancelEvent  AuditEventType = "SUBSCRIPTION_CANCELLED"
	TransactionsExportsEvent AuditEventType = "TRANSACTIONS_EXPORTED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	ProfileID string         `json:"profile_id,omitempty"`
	Contact   string         `json:"contact,omitempty"`
	Step      OnboardingStep `json:"step,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// AuditLogger records business events.
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, profileID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		ProfileID: profileID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithContact sets the contact field
func (e *AuditEvent) WithContact(contact string) *AuditEvent {
	e.Contact = contact
	return e
}

// WithStep sets the onboarding step field
func (e *AuditEvent) WithStep(step OnboardingStep) *AuditEvent {
	e.Step = step
	return e
}

// WithSession sets the session field
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}
