package domain

// OnboardingStep is a value, not a stored entity: one screen of the signup
// wizard. Steps are compared and ordered through the canonical sequence below.
type OnboardingStep string

const (
	StepLifeImprovement   OnboardingStep = "life-improvement"
	StepDailyReadingTime  OnboardingStep = "daily-reading-time"
	StepNameInput         OnboardingStep = "name-input"
	StepAgeSelection      OnboardingStep = "age-selection"
	StepEmailInput        OnboardingStep = "email-input"
	StepSignupOTP         OnboardingStep = "signup-otp-verification"
	StepPlatformDiscovery OnboardingStep = "platform-discovery"
	StepSignupSuccess     OnboardingStep = "signup-success"
)

// StepOrder is the canonical forward order of the onboarding wizard.
// Navigation, skipping and progress are all derived from this single table.
var StepOrder = []OnboardingStep{
	StepLifeImprovement,
	StepDailyReadingTime,
	StepNameInput,
	StepAgeSelection,
	StepEmailInput,
	StepSignupOTP,
	StepPlatformDiscovery,
	StepSignupSuccess,
}

// ParseStep validates a step name coming off the wire.
func ParseStep(s string) (OnboardingStep, error) {
	step := OnboardingStep(s)
	for _, known := range StepOrder {
		if step == known {
			return step, nil
		}
	}
	return "", ErrStepUnknown
}
