package services

import (
	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// FlowServiceImpl implements domain.FlowService. Forward navigation, back
// navigation and progress all derive from one requiredFor table so they can
// never drift out of sync.
type FlowServiceImpl struct{}

// NewFlowService creates the onboarding flow controller.
func NewFlowService() domain.FlowService {
	return &FlowServiceImpl{}
}

// stepRequired is the single skip table: a step is part of a profile's
// sequence iff its predicate holds. Only the contact-capture and OTP steps
// are conditional; Google-authenticated profiles skip both.
var stepRequired = map[domain.OnboardingStep]func(googleUser bool) bool{
	domain.StepLifeImprovement:   func(bool) bool { return true },
	domain.StepDailyReadingTime:  func(bool) bool { return true },
	domain.StepNameInput:         func(bool) bool { return true },
	domain.StepAgeSelection:      func(bool) bool { return true },
	domain.StepEmailInput:        func(googleUser bool) bool { return !googleUser },
	domain.StepSignupOTP:         func(googleUser bool) bool { return !googleUser },
	domain.StepPlatformDiscovery: func(bool) bool { return true },
	domain.StepSignupSuccess:     func(bool) bool { return true },
}

// isGoogle is the conservative profile read: a missing profile or missing
// flag means the non-Google path.
func isGoogle(profile *domain.UserProfile) bool {
	return profile != nil && profile.IsGoogleUser
}

// effectiveSequence returns the skip-filtered step sequence for a profile.
func effectiveSequence(profile *domain.UserProfile) []domain.OnboardingStep {
	google := isGoogle(profile)
	seq := make([]domain.OnboardingStep, 0, len(domain.StepOrder))
	for _, step := range domain.StepOrder {
		if stepRequired[step](google) {
			seq = append(seq, step)
		}
	}
	return seq
}

func indexOf(step domain.OnboardingStep, seq []domain.OnboardingStep) int {
	for i, s := range seq {
		if s == step {
			return i
		}
	}
	return -1
}

// NextStep implements domain.FlowService.
func (f *FlowServiceImpl) NextStep(step domain.OnboardingStep, profile *domain.UserProfile) (domain.OnboardingStep, error) {
	if indexOf(step, domain.StepOrder) < 0 {
		return "", domain.ErrStepUnknown
	}
	seq := effectiveSequence(profile)
	i := indexOf(step, seq)
	if i < 0 {
		// Step exists but is skipped for this profile: resume from the
		// nearest following step in its sequence.
		return resumeForward(step, seq)
	}
	if i == len(seq)-1 {
		return "", domain.ErrNoNextStep
	}
	return seq[i+1], nil
}

// PreviousStep implements domain.FlowService. Back navigation mirrors the
// forward skip rules exactly, so a Google user is never routed backward into
// the contact or OTP screens.
func (f *FlowServiceImpl) PreviousStep(step domain.OnboardingStep, profile *domain.UserProfile) (domain.OnboardingStep, error) {
	if indexOf(step, domain.StepOrder) < 0 {
		return "", domain.ErrStepUnknown
	}
	seq := effectiveSequence(profile)
	i := indexOf(step, seq)
	if i < 0 {
		return resumeBackward(step, seq)
	}
	if i == 0 {
		return "", domain.ErrNoPreviousStep
	}
	return seq[i-1], nil
}

// resumeForward finds the first effective step after a skipped one.
func resumeForward(step domain.OnboardingStep, seq []domain.OnboardingStep) (domain.OnboardingStep, error) {
	canonical := indexOf(step, domain.StepOrder)
	for _, candidate := range seq {
		if indexOf(candidate, domain.StepOrder) > canonical {
			return candidate, nil
		}
	}
	return "", domain.ErrNoNextStep
}

// resumeBackward finds the last effective step before a skipped one.
func resumeBackward(step domain.OnboardingStep, seq []domain.OnboardingStep) (domain.OnboardingStep, error) {
	canonical := indexOf(step, domain.StepOrder)
	for i := len(seq) - 1; i >= 0; i-- {
		if indexOf(seq[i], domain.StepOrder) < canonical {
			return seq[i], nil
		}
	}
	return "", domain.ErrNoPreviousStep
}

// StepNumber implements domain.FlowService: the 1-based ordinal of a step
// within the effective sequence. Steps a profile type never visits are not
// counted.
func (f *FlowServiceImpl) StepNumber(step domain.OnboardingStep, profile *domain.UserProfile) (int, error) {
	if indexOf(step, domain.StepOrder) < 0 {
		return 0, domain.ErrStepUnknown
	}
	i := indexOf(step, effectiveSequence(profile))
	if i < 0 {
		return 0, domain.ErrStepNotInSequence
	}
	return i + 1, nil
}

// TotalSteps implements domain.FlowService: 6 for Google profiles, 8
// otherwise, derived from the table rather than hard-coded.
func (f *FlowServiceImpl) TotalSteps(profile *domain.UserProfile) int {
	return len(effectiveSequence(profile))
}
