// Package validation holds the pure contact-format checks that gate the
// login and onboarding contact steps. Error messages are the Persian strings
// shown to the user; the functions are total and side-effect free.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// User-facing messages (fa-IR).
const (
	MsgEmailEmpty       = "ایمیل نمی‌تواند خالی باشد"
	MsgEmailInvalid     = "لطفاً یک ایمیل معتبر وارد کنید"
	MsgPhoneEmpty       = "شماره تلفن نمی‌تواند خالی باشد"
	MsgPhoneInvalid     = "شماره تلفن باید ۱۱ رقم و با ۰۹ شروع شود"
	MsgContactEmpty     = "ایمیل یا شماره تلفن نمی‌تواند خالی باشد"
	MsgOTPEmpty         = "لطفاً کد تأیید را وارد کنید"
	MsgOTPInvalidLength = "کد تأیید باید ۴ رقم باشد"
)

// OTPCodeLength is the fixed length of every verification code.
const OTPCodeLength = 4

var (
	// Validate is a shared validator instance; iranphone is registered for
	// gin binding tags as well.
	Validate *validator.Validate

	phoneRe    = regexp.MustCompile(`^09[0-9]{9}$`)
	bareTenRe  = regexp.MustCompile(`^[0-9]{10}$`)
	otpCodeRe  = regexp.MustCompile(`^[0-9]{4}$`)
	whitespace = regexp.MustCompile(`\s+`)
)

func init() {
	Validate = validator.New()
	if err := Validate.RegisterValidation("iranphone", validateIranPhone); err != nil {
		panic("failed to register iranphone validator: " + err.Error())
	}
}

// validateIranPhone reports whether a field is an 11-digit 09-prefixed number.
func validateIranPhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

// RegisterBinding installs the custom validators on an external engine, such
// as gin's binding validator.
func RegisterBinding(v *validator.Validate) error {
	return v.RegisterValidation("iranphone", validateIranPhone)
}

// Result is the outcome of a contact-format check. Never an error value:
// invalid input is a normal result.
type Result struct {
	IsValid bool               `json:"isValid"`
	Type    domain.ContactType `json:"type,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// ValidateEmail checks a standard local@domain.tld shape. Empty input yields
// a distinct message from a malformed one.
func ValidateEmail(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return Result{IsValid: false, Error: MsgEmailEmpty}
	}
	if err := Validate.Var(trimmed, "email"); err != nil {
		return Result{IsValid: false, Type: domain.ContactEmail, Error: MsgEmailInvalid}
	}
	return Result{IsValid: true, Type: domain.ContactEmail}
}

// ValidatePhone checks the Iranian mobile format: exactly 11 digits starting
// with 09.
func ValidatePhone(phone string) Result {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return Result{IsValid: false, Error: MsgPhoneEmpty}
	}
	if !phoneRe.MatchString(trimmed) {
		return Result{IsValid: false, Type: domain.ContactPhone, Error: MsgPhoneInvalid}
	}
	return Result{IsValid: true, Type: domain.ContactPhone}
}

// ValidateEmailOrPhone classifies by presence of '@': with it the input is
// validated as an email, without it as a phone number. Empty input
// short-circuits with the combined message before classification.
func ValidateEmailOrPhone(input string) Result {
	if strings.TrimSpace(input) == "" {
		return Result{IsValid: false, Error: MsgContactEmpty}
	}
	if strings.Contains(input, "@") {
		return ValidateEmail(input)
	}
	return ValidatePhone(input)
}

// ValidateOTP checks that a submitted code is exactly four digits.
func ValidateOTP(code string) Result {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Result{IsValid: false, Error: MsgOTPEmpty}
	}
	if !otpCodeRe.MatchString(trimmed) {
		return Result{IsValid: false, Error: MsgOTPInvalidLength}
	}
	return Result{IsValid: true}
}

// FormatPhoneNumber normalizes a phone string for display only; no
// validation happens here. +98- and 0-prefixed numbers pass through, a bare
// 10-digit number gets a leading 0, everything else is returned unchanged.
func FormatPhoneNumber(phone string) string {
	clean := whitespace.ReplaceAllString(strings.TrimSpace(phone), "")
	if strings.HasPrefix(clean, "+98") {
		return clean
	}
	if strings.HasPrefix(clean, "0") {
		return clean
	}
	if bareTenRe.MatchString(clean) {
		return "0" + clean
	}
	return clean
}

// DisplayContact returns the string shown on the verification screen: phones
// are normalized, emails pass through.
func DisplayContact(contact string, t domain.ContactType) string {
	if t == domain.ContactPhone {
		return FormatPhoneNumber(contact)
	}
	return contact
}
