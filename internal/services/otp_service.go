package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/validation"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Codes are stored hashed; the plaintext leaves the process only through the
// notification channel.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	hasher          domain.CodeHasher
	redisClient     *redis.Client
	config          OTPConfig
}

// OTPConfig controls challenge lifetime and verification behavior.
type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
	// AcceptAny reproduces the reference backend: any well-formed code
	// verifies an outstanding challenge. Off, codes are compared by hash.
	AcceptAny bool
}

// NewOTPService creates a new Redis-based OTP service.
func NewOTPService(notificationSvc domain.NotificationService, hasher domain.CodeHasher, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	if config.Length <= 0 {
		config.Length = validation.OTPCodeLength
	}
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		hasher:          hasher,
		redisClient:     redisClient,
		config:          config,
	}
}

func challengeKey(contact string) string { return "otp:" + contact }
func resendKey(contact string) string    { return "otp:res:" + contact }
func attemptsKey(contact string) string  { return "otp:att:" + contact }

// Generate implements domain.OTPService: issues a fresh challenge for the
// contact, honoring the resend throttle, and delivers the code over the
// channel matching the contact type.
func (s *OTPServiceImpl) Generate(ctx context.Context, contact string, channel domain.ContactType, profileID string) (*domain.OTPChallenge, error) {
	if canResend, waitTime, _ := s.CanResend(ctx, contact); !canResend {
		return nil, fmt.Errorf("%w: %d seconds remaining", domain.ErrOTPResendThrottled, waitTime)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}
	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash OTP code: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Contact:   contact,
		Channel:   channel,
		CodeHash:  codeHash,
		ProfileID: profileID,
		ExpiresAt: time.Now().Add(s.config.TTL),
		Attempts:  0,
	}

	payload, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge: %w", err)
	}
	if err := s.redisClient.Set(ctx, challengeKey(contact), payload, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store challenge in Redis: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey(contact), 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey(contact), 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	if err := s.deliver(contact, channel, code); err != nil {
		// Clean up Redis entries if delivery fails.
		s.redisClient.Del(ctx, challengeKey(contact), attemptsKey(contact), resendKey(contact))
		return nil, fmt.Errorf("failed to deliver OTP: %w", err)
	}

	return challenge, nil
}

// Verify implements domain.OTPService. Format is gated locally before any
// lookup: a submission that is not exactly four digits is rejected without
// touching storage, the same check every verification screen enforces.
func (s *OTPServiceImpl) Verify(ctx context.Context, contact, code string) (bool, error) {
	if res := validation.ValidateOTP(code); !res.IsValid {
		return false, domain.ErrOTPMalformed
	}

	attempts, err := s.redisClient.Incr(ctx, attemptsKey(contact)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, challengeKey(contact), attemptsKey(contact))
		return false, domain.ErrOTPMaxAttempts
	}

	payload, err := s.redisClient.Get(ctx, challengeKey(contact)).Result()
	if err == redis.Nil {
		return false, domain.ErrOTPNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get challenge from Redis: %w", err)
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal([]byte(payload), &challenge); err != nil {
		return false, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	if !s.config.AcceptAny && !s.hasher.Verify(challenge.CodeHash, code) {
		return false, domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, challengeKey(contact), attemptsKey(contact))
	return true, nil
}

// CanResend implements domain.OTPService with Redis-based throttling.
func (s *OTPServiceImpl) CanResend(ctx context.Context, contact string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(contact)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// deliver routes the code to SMS or email depending on the contact type.
func (s *OTPServiceImpl) deliver(contact string, channel domain.ContactType, code string) error {
	message := fmt.Sprintf("کد تأیید بوکا: %s", code)
	if channel == domain.ContactPhone {
		return s.notificationSvc.SendSMS(validation.FormatPhoneNumber(contact), message)
	}
	return s.notificationSvc.SendEmail(contact, "کد تأیید بوکا", message)
}

// generateCode produces a fixed-length random digit string.
func (s *OTPServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
