package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/mocks"
)

// createOTPServiceForTest wires the service to an in-memory Redis.
func createOTPServiceForTest(t *testing.T, config OTPConfig) (domain.OTPService, *mocks.MockNotificationService, *redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	notificationSvc := mocks.NewMockNotificationService()
	svc := NewOTPService(notificationSvc, mocks.NewMockCodeHasher(), client, config)

	return svc, notificationSvc, client, mr
}

func testOTPConfig() OTPConfig {
	return OTPConfig{
		Length:       4,
		TTL:          147 * time.Second,
		MaxAttempts:  5,
		ResendWindow: 147 * time.Second,
	}
}

func TestOTPServiceImpl_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers a four digit code over sms for phones", func(t *testing.T) {
		svc, notificationSvc, client, _ := createOTPServiceForTest(t, testOTPConfig())

		var sentTo, sentMessage string
		notificationSvc.SendSMSFunc = func(to, message string) error {
			sentTo = to
			sentMessage = message
			return nil
		}

		challenge, err := svc.Generate(ctx, "09123456789", domain.ContactPhone, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if challenge.ProfileID != "p1" {
			t.Errorf("expected profile id carried, got %q", challenge.ProfileID)
		}
		if sentTo != "09123456789" {
			t.Errorf("expected sms to normalized phone, got %q", sentTo)
		}
		if sentMessage == "" {
			t.Error("expected a delivery message")
		}
		if client.Exists(ctx, "otp:09123456789").Val() != 1 {
			t.Error("expected challenge stored")
		}
	})

	t.Run("delivers over email for email contacts", func(t *testing.T) {
		svc, notificationSvc, _, _ := createOTPServiceForTest(t, testOTPConfig())

		var sentTo string
		notificationSvc.SendEmailFunc = func(to, subject, body string) error {
			sentTo = to
			return nil
		}

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sentTo != "user@example.com" {
			t.Errorf("expected email delivery, got %q", sentTo)
		}
	})

	t.Run("second request inside the resend window is throttled", func(t *testing.T) {
		svc, _, _, _ := createOTPServiceForTest(t, testOTPConfig())

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, "")
		if !errors.Is(err, domain.ErrOTPResendThrottled) {
			t.Fatalf("expected ErrOTPResendThrottled, got %v", err)
		}
	})

	t.Run("resend allowed after the window elapses", func(t *testing.T) {
		svc, _, _, mr := createOTPServiceForTest(t, testOTPConfig())

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mr.FastForward(148 * time.Second)
		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("expected resend after window, got %v", err)
		}
	})

	t.Run("delivery failure cleans up the stored challenge", func(t *testing.T) {
		svc, notificationSvc, client, _ := createOTPServiceForTest(t, testOTPConfig())

		notificationSvc.SendEmailFunc = func(to, subject, body string) error {
			return errors.New("smtp down")
		}

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err == nil {
			t.Fatal("expected delivery error")
		}
		if client.Exists(ctx, "otp:user@example.com").Val() != 0 {
			t.Error("expected challenge removed after failed delivery")
		}
		// The throttle is released too, so the user can retry immediately.
		notificationSvc.SendEmailFunc = nil
		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Errorf("expected retry allowed after failed delivery, got %v", err)
		}
	})
}

func TestOTPServiceImpl_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("correct code verifies and consumes the challenge", func(t *testing.T) {
		svc, notificationSvc, client, _ := createOTPServiceForTest(t, testOTPConfig())

		var sentCode string
		notificationSvc.SendEmailFunc = func(to, subject, body string) error {
			sentCode = body[len(body)-4:]
			return nil
		}
		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ok, err := svc.Verify(ctx, "user@example.com", sentCode)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected verification success")
		}
		if client.Exists(ctx, "otp:user@example.com").Val() != 0 {
			t.Error("expected challenge consumed")
		}

		// A second submission finds nothing.
		if _, err := svc.Verify(ctx, "user@example.com", sentCode); !errors.Is(err, domain.ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound, got %v", err)
		}
	})

	t.Run("wrong code is rejected with hash compare", func(t *testing.T) {
		svc, notificationSvc, _, _ := createOTPServiceForTest(t, testOTPConfig())

		var sentCode string
		notificationSvc.SendEmailFunc = func(to, subject, body string) error {
			sentCode = body[len(body)-4:]
			return nil
		}
		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wrong := "0000"
		if wrong == sentCode {
			wrong = "1111"
		}
		if _, err := svc.Verify(ctx, "user@example.com", wrong); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Errorf("expected ErrOTPInvalid, got %v", err)
		}
	})

	t.Run("accept-any mode verifies any well-formed code", func(t *testing.T) {
		config := testOTPConfig()
		config.AcceptAny = true
		svc, _, _, _ := createOTPServiceForTest(t, config)

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ok, err := svc.Verify(ctx, "user@example.com", "0000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected any four digit code accepted")
		}
	})

	t.Run("malformed code is rejected before any lookup", func(t *testing.T) {
		svc, _, _, _ := createOTPServiceForTest(t, testOTPConfig())

		for _, code := range []string{"", "123", "12345", "abcd"} {
			if _, err := svc.Verify(ctx, "user@example.com", code); !errors.Is(err, domain.ErrOTPMalformed) {
				t.Errorf("code %q: expected ErrOTPMalformed, got %v", code, err)
			}
		}
	})

	t.Run("attempts are capped", func(t *testing.T) {
		config := testOTPConfig()
		config.MaxAttempts = 2
		svc, _, client, _ := createOTPServiceForTest(t, config)

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 0; i < 2; i++ {
			if _, err := svc.Verify(ctx, "user@example.com", "0000"); !errors.Is(err, domain.ErrOTPInvalid) {
				t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i+1, err)
			}
		}
		if _, err := svc.Verify(ctx, "user@example.com", "0000"); !errors.Is(err, domain.ErrOTPMaxAttempts) {
			t.Errorf("expected ErrOTPMaxAttempts, got %v", err)
		}
		if client.Exists(ctx, "otp:user@example.com").Val() != 0 {
			t.Error("expected challenge discarded after max attempts")
		}
	})

	t.Run("expired challenge is not found", func(t *testing.T) {
		svc, _, _, mr := createOTPServiceForTest(t, testOTPConfig())

		if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mr.FastForward(148 * time.Second)
		if _, err := svc.Verify(ctx, "user@example.com", "1234"); !errors.Is(err, domain.ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound after expiry, got %v", err)
		}
	})
}

func TestOTPServiceImpl_CanResend(t *testing.T) {
	ctx := context.Background()
	svc, _, _, mr := createOTPServiceForTest(t, testOTPConfig())

	canResend, wait, err := svc.CanResend(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !canResend || wait != 0 {
		t.Errorf("expected resend allowed with no challenge, got %v/%d", canResend, wait)
	}

	if _, err := svc.Generate(ctx, "user@example.com", domain.ContactEmail, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	canResend, wait, err = svc.CanResend(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canResend {
		t.Error("expected resend locked inside the window")
	}
	if wait <= 0 || wait > 147 {
		t.Errorf("expected wait within the window, got %d", wait)
	}

	mr.FastForward(148 * time.Second)
	canResend, _, err = svc.CanResend(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !canResend {
		t.Error("expected resend allowed after the window")
	}
}
