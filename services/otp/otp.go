package otp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	holdRepo "salonflow/database/repository/hold"
	"salonflow/models"
	"salonflow/services/booking"
	"salonflow/services/sms"
	"salonflow/utils"
)

// Service drives phone verification for holds: sending one-time codes and
// verifying them, promoting the hold on success.
type Service interface {
	SendCode(ctx context.Context, phone, holdID string) error
	// VerifyCode returns the manage URL on success. Repeating the call after a
	// successful verification returns the same URL without side effects.
	VerifyCode(ctx context.Context, phone, code, holdID, customerName string) (string, error)
}

// DefaultOTPService implements Service.
type DefaultOTPService struct {
	Holds    holdRepo.HoldRepository
	Store    ChallengeStore
	Limiter  RateLimiter
	SMS      sms.Gateway
	Promoter booking.Promoter
	Clock    utils.Clock

	CodeTTL     time.Duration
	MaxAttempts int
}

// loadHold fetches the hold with lazy expiry applied.
func (s *DefaultOTPService) loadHold(ctx context.Context, holdID string) (*models.Hold, error) {
	hold, err := s.Holds.GetByID(ctx, holdID)
	if err != nil {
		return nil, booking.ErrServiceUnavailable
	}
	if hold == nil {
		return nil, booking.ErrNotFound
	}
	hold = booking.ExpireIfDue(hold, s.Clock.Now())
	if hold.State == models.HoldStateExpired {
		return nil, booking.ErrExpired
	}
	return hold, nil
}

func (s *DefaultOTPService) SendCode(ctx context.Context, phone, holdID string) error {
	logger := utils.GetLogger()

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return &booking.InputError{Reason: err.Error()}
	}
	if holdID == "" {
		return &booking.InputError{Reason: "holdId is required"}
	}

	hold, err := s.loadHold(ctx, holdID)
	if err != nil {
		return err
	}
	if hold.State != models.HoldStateActive {
		return &booking.InputError{Reason: "hold is no longer awaiting verification"}
	}
	if hold.CustomerPhone != normalized {
		return &booking.InputError{Reason: "phone number does not match this reservation"}
	}

	retryAfter, allowed, err := s.Limiter.Reserve(ctx, normalized)
	if err != nil {
		return booking.ErrServiceUnavailable
	}
	if !allowed {
		return &RateLimitedError{RetryAfter: retryAfter}
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return booking.ErrServiceUnavailable
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return booking.ErrServiceUnavailable
	}

	now := s.Clock.Now()
	challenge := models.OtpChallenge{
		HoldID:    holdID,
		Phone:     normalized,
		CodeHash:  string(hash),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.CodeTTL),
	}
	// Replaces any earlier challenge for this hold; the old code stops working.
	if err := s.Store.Save(ctx, challenge, s.MaxAttempts, s.CodeTTL); err != nil {
		logger.Error("failed to store OTP challenge", zap.String("holdId", holdID), zap.Error(err))
		return booking.ErrServiceUnavailable
	}

	message := fmt.Sprintf("Your booking verification code is %s. It expires in %d minutes.", code, int(s.CodeTTL.Minutes()))
	if err := s.SMS.Send(ctx, normalized, message); err != nil {
		// Gateway failures cost the user no rate-limit budget.
		logger.Warn("sms dispatch failed", zap.String("holdId", holdID), zap.Error(err))
		if rerr := s.Limiter.Refund(ctx, normalized); rerr != nil {
			logger.Error("failed to refund rate limit", zap.Error(rerr))
		}
		if derr := s.Store.Delete(ctx, holdID); derr != nil {
			logger.Error("failed to delete undelivered challenge", zap.Error(derr))
		}
		return ErrDeliveryFailed
	}

	logger.Info("verification code sent", zap.String("holdId", holdID))
	return nil
}

func (s *DefaultOTPService) VerifyCode(ctx context.Context, phone, code, holdID, customerName string) (string, error) {
	logger := utils.GetLogger()

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return "", &booking.InputError{Reason: err.Error()}
	}
	if code == "" || holdID == "" {
		return "", &booking.InputError{Reason: "code and holdId are required"}
	}

	hold, err := s.loadHold(ctx, holdID)
	if err != nil {
		return "", err
	}
	if hold.CustomerPhone != normalized {
		return "", &booking.InputError{Reason: "phone number does not match this reservation"}
	}

	switch hold.State {
	case models.HoldStateConsumed:
		// Idempotent re-verification after success.
		return hold.ManageURL, nil
	case models.HoldStateCancelled:
		return "", booking.ErrNotFound
	case models.HoldStateVerified:
		// A prior promotion attempt failed (slot conflict); the customer's
		// verified identity is kept, so retry promotion directly.
		return s.promote(ctx, hold, customerName)
	}

	challenge, err := s.Store.Get(ctx, holdID)
	if err != nil {
		return "", booking.ErrServiceUnavailable
	}
	if challenge == nil {
		return "", booking.ErrExpired
	}
	now := s.Clock.Now()
	if !now.Before(challenge.ExpiresAt) {
		return "", booking.ErrExpired
	}

	attempts, err := s.Store.Attempts(ctx, holdID)
	if err != nil {
		return "", booking.ErrServiceUnavailable
	}
	if attempts <= 0 {
		return "", ErrExhausted
	}

	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)) != nil {
		remaining, err := s.Store.DecrementAttempts(ctx, holdID)
		if err != nil {
			return "", booking.ErrServiceUnavailable
		}
		if remaining <= 0 {
			return "", ErrExhausted
		}
		return "", &InvalidCodeError{Remaining: remaining}
	}

	if err := s.Store.Delete(ctx, holdID); err != nil {
		logger.Warn("failed to delete consumed challenge", zap.String("holdId", holdID), zap.Error(err))
	}

	swapped, err := s.Holds.CompareAndSwapState(ctx, holdID, models.HoldStateActive, models.HoldStateVerified)
	if err != nil {
		return "", booking.ErrServiceUnavailable
	}
	if !swapped {
		// Lost a race with a concurrent verify; re-read and follow its outcome.
		current, err := s.Holds.GetByID(ctx, holdID)
		if err != nil || current == nil {
			return "", booking.ErrServiceUnavailable
		}
		if current.State == models.HoldStateConsumed {
			return current.ManageURL, nil
		}
		hold = current
	} else {
		hold.State = models.HoldStateVerified
	}

	return s.promote(ctx, hold, customerName)
}

func (s *DefaultOTPService) promote(ctx context.Context, hold *models.Hold, customerName string) (string, error) {
	if customerName != "" {
		hold.CustomerName = customerName
	}
	_, manageURL, err := s.Promoter.Promote(ctx, hold)
	if err != nil {
		return "", err
	}
	return manageURL, nil
}
