// Package otp issues and verifies the 6-digit booking confirmation codes.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"glambook/agent/engine"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// record is the stored state of one outstanding code.
type record struct {
	Code     string    `json:"code"`
	Attempts int       `json:"attempts"`
	IssuedAt time.Time `json:"issuedAt"`
}

// KV is the minimal key-value surface the service needs; Redis in
// production, a map in tests.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Sender delivers a code to the user's phone. The default implementation
// only logs; a WhatsApp/SMS gateway slots in behind this interface.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender is the no-op delivery used outside production.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(ctx context.Context, phone, message string) error {
	s.Logger.Sugar().Infof("Sending WhatsApp message to %s: %s", phone, message)
	return nil
}

// Service implements the conversation engine's OTP port.
type Service struct {
	KV          KV
	Sender      Sender
	Expiry      time.Duration
	MaxAttempts int
	Logger      *zap.Logger
}

// NewService applies defaults: 5-minute expiry, 3 attempts.
func NewService(kv KV, sender Sender, expiry time.Duration, maxAttempts int, logger *zap.Logger) *Service {
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{KV: kv, Sender: sender, Expiry: expiry, MaxAttempts: maxAttempts, Logger: logger}
}

func otpKey(sessionID string) string {
	return "agent:otp:" + sessionID
}

// generateCode builds a 6-digit numeric code from crypto/rand.
func generateCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("otp random: %w", err)
	}
	code := make([]byte, 6)
	for i, b := range buf {
		code[i] = '0' + b%10
	}
	return string(code), nil
}

// Issue creates a fresh code for the session and sends it.
func (s *Service) Issue(ctx context.Context, sessionID, phone string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	rec := record{Code: code, IssuedAt: time.Now().UTC()}
	raw, _ := json.Marshal(rec)
	if err := s.KV.Set(ctx, otpKey(sessionID), string(raw), s.Expiry); err != nil {
		return fmt.Errorf("otp store: %w", err)
	}
	msg := fmt.Sprintf("Your Glambook verification code is %s. It expires in %d minutes.", code, int(s.Expiry.Minutes()))
	if err := s.Sender.Send(ctx, phone, msg); err != nil {
		return fmt.Errorf("otp send: %w", err)
	}
	s.Logger.Debug("otp issued", zap.String("session", sessionID))
	return nil
}

// Verify checks a submitted code. Expired and exhausted codes are
// deleted so a retry starts clean from the confirmation step.
func (s *Service) Verify(ctx context.Context, sessionID, code string) (engine.OTPStatus, int, error) {
	raw, ok, err := s.KV.Get(ctx, otpKey(sessionID))
	if err != nil {
		return engine.OTPExpired, 0, fmt.Errorf("otp load: %w", err)
	}
	if !ok {
		return engine.OTPExpired, 0, nil
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return engine.OTPExpired, 0, fmt.Errorf("otp decode: %w", err)
	}

	if rec.Code == code {
		if err := s.KV.Del(ctx, otpKey(sessionID)); err != nil {
			s.Logger.Warn("otp cleanup failed", zap.Error(err))
		}
		return engine.OTPOK, 0, nil
	}

	rec.Attempts++
	if rec.Attempts >= s.MaxAttempts {
		if err := s.KV.Del(ctx, otpKey(sessionID)); err != nil {
			s.Logger.Warn("otp cleanup failed", zap.Error(err))
		}
		return engine.OTPExhausted, 0, nil
	}

	updated, _ := json.Marshal(rec)
	ttl := s.Expiry - time.Since(rec.IssuedAt)
	if ttl <= 0 {
		return engine.OTPExpired, 0, nil
	}
	if err := s.KV.Set(ctx, otpKey(sessionID), string(updated), ttl); err != nil {
		return engine.OTPMismatch, 0, fmt.Errorf("otp update: %w", err)
	}
	return engine.OTPMismatch, s.MaxAttempts - rec.Attempts, nil
}

// Resend issues a fresh code, resetting the attempt counter.
func (s *Service) Resend(ctx context.Context, sessionID, phone string) error {
	return s.Issue(ctx, sessionID, phone)
}

// RedisKV adapts a Redis client to the KV interface.
type RedisKV struct {
	Client *redis.Client
}

func (r RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r RedisKV) Del(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}
