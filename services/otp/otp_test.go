package otp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"glambook/agent/engine"

	"go.uber.org/zap"
)

type mapKV struct {
	data map[string]string
}

func newMapKV() mapKV { return mapKV{data: make(map[string]string)} }

func (m mapKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m mapKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m mapKV) Del(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type captureSender struct {
	phones   []string
	messages []string
}

func (s *captureSender) Send(ctx context.Context, phone, message string) error {
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	return nil
}

// storedCode reads the code back out of the KV, the way only tests may.
func storedCode(t *testing.T, kv mapKV, sessionID string) string {
	t.Helper()
	raw, ok := kv.data[otpKey(sessionID)]
	if !ok {
		t.Fatal("no otp record stored")
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decode otp record: %v", err)
	}
	return rec.Code
}

func TestIssueAndVerify(t *testing.T) {
	kv := newMapKV()
	sender := &captureSender{}
	svc := NewService(kv, sender, 5*time.Minute, 3, zap.NewNop())
	ctx := context.Background()

	if err := svc.Issue(ctx, "s1", "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(sender.messages) != 1 || sender.phones[0] != "+919876543210" {
		t.Fatalf("sent = %v to %v", sender.messages, sender.phones)
	}

	code := storedCode(t, kv, "s1")
	if len(code) != 6 {
		t.Fatalf("code = %q, want 6 digits", code)
	}

	status, _, err := svc.Verify(ctx, "s1", code)
	if err != nil || status != engine.OTPOK {
		t.Fatalf("Verify = %v, %v; want OK", status, err)
	}

	// Verified codes are single use.
	status, _, err = svc.Verify(ctx, "s1", code)
	if err != nil || status != engine.OTPExpired {
		t.Fatalf("second Verify = %v, %v; want Expired", status, err)
	}
}

func TestVerifyMismatchCountsDown(t *testing.T) {
	kv := newMapKV()
	svc := NewService(kv, &captureSender{}, 5*time.Minute, 3, zap.NewNop())
	ctx := context.Background()

	if err := svc.Issue(ctx, "s1", "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	code := storedCode(t, kv, "s1")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	status, remaining, _ := svc.Verify(ctx, "s1", wrong)
	if status != engine.OTPMismatch || remaining != 2 {
		t.Fatalf("first wrong = %v, %d; want Mismatch, 2", status, remaining)
	}
	status, remaining, _ = svc.Verify(ctx, "s1", wrong)
	if status != engine.OTPMismatch || remaining != 1 {
		t.Fatalf("second wrong = %v, %d; want Mismatch, 1", status, remaining)
	}
	status, _, _ = svc.Verify(ctx, "s1", wrong)
	if status != engine.OTPExhausted {
		t.Fatalf("third wrong = %v, want Exhausted", status)
	}

	// Exhaustion clears the record; even the right code is gone.
	status, _, _ = svc.Verify(ctx, "s1", code)
	if status != engine.OTPExpired {
		t.Fatalf("after exhaustion = %v, want Expired", status)
	}
}

func TestVerifyMissingAndExpired(t *testing.T) {
	kv := newMapKV()
	svc := NewService(kv, &captureSender{}, 5*time.Minute, 3, zap.NewNop())
	ctx := context.Background()

	status, _, err := svc.Verify(ctx, "nobody", "123456")
	if err != nil || status != engine.OTPExpired {
		t.Fatalf("missing record = %v, %v; want Expired", status, err)
	}

	// A record past its issue window expires on the next wrong attempt.
	rec := record{Code: "654321", IssuedAt: time.Now().UTC().Add(-time.Hour)}
	raw, _ := json.Marshal(rec)
	kv.data[otpKey("s2")] = string(raw)

	status, _, err = svc.Verify(ctx, "s2", "111111")
	if err != nil || status != engine.OTPExpired {
		t.Fatalf("stale record = %v, %v; want Expired", status, err)
	}
}

func TestResendReplacesCode(t *testing.T) {
	kv := newMapKV()
	sender := &captureSender{}
	svc := NewService(kv, sender, 5*time.Minute, 3, zap.NewNop())
	ctx := context.Background()

	if err := svc.Issue(ctx, "s1", "+919876543210"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := svc.Resend(ctx, "s1", "+919876543210"); err != nil {
		t.Fatalf("Resend: %v", err)
	}
	if len(sender.messages) != 2 {
		t.Fatalf("messages sent = %d, want 2", len(sender.messages))
	}

	// Only the latest code verifies.
	code := storedCode(t, kv, "s1")
	status, _, err := svc.Verify(ctx, "s1", code)
	if err != nil || status != engine.OTPOK {
		t.Fatalf("Verify after resend = %v, %v; want OK", status, err)
	}
}

func TestServiceDefaults(t *testing.T) {
	svc := NewService(newMapKV(), &captureSender{}, 0, 0, nil)
	if svc.Expiry != 5*time.Minute || svc.MaxAttempts != 3 {
		t.Errorf("defaults = %v / %d, want 5m / 3", svc.Expiry, svc.MaxAttempts)
	}
}
