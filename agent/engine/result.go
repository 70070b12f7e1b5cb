package engine

import (
	"context"

	"glambook/models"
)

// Turn actions, surfaced to the HTTP layer and the agent service.
const (
	ActionGreeting        = "greeting"
	ActionShowServices    = "show_services"
	ActionShowPackages    = "show_packages"
	ActionInfo            = "info"
	ActionAskDetails      = "ask_details"
	ActionExtracted       = "extracted"
	ActionSequentialAsk   = "sequential_ask"
	ActionAskConfirmation = "ask_confirmation"
	ActionOTPSent         = "otp_sent"
	ActionOTPInvalid      = "otp_invalid"
	ActionOTPResent       = "otp_resent"
	ActionCompleted       = "completed"
	ActionCancelled       = "cancelled"
	ActionRestarted       = "restarted"
	ActionExit            = "exit"
	ActionQuestion        = "question_answered"
	ActionChangeValue     = "change_value"
	ActionChangeMenu      = "change_menu"
	ActionChangeApplied   = "change_applied"
	ActionChangeFailed    = "change_failed"
	ActionEmailSelection  = "email_selection"
	ActionAskYear         = "ask_year"
	ActionYearProvided    = "year_provided"
	ActionNotUnderstood   = "not_understood"
	ActionRefocus         = "refocus"
	ActionError           = "error"
)

// Conversation modes.
const (
	ModeChat    = "chat"
	ModeBooking = "booking"
)

// TurnResult is everything one processed message produces besides the
// state transition.
type TurnResult struct {
	Action        string            `json:"action"`
	Message       string            `json:"message"`
	Mode          string            `json:"mode"`
	Understood    bool              `json:"understood"`
	Missing       []string          `json:"missing,omitempty"`
	Collected     map[string]string `json:"collected,omitempty"`
	Warnings      []string          `json:"warnings,omitempty"`
	ChangingField string            `json:"changingField,omitempty"`
	BookingID     string            `json:"bookingId,omitempty"`
	Frustrated    bool              `json:"frustrated,omitempty"`
}

// OTP verification outcomes.
type OTPStatus int

const (
	OTPOK OTPStatus = iota
	OTPMismatch
	OTPExpired
	OTPExhausted
)

// OTPPort issues and checks verification codes for a session.
type OTPPort interface {
	Issue(ctx context.Context, sessionID, phone string) error
	Verify(ctx context.Context, sessionID, code string) (OTPStatus, int, error)
	Resend(ctx context.Context, sessionID, phone string) error
}

// BookingPort persists bookings as the conversation reaches its final
// stages.
type BookingPort interface {
	SavePending(ctx context.Context, b *models.Booking) error
	MarkVerified(ctx context.Context, sessionID string) (string, error)
}

// ReminderScheduler queues an appointment reminder once a booking is
// verified. Best effort: a nil scheduler or a failed enqueue never fails
// the turn.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, bookingID string, intent *models.BookingIntent) error
}

// KnowledgeAnswerer answers free questions, typically LLM-backed with a
// canned fallback.
type KnowledgeAnswerer interface {
	Answer(ctx context.Context, question, language string) (string, error)
}
