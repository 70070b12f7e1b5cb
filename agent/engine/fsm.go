package engine

import (
	"context"
	"regexp"
	"strings"

	"glambook/agent/extract"
	"glambook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FSM is the conversation state machine. It owns no storage: sessions,
// OTP codes and bookings live behind the injected ports.
type FSM struct {
	Orchestrator *extract.Orchestrator
	Knowledge    KnowledgeAnswerer
	OTP          OTPPort
	Bookings     BookingPort
	Reminders    ReminderScheduler // optional
	Logger       *zap.Logger
	MaxOffTrack  int
}

// NewFSM wires an FSM with sane defaults.
func NewFSM(orch *extract.Orchestrator, knowledge KnowledgeAnswerer, otp OTPPort, bookings BookingPort, logger *zap.Logger, maxOffTrack int) *FSM {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxOffTrack <= 0 {
		maxOffTrack = 3
	}
	return &FSM{
		Orchestrator: orch,
		Knowledge:    knowledge,
		OTP:          otp,
		Bookings:     bookings,
		Logger:       logger,
		MaxOffTrack:  maxOffTrack,
	}
}

func (f *FSM) collector() *collector {
	return &collector{orchestrator: f.Orchestrator, knowledge: f.Knowledge, logger: f.Logger}
}

var otpCode = regexp.MustCompile(`\b(\d{6})\b`)

// Process consumes one user message, mutating the memory's state and
// intent and returning the resulting turn.
func (f *FSM) Process(ctx context.Context, message string, mem *models.ConversationMemory) TurnResult {
	msgLower := strings.ToLower(strings.TrimSpace(message))
	lang := mem.Language
	if lang == "" {
		lang = "en"
	}
	intent := mem.Intent
	if intent == nil {
		intent = models.NewBookingIntent(lang)
		mem.Intent = intent
	}
	prev := mem.State
	detected := DetectIntent(message)

	f.Logger.Debug("processing turn",
		zap.String("session", mem.SessionID),
		zap.String("state", string(prev)),
		zap.String("intent", detected.Category))

	var res TurnResult
	switch {
	case detected.Category == IntentRestart:
		intent.Reset()
		mem.State = models.StateGreeting
		mem.OffTrack = 0
		res = TurnResult{Action: ActionRestarted, Message: Greeting(lang), Mode: ModeChat, Understood: true}

	case detected.Category == IntentExit && prev != models.StateOTPSent:
		intent.Reset()
		mem.State = models.StateGreeting
		mem.OffTrack = 0
		res = TurnResult{Action: ActionExit, Message: Goodbye(lang), Mode: ModeChat, Understood: true}

	default:
		var next models.BookingState
		next, res = f.dispatch(ctx, message, msgLower, detected, mem, intent, lang)
		if !next.Valid() || (next != prev && !CanTransition(prev, next)) {
			f.Logger.Error("handler requested illegal transition",
				zap.String("from", string(prev)), zap.String("to", string(next)))
			next = SuggestStateRecovery(prev, errInvalidTransition)
		}
		mem.State = next
	}

	// Frustration only changes tone: the message is still processed and
	// the reply gets a de-escalation line on top.
	if detected.Frustrated {
		res.Frustrated = true
		if prev != models.StateOTPSent {
			res.Message = Deescalation(lang) + "\n" + res.Message
		}
	}

	f.trackOffTrack(mem, &res)
	return res
}

// dispatch routes the message to the current state's handler.
func (f *FSM) dispatch(ctx context.Context, message, msgLower string, detected DetectedIntent, mem *models.ConversationMemory, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	switch mem.State {
	case models.StateGreeting:
		return f.handleGreeting(ctx, message, detected, lang)
	case models.StateInfoMode:
		return f.handleInfoMode(ctx, message, detected, lang)
	case models.StateSelectingService:
		return f.handleSelectingService(ctx, message, msgLower, intent, lang)
	case models.StateSelectingPackage:
		return f.handleSelectingPackage(ctx, message, msgLower, intent, lang)
	case models.StateCollectingDetails:
		return f.collector().Collect(ctx, message, intent, mem.UserHistory(), lang)
	case models.StateConfirming:
		return f.handleConfirming(ctx, message, msgLower, detected, mem, intent, lang)
	case models.StateOTPSent:
		return f.handleOTPSent(ctx, message, msgLower, mem, intent, lang)
	case models.StateCompleted:
		return f.handleCompleted(message, detected, mem, intent, lang)
	}
	// Unknown stored state: recover to greeting with an apology.
	f.Logger.Error("unknown conversation state", zap.String("state", string(mem.State)))
	intent.Reset()
	return models.StateGreeting, TurnResult{Action: ActionError, Message: Apology(lang), Mode: ModeChat, Understood: false}
}

// trackOffTrack counts consecutive non-booking turns during the booking
// flow and appends a gentle refocus once the cap is hit.
func (f *FSM) trackOffTrack(mem *models.ConversationMemory, res *TurnResult) {
	if !mem.State.InBookingFlow() {
		mem.OffTrack = 0
		return
	}
	switch res.Action {
	case ActionQuestion, ActionNotUnderstood, ActionRefocus:
		mem.OffTrack++
	default:
		mem.OffTrack = 0
		return
	}
	if mem.OffTrack >= f.MaxOffTrack {
		if missing := mem.Intent.MissingFields(); len(missing) > 0 {
			res.Message += "\n" + Refocus(missing, mem.Intent.Language)
		}
		mem.OffTrack = 0
	}
}

// issueOTP moves a complete, confirmed intent into OTP verification.
func (f *FSM) issueOTP(ctx context.Context, mem *models.ConversationMemory, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	booking := models.BookingFromIntent(uuid.NewString(), mem.SessionID, intent, models.StateOTPSent)
	if err := f.Bookings.SavePending(ctx, booking); err != nil {
		f.Logger.Error("failed to save pending booking", zap.Error(err))
		intent.Reset()
		return models.StateGreeting, TurnResult{Action: ActionError, Message: Apology(lang), Mode: ModeChat, Understood: true}
	}
	if err := f.OTP.Issue(ctx, mem.SessionID, intent.Phone); err != nil {
		f.Logger.Error("failed to issue otp", zap.Error(err))
		intent.Reset()
		return models.StateGreeting, TurnResult{Action: ActionError, Message: Apology(lang), Mode: ModeChat, Understood: true}
	}

	display := intent.Phone
	if intent.PhoneDetail != nil {
		display = intent.PhoneDetail.Formatted
	}
	return models.StateOTPSent, TurnResult{
		Action:     ActionOTPSent,
		Message:    OTPSentPrompt(display, lang),
		Mode:       ModeBooking,
		Understood: true,
		BookingID:  booking.BookingID,
	}
}
