package engine

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"glambook/config"
	"glambook/models"

	"go.uber.org/zap"
)

var menuNumber = regexp.MustCompile(`\b([1-9])\b`)

// serviceHints maps service-specific words to catalog entries, so "bridal
// makeup please" works without the exact menu name.
var serviceHints = []struct {
	Words   []string
	Service string
}{
	{[]string{"bridal", "wedding", "bride"}, "Bridal Makeup Services"},
	{[]string{"party", "reception", "cocktail"}, "Party Makeup Services"},
	{[]string{"engagement", "pre-wedding", "prewedding"}, "Engagement & Pre-Wedding Makeup"},
	{[]string{"henna", "mehendi", "mehndi"}, "Henna (Mehendi) Services"},
}

func (f *FSM) handleGreeting(ctx context.Context, message string, detected DetectedIntent, lang string) (models.BookingState, TurnResult) {
	switch detected.Category {
	case IntentBooking, IntentAffirmative:
		return models.StateSelectingService, TurnResult{
			Action:     ActionShowServices,
			Message:    ServiceMenu(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	case IntentInfo:
		return models.StateInfoMode, TurnResult{
			Action:     ActionInfo,
			Message:    InfoBlurb(lang),
			Mode:       ModeChat,
			Understood: true,
		}
	case IntentQuestion:
		answer := f.collector().answerQuestion(ctx, message, lang)
		return models.StateInfoMode, TurnResult{
			Action:     ActionQuestion,
			Message:    answer,
			Mode:       ModeChat,
			Understood: true,
		}
	}
	return models.StateGreeting, TurnResult{
		Action:     ActionGreeting,
		Message:    Greeting(lang),
		Mode:       ModeChat,
		Understood: detected.Category != IntentUnknown,
	}
}

func (f *FSM) handleInfoMode(ctx context.Context, message string, detected DetectedIntent, lang string) (models.BookingState, TurnResult) {
	switch detected.Category {
	case IntentBooking, IntentAffirmative:
		return models.StateSelectingService, TurnResult{
			Action:     ActionShowServices,
			Message:    ServiceMenu(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	case IntentQuestion, IntentInfo:
		answer := f.collector().answerQuestion(ctx, message, lang)
		return models.StateInfoMode, TurnResult{
			Action:     ActionQuestion,
			Message:    answer,
			Mode:       ModeChat,
			Understood: true,
		}
	}
	return models.StateInfoMode, TurnResult{
		Action:     ActionInfo,
		Message:    NotUnderstood(lang),
		Mode:       ModeChat,
		Understood: false,
	}
}

func (f *FSM) handleSelectingService(ctx context.Context, message, msgLower string, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	if service, ok := matchService(msgLower); ok {
		intent.Service = service
		f.Logger.Debug("service selected", zap.String("service", service))
		return models.StateSelectingPackage, TurnResult{
			Action:     ActionShowPackages,
			Message:    PackageMenu(service, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	if IsClearQuestion(message) {
		answer := f.collector().answerQuestion(ctx, message, lang)
		return models.StateSelectingService, TurnResult{
			Action:     ActionQuestion,
			Message:    answer + "\n" + ServiceMenu(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	return models.StateSelectingService, TurnResult{
		Action:     ActionShowServices,
		Message:    NotUnderstood(lang) + "\n" + ServiceMenu(lang),
		Mode:       ModeBooking,
		Understood: false,
	}
}

func (f *FSM) handleSelectingPackage(ctx context.Context, message, msgLower string, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	info, ok := config.ServiceByName(intent.Service)
	if !ok {
		// Service vanished from the catalog between turns; restart the
		// selection.
		intent.Service = ""
		return models.StateSelectingService, TurnResult{
			Action:     ActionShowServices,
			Message:    ServiceMenu(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	if pkg, ok := matchPackage(msgLower, info.Packages); ok {
		intent.Package = pkg
		f.Logger.Debug("package selected", zap.String("package", pkg))
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionAskDetails,
			Message:    DetailsIntro(lang),
			Mode:       ModeBooking,
			Understood: true,
			Missing:    intent.MissingFields(),
		}
	}

	if IsClearQuestion(message) {
		answer := f.collector().answerQuestion(ctx, message, lang)
		return models.StateSelectingPackage, TurnResult{
			Action:     ActionQuestion,
			Message:    answer + "\n" + PackageMenu(intent.Service, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	return models.StateSelectingPackage, TurnResult{
		Action:     ActionShowPackages,
		Message:    NotUnderstood(lang) + "\n" + PackageMenu(intent.Service, lang),
		Mode:       ModeBooking,
		Understood: false,
	}
}

func (f *FSM) handleConfirming(ctx context.Context, message, msgLower string, detected DetectedIntent, mem *models.ConversationMemory, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	// Missing fields discovered here push the flow back to collection.
	if missing := intent.MissingFields(); len(missing) > 0 {
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionAskDetails,
			Message:    CollectedSummary(intent, missing, lang),
			Mode:       ModeBooking,
			Understood: true,
			Missing:    missing,
		}
	}

	if wantsCancel(msgLower) {
		intent.Reset()
		return models.StateGreeting, TurnResult{
			Action:     ActionCancelled,
			Message:    Cancellation(lang),
			Mode:       ModeChat,
			Understood: true,
		}
	}

	if req, ok := ParseChangeRequest(message); ok {
		c := f.collector()
		res := c.startChange(req, intent, lang)
		if res.Action == ActionChangeApplied && intent.IsComplete() {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	switch detected.Category {
	case IntentAffirmative, IntentCompletion:
		return f.issueOTP(ctx, mem, intent, lang)
	case IntentNegative:
		intent.Change = &models.ChangeState{MenuShown: true}
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionChangeMenu,
			Message:    ChangeMenu(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	return models.StateConfirming, TurnResult{
		Action:     ActionAskConfirmation,
		Message:    ConfirmationSummary(intent, lang),
		Mode:       ModeBooking,
		Understood: false,
	}
}

func (f *FSM) handleOTPSent(ctx context.Context, message, msgLower string, mem *models.ConversationMemory, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	if wantsCancel(msgLower) {
		intent.Reset()
		return models.StateGreeting, TurnResult{
			Action:     ActionCancelled,
			Message:    Cancellation(lang),
			Mode:       ModeChat,
			Understood: true,
		}
	}

	if strings.Contains(msgLower, "resend") || strings.Contains(msgLower, "send again") {
		if err := f.OTP.Resend(ctx, mem.SessionID, intent.Phone); err != nil {
			f.Logger.Error("otp resend failed", zap.Error(err))
			return models.StateOTPSent, TurnResult{
				Action:     ActionOTPInvalid,
				Message:    Apology(lang),
				Mode:       ModeBooking,
				Understood: true,
			}
		}
		display := intent.Phone
		if intent.PhoneDetail != nil {
			display = intent.PhoneDetail.Formatted
		}
		return models.StateOTPSent, TurnResult{
			Action:     ActionOTPResent,
			Message:    OTPSentPrompt(display, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	code := otpCode.FindString(message)
	if code == "" {
		return models.StateOTPSent, TurnResult{
			Action:     ActionOTPInvalid,
			Message:    NotUnderstood(lang) + "\n" + OTPSentPrompt(intent.Phone, lang),
			Mode:       ModeBooking,
			Understood: false,
		}
	}

	status, remaining, err := f.OTP.Verify(ctx, mem.SessionID, code)
	if err != nil {
		f.Logger.Error("otp verify failed", zap.Error(err))
		intent.Reset()
		return models.StateGreeting, TurnResult{Action: ActionError, Message: Apology(lang), Mode: ModeChat, Understood: true}
	}

	switch status {
	case OTPOK:
		bookingID, err := f.Bookings.MarkVerified(ctx, mem.SessionID)
		if err != nil {
			f.Logger.Error("booking verification failed", zap.Error(err))
			intent.Reset()
			return models.StateGreeting, TurnResult{Action: ActionError, Message: Apology(lang), Mode: ModeChat, Understood: true}
		}
		if f.Reminders != nil {
			if err := f.Reminders.ScheduleReminder(ctx, bookingID, intent); err != nil {
				f.Logger.Warn("reminder enqueue failed", zap.Error(err))
			}
		}
		// The booking record now owns the data; the session keeps no PII.
		intent.Reset()
		return models.StateCompleted, TurnResult{
			Action:     ActionCompleted,
			Message:    CompletionMessage(bookingID, lang),
			Mode:       ModeChat,
			Understood: true,
			BookingID:  bookingID,
		}
	case OTPMismatch:
		return models.StateOTPSent, TurnResult{
			Action:     ActionOTPInvalid,
			Message:    OTPInvalidPrompt(remaining, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	case OTPExpired:
		return models.StateOTPSent, TurnResult{
			Action:     ActionOTPInvalid,
			Message:    OTPExpiredPrompt(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	// Attempts exhausted: abandon the booking rather than loop forever.
	intent.Reset()
	return models.StateGreeting, TurnResult{
		Action:     ActionError,
		Message:    OTPExhaustedPrompt(lang),
		Mode:       ModeChat,
		Understood: true,
	}
}

func (f *FSM) handleCompleted(message string, detected DetectedIntent, mem *models.ConversationMemory, intent *models.BookingIntent, lang string) (models.BookingState, TurnResult) {
	if detected.Category == IntentBooking {
		intent.Reset()
		return models.StateSelectingService, TurnResult{
			Action:     ActionShowServices,
			Message:    ServiceMenu(lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}
	return models.StateCompleted, TurnResult{
		Action:     ActionCompleted,
		Message:    CompletedReminder("", lang),
		Mode:       ModeChat,
		Understood: true,
	}
}

// matchService resolves a menu number, exact name, or hint word.
func matchService(msgLower string) (string, bool) {
	if m := menuNumber.FindStringSubmatch(msgLower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= len(config.Services) {
			return config.Services[n-1].Name, true
		}
	}
	for _, s := range config.Services {
		if strings.Contains(msgLower, strings.ToLower(s.Name)) {
			return s.Name, true
		}
	}
	for _, h := range serviceHints {
		for _, w := range h.Words {
			if strings.Contains(msgLower, w) {
				return h.Service, true
			}
		}
	}
	return "", false
}

// matchPackage resolves a menu number or a distinctive name fragment.
func matchPackage(msgLower string, packages []config.PackageInfo) (string, bool) {
	if m := menuNumber.FindStringSubmatch(msgLower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= len(packages) {
			return packages[n-1].Name, true
		}
	}
	for _, p := range packages {
		if strings.Contains(msgLower, strings.ToLower(p.Name)) {
			return p.Name, true
		}
	}
	// Distinctive single words: "signature", "luxury", "senior", "lead".
	for _, p := range packages {
		for _, w := range strings.Fields(strings.ToLower(p.Name)) {
			if len(w) > 4 && !strings.Contains(w, "makeup") && strings.Contains(msgLower, w) {
				return p.Name, true
			}
		}
	}
	return "", false
}
