package engine

import (
	"context"
	"strings"

	"glambook/agent/extract"
	"glambook/models"

	"go.uber.org/zap"
)

// collector runs the collecting_details pipeline. Phases run in a fixed
// order; the first phase that claims the message produces the turn.
type collector struct {
	orchestrator *extract.Orchestrator
	knowledge    KnowledgeAnswerer
	logger       *zap.Logger
}

// Collect processes one message while the conversation is gathering
// booking details.
func (c *collector) Collect(ctx context.Context, message string, intent *models.BookingIntent, history []string, lang string) (models.BookingState, TurnResult) {
	msgLower := strings.ToLower(strings.TrimSpace(message))

	// Cancellation beats everything, including active sub-flows.
	if wantsCancel(msgLower) {
		intent.Reset()
		return models.StateGreeting, TurnResult{
			Action:     ActionCancelled,
			Message:    Cancellation(lang),
			Mode:       ModeChat,
			Understood: true,
		}
	}

	if saysAlreadyProvided(msgLower) {
		res := c.afterFieldResolved(intent, lang)
		if res.Action == ActionAskConfirmation {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	// "Done" with everything collected moves to confirmation; with gaps
	// it re-shows what is still needed.
	if intent.Change == nil && wantsCompletion(msgLower) {
		if intent.IsComplete() {
			intent.ClearSubFlows()
			return models.StateConfirming, TurnResult{
				Action:     ActionAskConfirmation,
				Message:    ConfirmationSummary(intent, lang),
				Mode:       ModeBooking,
				Understood: true,
			}
		}
		missing := intent.MissingFields()
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionAskDetails,
			Message:    CollectedSummary(intent, missing, lang),
			Mode:       ModeBooking,
			Understood: true,
			Missing:    missing,
		}
	}

	// An active change flow owns the message.
	if intent.Change != nil {
		res := c.continueChange(message, intent, lang)
		if res.Action == ActionChangeApplied && intent.IsComplete() {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	// A fresh change request.
	if req, ok := ParseChangeRequest(message); ok {
		res := c.startChange(req, intent, lang)
		if res.Action == ActionChangeApplied && intent.IsComplete() {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	// Pending sub-flows.
	if intent.EmailChoice != nil {
		res := c.handleEmailSelection(message, intent, lang)
		if res.Action == ActionAskConfirmation {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}
	if intent.DateMeta != nil && intent.DateMeta.NeedsYear && intent.Date != "" {
		res := c.handleYearResponse(message, intent, lang)
		if res.Action == ActionAskConfirmation {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	// Sequential asking mode.
	if intent.Sequential != nil && intent.Sequential.Active {
		res := c.stepSequential(ctx, message, intent, history, lang)
		if res.Action == ActionAskConfirmation {
			return models.StateConfirming, res
		}
		return models.StateCollectingDetails, res
	}

	// Question escape: answer, then steer back.
	if IsClearQuestion(message) {
		answer := c.answerQuestion(ctx, message, lang)
		missing := intent.MissingFields()
		if len(missing) > 0 {
			answer += "\n" + Refocus(missing, lang)
		}
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionQuestion,
			Message:    answer,
			Mode:       ModeBooking,
			Understood: true,
			Missing:    missing,
		}
	}

	// Bulk extraction.
	result := c.orchestrator.ExtractAll(ctx, message, intent, history)
	applied, rejected := ApplyExtraction(result, intent)

	if len(result.AmbiguousEmails) > 1 && intent.Email == "" {
		intent.EmailChoice = &models.EmailSelection{Options: result.AmbiguousEmails}
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionEmailSelection,
			Message:    EmailSelectionPrompt(result.AmbiguousEmails, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	if intent.DateMeta != nil && intent.DateMeta.NeedsYear && intent.Date != "" {
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionAskYear,
			Message:    YearQuestion(intent.DateMeta.Original, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	if intent.IsComplete() {
		intent.ClearSubFlows()
		return models.StateConfirming, TurnResult{
			Action:     ActionAskConfirmation,
			Message:    ConfirmationSummary(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
			Warnings:   result.Warnings,
		}
	}

	if len(applied) > 0 {
		missing := intent.MissingFields()
		msg := CollectedSummary(intent, missing, lang)
		if next, ok := nextSequentialField(intent); ok {
			msg += "\n" + FieldQuestion(next, lang)
		}
		return models.StateCollectingDetails, TurnResult{
			Action:     ActionExtracted,
			Message:    msg,
			Mode:       ModeBooking,
			Understood: true,
			Missing:    missing,
			Collected:  intent.Collected(),
			Warnings:   append(result.Warnings, rejected...),
		}
	}

	// Nothing usable: fall into sequential mode so the next turn is a
	// single pointed question instead of another wall of text.
	c.logger.Debug("collect pass extracted nothing, entering sequential mode")
	res := c.enterSequential(intent, lang)
	if res.Action == ActionAskConfirmation {
		return models.StateConfirming, res
	}
	res.Message = NotUnderstood(lang) + "\n" + res.Message
	res.Understood = false
	return models.StateCollectingDetails, res
}

// continueChange handles the message while a change flow is pending.
func (c *collector) continueChange(message string, intent *models.BookingIntent, lang string) TurnResult {
	h := changeHandler{orchestrator: c.orchestrator}

	// Menu shown, field not picked yet.
	if intent.Change.Field == "" {
		if field, ok := MenuSelection(message); ok {
			intent.Change.Field = field
			return TurnResult{
				Action:        ActionChangeValue,
				Message:       ChangeValuePrompt(field, lang),
				Mode:          ModeBooking,
				Understood:    true,
				ChangingField: field,
			}
		}
		if field, _, ok := resolveFieldMention(message); ok {
			intent.Change.Field = field
			return TurnResult{
				Action:        ActionChangeValue,
				Message:       ChangeValuePrompt(field, lang),
				Mode:          ModeBooking,
				Understood:    true,
				ChangingField: field,
			}
		}
		intent.Change.RetryCount++
		if intent.Change.RetryCount >= changeRetryLimit {
			intent.Change = nil
			return TurnResult{
				Action:     ActionChangeFailed,
				Message:    NotUnderstood(lang),
				Mode:       ModeBooking,
				Understood: false,
			}
		}
		return TurnResult{
			Action:     ActionChangeMenu,
			Message:    ChangeMenu(intent, lang),
			Mode:       ModeBooking,
			Understood: false,
		}
	}

	field := intent.Change.Field
	ok, exhausted := h.ApplyReplacement(message, intent)
	switch {
	case ok:
		res := c.afterFieldResolved(intent, lang)
		res.Action = ActionChangeApplied
		return res
	case exhausted:
		return TurnResult{
			Action:     ActionChangeFailed,
			Message:    ChangeFailed(field, lang),
			Mode:       ModeBooking,
			Understood: false,
		}
	default:
		return TurnResult{
			Action:        ActionChangeValue,
			Message:       ChangeValuePrompt(field, lang),
			Mode:          ModeBooking,
			Understood:    false,
			ChangingField: field,
		}
	}
}

// startChange opens a change flow from a parsed request.
func (c *collector) startChange(req ChangeRequest, intent *models.BookingIntent, lang string) TurnResult {
	h := changeHandler{orchestrator: c.orchestrator}

	if req.WantsMenu {
		intent.Change = &models.ChangeState{MenuShown: true}
		return TurnResult{
			Action:     ActionChangeMenu,
			Message:    ChangeMenu(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}

	if req.InlineValue != "" {
		if h.ApplyInline(req.Field, req.InlineValue, intent) {
			res := c.afterFieldResolved(intent, lang)
			res.Action = ActionChangeApplied
			return res
		}
		// Inline value failed validation: fall into value-asking mode with
		// one retry already burned.
		intent.Change = &models.ChangeState{Field: req.Field, RetryCount: 1}
		return TurnResult{
			Action:        ActionChangeValue,
			Message:       ChangeValuePrompt(req.Field, lang),
			Mode:          ModeBooking,
			Understood:    false,
			ChangingField: req.Field,
		}
	}

	intent.Change = &models.ChangeState{Field: req.Field}
	return TurnResult{
		Action:        ActionChangeValue,
		Message:       ChangeValuePrompt(req.Field, lang),
		Mode:          ModeBooking,
		Understood:    true,
		ChangingField: req.Field,
	}
}

// answerQuestion goes to the knowledge base, falling back to the catalog
// blurb when the answerer is absent or fails.
func (c *collector) answerQuestion(ctx context.Context, question, lang string) string {
	if c.knowledge != nil {
		if answer, err := c.knowledge.Answer(ctx, question, lang); err == nil && answer != "" {
			return answer
		}
		c.logger.Warn("knowledge answer failed, using catalog fallback")
	}
	return InfoBlurb(lang)
}
