package engine

import (
	"context"

	"glambook/models"
)

// SequentialOrder is the one-field-at-a-time asking order.
var SequentialOrder = []string{
	models.FieldName, models.FieldEmail, models.FieldPhone,
	models.FieldServiceCountry, models.FieldDate,
	models.FieldAddress, models.FieldPincode,
}

// nextSequentialField picks the first still-missing field in asking order.
func nextSequentialField(intent *models.BookingIntent) (string, bool) {
	missing := make(map[string]bool)
	for _, f := range intent.MissingFieldKeys() {
		missing[f] = true
	}
	for _, f := range SequentialOrder {
		if missing[f] {
			return f, true
		}
	}
	return "", false
}

// enterSequential starts asking mode: a summary of what is known plus a
// pointed question for the first gap.
func (c *collector) enterSequential(intent *models.BookingIntent, lang string) TurnResult {
	field, ok := nextSequentialField(intent)
	if !ok {
		intent.Sequential = nil
		return TurnResult{
			Action:     ActionAskConfirmation,
			Message:    ConfirmationSummary(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}
	intent.Sequential = &models.SequentialState{Active: true, LastAskedField: field}

	msg := FieldQuestion(field, lang)
	if len(intent.Collected()) > 0 {
		msg = CollectedSummary(intent, nil, lang) + "\n" + msg
	}
	return TurnResult{
		Action:     ActionSequentialAsk,
		Message:    msg,
		Mode:       ModeBooking,
		Understood: true,
		Missing:    intent.MissingFields(),
	}
}

// stepSequential consumes one answer while asking mode is active. The
// asked field is extracted first; anything else in the message is taken
// opportunistically by a full orchestrator pass.
func (c *collector) stepSequential(ctx context.Context, message string, intent *models.BookingIntent, history []string, lang string) TurnResult {
	asked := intent.Sequential.LastAskedField
	gotAsked := false

	if intent.Get(asked) == "" {
		h := changeHandler{orchestrator: c.orchestrator}
		if cand, found := h.extractFor(asked, message, intent); found {
			if _, ok := ApplyCandidate(cand, intent); ok {
				gotAsked = true
				if cand.Field == models.FieldDate && cand.DateMeta != nil && cand.DateMeta.NeedsYear {
					return TurnResult{
						Action:     ActionAskYear,
						Message:    YearQuestion(cand.DateMeta.Original, lang),
						Mode:       ModeBooking,
						Understood: true,
					}
				}
			}
		}
	}

	// Opportunistic pass for any extra fields the answer carried.
	result := c.orchestrator.ExtractAll(ctx, message, intent, history)
	applied, _ := ApplyExtraction(result, intent)

	if !gotAsked && len(applied) == 0 {
		// Nothing usable: re-ask the same field.
		return TurnResult{
			Action:     ActionSequentialAsk,
			Message:    NotUnderstood(lang) + "\n" + FieldQuestion(asked, lang),
			Mode:       ModeBooking,
			Understood: false,
			Missing:    intent.MissingFields(),
		}
	}

	if intent.IsComplete() {
		intent.Sequential = nil
		return TurnResult{
			Action:     ActionAskConfirmation,
			Message:    ConfirmationSummary(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}
	return c.enterSequential(intent, lang)
}
