package engine

import (
	"regexp"
	"strconv"
	"strings"

	"glambook/agent/extract"
	"glambook/models"
)

var (
	selectionNumber = regexp.MustCompile(`\b([1-9])\b`)
	inlineEmail     = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	cancelWords     = []string{"cancel", "stop", "quit", "exit", "abort", "nevermind", "never mind"}
	providedPhrases = []string{"already gave", "already told", "already provided", "i gave", "i told", "i provided"}
)

// handleEmailSelection resolves the ambiguous-email sub-flow: a numbered
// pick, a fresh address, or a re-prompt.
func (c *collector) handleEmailSelection(message string, intent *models.BookingIntent, lang string) TurnResult {
	options := intent.EmailChoice.Options

	if m := selectionNumber.FindStringSubmatch(message); m != nil {
		idx, _ := strconv.Atoi(m[1])
		if idx >= 1 && idx <= len(options) {
			intent.Email = options[idx-1]
			intent.EmailChoice = nil
			return c.afterFieldResolved(intent, lang)
		}
	}

	if m := inlineEmail.FindString(message); m != "" {
		addr := strings.ToLower(m)
		if models.ValidEmailShape(addr) {
			intent.Email = addr
			intent.EmailChoice = nil
			return c.afterFieldResolved(intent, lang)
		}
	}

	return TurnResult{
		Action:     ActionEmailSelection,
		Message:    EmailSelectionPrompt(options, lang),
		Mode:       ModeBooking,
		Understood: false,
	}
}

// handleYearResponse resolves the missing-year sub-flow for a partial date.
func (c *collector) handleYearResponse(message string, intent *models.BookingIntent, lang string) TurnResult {
	year, ok := extract.ExtractYear(message)
	if ok && intent.DateMeta != nil && intent.DateMeta.NeedsYear && intent.Date != "" {
		updated, err := extract.ApplyYear(intent.Date, year)
		if err == nil {
			intent.Date = updated
			intent.DateMeta.NeedsYear = false
			intent.DateMeta.UserProvidedYear = year
			res := c.afterFieldResolved(intent, lang)
			res.Action = ActionYearProvided
			return res
		}
	}

	original := "the date"
	if intent.DateMeta != nil && intent.DateMeta.Original != "" {
		original = intent.DateMeta.Original
	}
	return TurnResult{
		Action:     ActionAskYear,
		Message:    YearQuestion(original, lang),
		Mode:       ModeBooking,
		Understood: false,
	}
}

// afterFieldResolved routes to confirmation or back to collection after a
// sub-flow fills its field.
func (c *collector) afterFieldResolved(intent *models.BookingIntent, lang string) TurnResult {
	if intent.IsComplete() {
		return TurnResult{
			Action:     ActionAskConfirmation,
			Message:    ConfirmationSummary(intent, lang),
			Mode:       ModeBooking,
			Understood: true,
		}
	}
	missing := intent.MissingFields()
	return TurnResult{
		Action:     ActionAskDetails,
		Message:    CollectedSummary(intent, missing, lang),
		Mode:       ModeBooking,
		Understood: true,
		Missing:    missing,
	}
}

// wantsCancel spots abandonment words.
func wantsCancel(msgLower string) bool {
	for _, w := range cancelWords {
		if containsWord(msgLower, w) {
			return true
		}
	}
	return false
}

var completionPhrases = []string{
	"that's all", "thats all", "that is all", "nothing else",
	"all done", "i'm done", "im done",
}

// wantsCompletion spots "I'm finished" style messages. Short messages
// only, so a data-bearing turn never matches on a stray "done".
func wantsCompletion(msgLower string) bool {
	if len(strings.Fields(msgLower)) > 4 {
		return false
	}
	for _, p := range completionPhrases {
		if strings.Contains(msgLower, p) {
			return true
		}
	}
	for _, w := range []string{"done", "finished", "complete"} {
		if containsWord(msgLower, w) {
			return true
		}
	}
	return false
}

// saysAlreadyProvided spots "I already told you" complaints.
func saysAlreadyProvided(msgLower string) bool {
	for _, p := range providedPhrases {
		if strings.Contains(msgLower, p) {
			return true
		}
	}
	return false
}
