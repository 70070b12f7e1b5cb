package engine

import (
	"errors"
	"strings"

	"glambook/models"
)

// errInvalidTransition steers recovery when a handler asks for an edge
// outside the graph.
var errInvalidTransition = errors.New("invalid state transition")

// transitionGraph is the legal edge set of the conversation. Staying in
// the current state is always allowed and not listed.
var transitionGraph = map[models.BookingState][]models.BookingState{
	models.StateGreeting: {
		models.StateInfoMode, models.StateSelectingService,
	},
	models.StateInfoMode: {
		models.StateSelectingService, models.StateGreeting,
	},
	models.StateSelectingService: {
		models.StateSelectingPackage, models.StateInfoMode, models.StateGreeting,
	},
	models.StateSelectingPackage: {
		models.StateCollectingDetails, models.StateSelectingService,
		models.StateInfoMode, models.StateGreeting,
	},
	models.StateCollectingDetails: {
		models.StateConfirming, models.StateSelectingService, models.StateGreeting,
	},
	models.StateConfirming: {
		models.StateOTPSent, models.StateCollectingDetails, models.StateGreeting,
	},
	models.StateOTPSent: {
		models.StateCompleted, models.StateGreeting,
	},
	models.StateCompleted: {
		models.StateGreeting, models.StateSelectingService,
	},
}

// linearOrder is the canonical forward path, used for recovery when an
// error has no better destination.
var linearOrder = []models.BookingState{
	models.StateGreeting, models.StateInfoMode, models.StateSelectingService,
	models.StateSelectingPackage, models.StateCollectingDetails,
	models.StateConfirming, models.StateOTPSent, models.StateCompleted,
}

// stateRequirements lists the intent fields a state needs to make sense.
var stateRequirements = map[models.BookingState][]string{
	models.StateSelectingPackage:  {models.FieldService},
	models.StateCollectingDetails: {models.FieldService, models.FieldPackage},
	models.StateConfirming:        models.RequiredFields,
	models.StateOTPSent:           models.RequiredFields,
}

// CanTransition reports whether moving from one state to another is in
// the graph. Staying put is always legal.
func CanTransition(from, to models.BookingState) bool {
	if from == to {
		return true
	}
	for _, t := range transitionGraph[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidateStateRequirements returns the canonical keys of intent fields
// the state needs but the intent lacks. Advisory: handlers still gate on
// IsComplete.
func ValidateStateRequirements(state models.BookingState, intent *models.BookingIntent) []string {
	var missing []string
	for _, f := range stateRequirements[state] {
		if intent == nil || intent.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// SuggestStateRecovery picks where a broken session should land, keyed
// off the error text: fatal errors restart, validation errors stay put,
// missing data mid-confirmation drops back to collection, anything else
// steps back one stage.
func SuggestStateRecovery(current models.BookingState, err error) models.BookingState {
	reason := ""
	if err != nil {
		reason = strings.ToLower(err.Error())
	}
	switch {
	case strings.Contains(reason, "critical") || strings.Contains(reason, "fatal"):
		return models.StateGreeting
	case strings.Contains(reason, "validation") || strings.Contains(reason, "invalid"):
		return current
	case strings.Contains(reason, "missing") &&
		(current == models.StateConfirming || current == models.StateOTPSent):
		return models.StateCollectingDetails
	}
	return previousState(current)
}

func previousState(current models.BookingState) models.BookingState {
	for i, s := range linearOrder {
		if s == current {
			if i == 0 {
				return models.StateGreeting
			}
			return linearOrder[i-1]
		}
	}
	return models.StateGreeting
}
