package models

// BookingState is the conversation stage of a session.
type BookingState string

const (
	StateGreeting          BookingState = "greeting"
	StateInfoMode          BookingState = "info_mode"
	StateSelectingService  BookingState = "selecting_service"
	StateSelectingPackage  BookingState = "selecting_package"
	StateCollectingDetails BookingState = "collecting_details"
	StateConfirming        BookingState = "confirming"
	StateOTPSent           BookingState = "otp_sent"
	StateCompleted         BookingState = "completed"
)

// Valid reports whether s is a known conversation state.
func (s BookingState) Valid() bool {
	switch s {
	case StateGreeting, StateInfoMode, StateSelectingService, StateSelectingPackage,
		StateCollectingDetails, StateConfirming, StateOTPSent, StateCompleted:
		return true
	}
	return false
}

// InBookingFlow reports whether the state is past service selection,
// i.e. the user is actively building a booking.
func (s BookingState) InBookingFlow() bool {
	switch s {
	case StateSelectingService, StateSelectingPackage, StateCollectingDetails,
		StateConfirming, StateOTPSent:
		return true
	}
	return false
}
