package models

// ChatRequest is one inbound agent message. SessionID is empty on the
// first turn; the server mints one and returns it.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	Language  string `json:"language"`
}

// ChatResponse is the agent's turn output.
type ChatResponse struct {
	SessionID string            `json:"session_id"`
	Reply     string            `json:"reply"`
	State     string            `json:"state"`
	Action    string            `json:"action"`
	Mode      string            `json:"mode"`
	Missing   []string          `json:"missing,omitempty"`
	Collected map[string]string `json:"collected,omitempty"`
	Warnings  []string          `json:"warnings,omitempty"`
	BookingID string            `json:"booking_id,omitempty"`
}

// VerifyOTPRequest carries the 6-digit code for a session.
type VerifyOTPRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// ResendOTPRequest asks for a fresh code on an active session.
type ResendOTPRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
