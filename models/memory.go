package models

import "time"

// HistoryWindow caps the rolling exchange history kept per session.
const HistoryWindow = 10

// Exchange is one user message and the agent's reply.
type Exchange struct {
	User  string    `json:"user"`
	Agent string    `json:"agent"`
	At    time.Time `json:"at"`
}

// ConversationMemory is the full persisted session state.
type ConversationMemory struct {
	SessionID string         `json:"sessionId"`
	Language  string         `json:"language"`
	State     BookingState   `json:"state"`
	Intent    *BookingIntent `json:"intent"`
	History   []Exchange     `json:"history"`
	OffTrack  int            `json:"offTrack"` // consecutive non-booking turns while booking
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewConversationMemory starts a fresh session in the greeting state.
func NewConversationMemory(sessionID, language string) *ConversationMemory {
	now := time.Now().UTC()
	return &ConversationMemory{
		SessionID: sessionID,
		Language:  language,
		State:     StateGreeting,
		Intent:    NewBookingIntent(language),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record appends an exchange, trimming to the history window.
func (m *ConversationMemory) Record(userMsg, agentMsg string) {
	m.History = append(m.History, Exchange{User: userMsg, Agent: agentMsg, At: time.Now().UTC()})
	if len(m.History) > HistoryWindow {
		m.History = m.History[len(m.History)-HistoryWindow:]
	}
	m.UpdatedAt = time.Now().UTC()
}

// UserHistory returns the recent user messages, oldest first.
func (m *ConversationMemory) UserHistory() []string {
	out := make([]string, 0, len(m.History))
	for _, e := range m.History {
		out = append(out, e.User)
	}
	return out
}
