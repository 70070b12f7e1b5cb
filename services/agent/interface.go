package agent

import (
	"context"

	"glambook/models"
)

// AgentService runs booking conversations: it owns session persistence
// around the state machine.
type AgentService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	VerifyOTP(ctx context.Context, sessionID, code string) (*models.ChatResponse, error)
	ResendOTP(ctx context.Context, sessionID string) (*models.ChatResponse, error)
	GetSession(ctx context.Context, sessionID string) (*models.ConversationMemory, error)
	EndSession(ctx context.Context, sessionID string) error
}
