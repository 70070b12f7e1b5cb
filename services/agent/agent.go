package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"glambook/agent/engine"
	"glambook/models"
	"glambook/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is surfaced to the HTTP layer for 404 mapping.
var ErrSessionNotFound = errors.New("session not found")

var supportedLanguages = map[string]bool{
	"en": true,
	"hi": true,
	"ne": true,
	"mr": true,
}

// DefaultAgentService is the production implementation.
type DefaultAgentService struct {
	Sessions session.Store
	FSM      *engine.FSM
	Logger   *zap.Logger
}

func NewDefaultAgentService(sessions session.Store, fsm *engine.FSM, logger *zap.Logger) *DefaultAgentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAgentService{Sessions: sessions, FSM: fsm, Logger: logger}
}

// Chat runs one conversation turn, creating the session on first
// contact.
func (s *DefaultAgentService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("empty message")
	}

	mem, err := s.loadOrCreate(ctx, req.SessionID, req.Language)
	if err != nil {
		return nil, err
	}

	res := s.FSM.Process(ctx, message, mem)
	mem.Record(message, res.Message)
	if err := s.Sessions.Save(ctx, mem); err != nil {
		s.Logger.Error("failed to save session", zap.String("session", mem.SessionID), zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}
	return turnResponse(mem, res), nil
}

// VerifyOTP feeds the submitted code through the state machine; the
// conversation must be awaiting verification.
func (s *DefaultAgentService) VerifyOTP(ctx context.Context, sessionID, code string) (*models.ChatResponse, error) {
	mem, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if mem.State != models.StateOTPSent {
		return nil, fmt.Errorf("session %s is not awaiting verification", sessionID)
	}
	return s.drive(ctx, mem, strings.TrimSpace(code))
}

// ResendOTP asks the state machine for a fresh code.
func (s *DefaultAgentService) ResendOTP(ctx context.Context, sessionID string) (*models.ChatResponse, error) {
	mem, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if mem.State != models.StateOTPSent {
		return nil, fmt.Errorf("session %s is not awaiting verification", sessionID)
	}
	return s.drive(ctx, mem, "resend")
}

func (s *DefaultAgentService) GetSession(ctx context.Context, sessionID string) (*models.ConversationMemory, error) {
	return s.load(ctx, sessionID)
}

func (s *DefaultAgentService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *DefaultAgentService) drive(ctx context.Context, mem *models.ConversationMemory, message string) (*models.ChatResponse, error) {
	res := s.FSM.Process(ctx, message, mem)
	mem.Record(message, res.Message)
	if err := s.Sessions.Save(ctx, mem); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return turnResponse(mem, res), nil
}

func (s *DefaultAgentService) load(ctx context.Context, sessionID string) (*models.ConversationMemory, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	mem, err := s.Sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return mem, nil
}

func (s *DefaultAgentService) loadOrCreate(ctx context.Context, sessionID, language string) (*models.ConversationMemory, error) {
	if sessionID != "" {
		mem, err := s.Sessions.Get(ctx, sessionID)
		if err == nil {
			return mem, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
		// Expired or bogus ID: start over under the same ID so the
		// client keeps working.
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if !supportedLanguages[language] {
		language = "en"
	}
	mem := models.NewConversationMemory(sessionID, language)
	s.Logger.Info("session started", zap.String("session", sessionID), zap.String("language", language))
	return mem, nil
}

func turnResponse(mem *models.ConversationMemory, res engine.TurnResult) *models.ChatResponse {
	return &models.ChatResponse{
		SessionID: mem.SessionID,
		Reply:     res.Message,
		State:     string(mem.State),
		Action:    res.Action,
		Mode:      res.Mode,
		Missing:   res.Missing,
		Collected: res.Collected,
		Warnings:  res.Warnings,
		BookingID: res.BookingID,
	}
}
