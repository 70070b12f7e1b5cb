// File: glambook/handlers/agent.go
package handlers

import (
	"errors"
	"net/http"

	"glambook/models"
	"glambook/services/agent"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AgentHandler exposes the conversational booking endpoints.
type AgentHandler struct {
	Service agent.AgentService
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(svc agent.AgentService) *AgentHandler {
	return &AgentHandler{Service: svc}
}

// ChatHandler runs one conversation turn.
func (ah *AgentHandler) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ah.Service.Chat(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("chat turn failed", zap.String("session", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTPHandler checks the confirmation code for a session.
func (ah *AgentHandler) VerifyOTPHandler(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ah.Service.VerifyOTP(c.Request.Context(), req.SessionID, req.Code)
	if errors.Is(err, agent.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("otp verification failed", zap.String("session", req.SessionID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendOTPHandler issues a fresh confirmation code.
func (ah *AgentHandler) ResendOTPHandler(c *gin.Context) {
	var req models.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ah.Service.ResendOTP(c.Request.Context(), req.SessionID)
	if errors.Is(err, agent.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("otp resend failed", zap.String("session", req.SessionID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSessionHandler returns the stored conversation state.
func (ah *AgentHandler) GetSessionHandler(c *gin.Context) {
	sessionID := c.Param("id")
	mem, err := ah.Service.GetSession(c.Request.Context(), sessionID)
	if errors.Is(err, agent.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("session lookup failed", zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	c.JSON(http.StatusOK, mem)
}

// EndSessionHandler discards a conversation.
func (ah *AgentHandler) EndSessionHandler(c *gin.Context) {
	sessionID := c.Param("id")
	if err := ah.Service.EndSession(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("session delete failed", zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session ended", "session_id": sessionID})
}
