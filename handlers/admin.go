// File: glambook/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"glambook/config"
	bookingRepoPkg "glambook/database/repository/booking"
	knowledgeRepoPkg "glambook/database/repository/knowledge"
	"glambook/models"
	"glambook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 24 * time.Hour

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Bookings  bookingRepoPkg.Repository
	Knowledge knowledgeRepoPkg.Repository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings bookingRepoPkg.Repository, knowledge knowledgeRepoPkg.Repository) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Knowledge: knowledge}
}

// LoginHandler exchanges the admin credentials for a bearer token.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != config.AppConfig.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AdminPasswordHash), []byte(req.Password)) != nil {
		zap.L().Warn("admin login rejected", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(req.Email, "admin", adminTokenTTL)
	if err != nil {
		zap.L().Error("failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(adminTokenTTL.Seconds())})
}

// ListBookingsHandler returns agent bookings, optionally filtered by status.
func (ah *AdminHandler) ListBookingsHandler(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	bookings, err := ah.Bookings.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		zap.L().Error("Failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetBookingHandler returns one booking by its public ID.
func (ah *AdminHandler) GetBookingHandler(c *gin.Context) {
	b, err := ah.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, bookingRepoPkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to fetch booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatusHandler lets admins confirm or cancel a booking.
func (ah *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	err := ah.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, bookingRepoPkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to update booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated"})
}

// ListKnowledgeHandler returns all knowledge base entries.
func (ah *AdminHandler) ListKnowledgeHandler(c *gin.Context) {
	entries, err := ah.Knowledge.List(c.Request.Context(), c.Query("language"))
	if err != nil {
		zap.L().Error("Failed to fetch knowledge entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch knowledge entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// CreateKnowledgeHandler adds a knowledge base entry.
func (ah *AdminHandler) CreateKnowledgeHandler(c *gin.Context) {
	var entry models.KnowledgeEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if entry.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	id, err := ah.Knowledge.Create(c.Request.Context(), &entry)
	if err != nil {
		zap.L().Error("Failed to create knowledge entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create knowledge entry"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateKnowledgeHandler updates a knowledge base entry.
func (ah *AdminHandler) UpdateKnowledgeHandler(c *gin.Context) {
	var entry models.KnowledgeEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ah.Knowledge.Update(c.Request.Context(), c.Param("id"), &entry)
	if errors.Is(err, knowledgeRepoPkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Knowledge entry not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to update knowledge entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update knowledge entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Knowledge entry updated"})
}

// DeleteKnowledgeHandler removes a knowledge base entry.
func (ah *AdminHandler) DeleteKnowledgeHandler(c *gin.Context) {
	err := ah.Knowledge.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, knowledgeRepoPkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Knowledge entry not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to delete knowledge entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete knowledge entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Knowledge entry deleted"})
}
