// File: glambook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Agent endpoints
	ChatHandler       gin.HandlerFunc
	VerifyOTPHandler  gin.HandlerFunc
	ResendOTPHandler  gin.HandlerFunc
	GetSessionHandler gin.HandlerFunc
	EndSessionHandler gin.HandlerFunc

	// Catalog endpoint
	ServicesHandler gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler          gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
	ListKnowledgeHandler       gin.HandlerFunc
	CreateKnowledgeHandler     gin.HandlerFunc
	UpdateKnowledgeHandler     gin.HandlerFunc
	DeleteKnowledgeHandler     gin.HandlerFunc
}
