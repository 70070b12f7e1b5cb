// File: glambook/handlers/services.go
package handlers

import (
	"net/http"

	"glambook/config"

	"github.com/gin-gonic/gin"
)

// ServicesHandler returns the service catalog with packages and prices.
func ServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": config.Services})
}
