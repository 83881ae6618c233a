package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/services"
)

// respondError переводит ошибки сервисов в HTTP-статусы; причина 500 остаётся в логе
func respondError(c *gin.Context, err error) {
	var appErr *services.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr.Kind, services.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": appErr.Message})
			return
		case errors.Is(appErr.Kind, services.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
			return
		case errors.Is(appErr.Kind, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case errors.Is(appErr.Kind, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
	}

	logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
