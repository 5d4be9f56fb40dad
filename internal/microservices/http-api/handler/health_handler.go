package handler

import (
	"context"
	"net/http"
	"time"

	"mediaminder/internal/microservices/http-api/repository"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store repository.Store
}

func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check reports whether the store answers.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
