package handler

import (
	"context"
	"net/http"
	"time"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc     service.GenreService
	timeout time.Duration
}

func NewGenreHandler(svc service.GenreService, timeout time.Duration) *GenreHandler {
	return &GenreHandler{svc: svc, timeout: timeout}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// List returns all genres, or those for ?media_type= when given.
func (h *GenreHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	list, err := h.svc.List(ctx, c.Query("media_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGenreList(list))
}
